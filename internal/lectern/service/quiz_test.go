package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/stretchr/testify/require"
)

// course sets up a classroom owned by a teacher, with one enrolled student
// and one lecture.
type course struct {
	teacher, student, outsider domain.User
	classroom                  domain.Classroom
	lecture                    domain.Lecture
}

func newCourse(t *testing.T, e *env) course {
	t.Helper()
	ctx := context.Background()

	c := course{
		teacher:  e.user(t, "t@x.com", domain.RoleTeacher),
		student:  e.user(t, "s@x.com", domain.RoleStudent),
		outsider: e.user(t, "o@x.com", domain.RoleStudent),
	}

	var err error
	c.classroom, err = e.classrooms.Create(ctx, actorOf(c.teacher), ClassroomInput{Name: "Geometry"})
	require.NoError(t, err)
	_, err = e.classrooms.RequestJoin(ctx, actorOf(c.student), c.classroom.ID)
	require.NoError(t, err)
	_, err = e.classrooms.ApproveJoin(ctx, actorOf(c.teacher), c.classroom.ID, c.student.ID)
	require.NoError(t, err)

	c.lecture, err = e.lectures.Create(ctx, actorOf(c.teacher), c.classroom.ID, LectureInput{Title: "Triangles", Content: "# Angles"})
	require.NoError(t, err)
	return c
}

func sampleQuiz() QuizInput {
	return QuizInput{
		Title: "Angles",
		Questions: []QuestionInput{{
			Prompt: "Sum of the angles of a triangle?",
			OptionGroups: []OptionGroupInput{{
				Label: "Degrees",
				Options: []AnswerOptionInput{
					{Text: "90", Position: 0},
					{Text: "180", IsCorrect: true, Position: 1},
				},
			}},
		}},
	}
}

func TestLectures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := newCourse(t, e)

	second, err := e.lectures.Create(ctx, actorOf(c.teacher), c.classroom.ID, LectureInput{Title: "Circles", Position: -1})
	require.ErrorIs(t, err, apperr.Validation(nil))
	require.Empty(t, second.ID)

	_, err = e.lectures.Create(ctx, actorOf(c.student), c.classroom.ID, LectureInput{Title: "Mine"})
	require.ErrorIs(t, err, ErrForbidden)

	list, err := e.lectures.ListByClassroom(ctx, actorOf(c.student), c.classroom.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = e.lectures.Get(ctx, actorOf(c.outsider), c.lecture.ID)
	require.ErrorIs(t, err, ErrForbidden)

	l, err := e.lectures.Update(ctx, actorOf(c.teacher), c.lecture.ID, LecturePatch{Position: ptr(3)})
	require.NoError(t, err)
	require.Equal(t, 3, l.Position)
	require.Equal(t, "Triangles", l.Title)

	require.NoError(t, e.lectures.Delete(ctx, actorOf(c.teacher), c.lecture.ID))
	_, err = e.lectures.Get(ctx, actorOf(c.teacher), c.lecture.ID)
	require.ErrorIs(t, err, ErrLectureNotFound)
}

func TestQuizCreateAndHideAnswers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := newCourse(t, e)

	q, err := e.quizzes.Create(ctx, actorOf(c.teacher), c.lecture.ID, sampleQuiz())
	require.NoError(t, err)
	require.Len(t, q.Questions, 1)
	require.Len(t, q.Questions[0].OptionGroups[0].Options, 2)

	t.Run("manager sees answers", func(t *testing.T) {
		got, err := e.quizzes.Get(ctx, actorOf(c.teacher), q.ID)
		require.NoError(t, err)
		opts := got.Questions[0].OptionGroups[0].Options
		require.Equal(t, "180", opts[1].Text)
		require.True(t, opts[1].IsCorrect)
		require.False(t, got.AnswersHidden)
	})

	t.Run("student does not", func(t *testing.T) {
		got, err := e.quizzes.Get(ctx, actorOf(c.student), q.ID)
		require.NoError(t, err)
		require.True(t, got.AnswersHidden)
		for _, o := range got.Questions[0].OptionGroups[0].Options {
			require.False(t, o.IsCorrect, o.Text)
		}
	})

	t.Run("outsider is refused", func(t *testing.T) {
		_, err := e.quizzes.Get(ctx, actorOf(c.outsider), q.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	list, err := e.quizzes.ListByLecture(ctx, actorOf(c.student), c.lecture.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Angles", list[0].Title)
}

func TestQuizValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := newCourse(t, e)

	in := sampleQuiz()
	in.Questions[0].OptionGroups = append(in.Questions[0].OptionGroups, OptionGroupInput{Label: "Empty"})
	in.Questions[0].OptionGroups[0].Options[0].Text = " "

	_, err := e.quizzes.Create(ctx, actorOf(c.teacher), c.lecture.ID, in)
	require.ErrorIs(t, err, apperr.Validation(nil))
	fields := apperr.As(err).Fields
	require.Equal(t, keyRequired, fields["questions[0].option_groups[1].options"])
	require.Equal(t, keyRequired, fields["questions[0].option_groups[0].options[0].text"])

	quizzes, err := e.quizzes.ListByLecture(ctx, actorOf(c.teacher), c.lecture.ID)
	require.NoError(t, err)
	require.Empty(t, quizzes, "nothing stored")
}

func TestQuizEditing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := newCourse(t, e)
	teacher := actorOf(c.teacher)

	q, err := e.quizzes.Create(ctx, teacher, c.lecture.ID, QuizInput{Title: "Draft"})
	require.NoError(t, err)
	require.Empty(t, q.Questions)

	q, err = e.quizzes.Update(ctx, teacher, q.ID, QuizPatch{Title: ptr("Final")})
	require.NoError(t, err)
	require.Equal(t, "Final", q.Title)

	question, err := e.quizzes.AddQuestion(ctx, teacher, q.ID, QuestionInput{Prompt: "Pick primes"})
	require.NoError(t, err)
	group, err := e.quizzes.AddOptionGroup(ctx, teacher, question.ID, OptionGroupInput{
		Options: []AnswerOptionInput{{Text: "2", IsCorrect: true}},
	})
	require.NoError(t, err)
	four, err := e.quizzes.AddAnswerOption(ctx, teacher, group.ID, AnswerOptionInput{Text: "4", Position: 1})
	require.NoError(t, err)

	_, err = e.quizzes.AddAnswerOption(ctx, actorOf(c.student), group.ID, AnswerOptionInput{Text: "9"})
	require.ErrorIs(t, err, ErrForbidden)

	question, err = e.quizzes.UpdateQuestion(ctx, teacher, question.ID, QuestionPatch{Prompt: ptr("Pick the primes")})
	require.NoError(t, err)
	require.Equal(t, "Pick the primes", question.Prompt)

	group, err = e.quizzes.UpdateOptionGroup(ctx, teacher, group.ID, OptionGroupPatch{Label: ptr("Numbers")})
	require.NoError(t, err)
	require.Equal(t, "Numbers", group.Label)

	four, err = e.quizzes.UpdateAnswerOption(ctx, teacher, four.ID, AnswerOptionPatch{Text: ptr("four"), IsCorrect: ptr(false)})
	require.NoError(t, err)
	require.Equal(t, 1, four.Position)

	_, err = e.quizzes.UpdateAnswerOption(ctx, teacher, four.ID, AnswerOptionPatch{Text: ptr("")})
	require.ErrorIs(t, err, apperr.Validation(nil))

	got, err := e.quizzes.Get(ctx, teacher, q.ID)
	require.NoError(t, err)
	opts := got.Questions[0].OptionGroups[0].Options
	require.Len(t, opts, 2)
	require.Equal(t, "four", opts[1].Text)

	require.NoError(t, e.quizzes.DeleteAnswerOption(ctx, teacher, four.ID))
	require.ErrorIs(t, e.quizzes.DeleteAnswerOption(ctx, teacher, four.ID), ErrOptionNotFound)
	require.NoError(t, e.quizzes.DeleteOptionGroup(ctx, teacher, group.ID))
	require.ErrorIs(t, e.quizzes.DeleteOptionGroup(ctx, teacher, group.ID), ErrOptionGroupNotFound)
	require.NoError(t, e.quizzes.DeleteQuestion(ctx, teacher, question.ID))
	require.ErrorIs(t, e.quizzes.DeleteQuestion(ctx, teacher, question.ID), ErrQuestionNotFound)

	require.NoError(t, e.quizzes.Delete(ctx, teacher, q.ID))
	_, err = e.quizzes.Get(ctx, teacher, q.ID)
	require.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizGoneWithClassroom(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := newCourse(t, e)

	q, err := e.quizzes.Create(ctx, actorOf(c.teacher), c.lecture.ID, sampleQuiz())
	require.NoError(t, err)
	require.NoError(t, e.classrooms.Delete(ctx, actorOf(c.teacher), c.classroom.ID))

	_, err = e.quizzes.Get(ctx, actorOf(c.teacher), q.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = e.quizzes.AddQuestion(ctx, actorOf(c.teacher), q.ID, QuestionInput{Prompt: "Late"})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
