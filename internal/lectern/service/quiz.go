package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/pkg/idx"
)

type QuizInput struct {
	Title       string
	Description string
	Questions   []QuestionInput
}

type QuestionInput struct {
	Prompt       string
	Position     int
	OptionGroups []OptionGroupInput
}

type OptionGroupInput struct {
	Label    string
	Position int
	Options  []AnswerOptionInput
}

type AnswerOptionInput struct {
	Text      string
	IsCorrect bool
	Position  int
}

type QuizPatch struct {
	Title       *string
	Description *string
}

type QuestionPatch struct {
	Prompt   *string
	Position *int
}

type OptionGroupPatch struct {
	Label    *string
	Position *int
}

type AnswerOptionPatch struct {
	Text      *string
	IsCorrect *bool
	Position  *int
}

// QuizService authors quizzes. Reading follows the classroom view rules;
// answers are only revealed to those who manage the classroom.
type QuizService struct {
	Store store.Store
	Now   func() time.Time
}

func (in *QuizInput) validate(f fields) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	f.text("title", in.Title, MaxTitleLength)
	f.maxLen("description", in.Description, MaxDescriptionLength)
	for i := range in.Questions {
		in.Questions[i].validate(f, fmt.Sprintf("questions[%d].", i))
	}
}

func (in *QuestionInput) validate(f fields, prefix string) {
	in.Prompt = strings.TrimSpace(in.Prompt)
	f.text(prefix+"prompt", in.Prompt, MaxDescriptionLength)
	f.position(prefix+"position", in.Position)
	for i := range in.OptionGroups {
		in.OptionGroups[i].validate(f, fmt.Sprintf("%soption_groups[%d].", prefix, i))
	}
}

// An option group must offer at least one option.
func (in *OptionGroupInput) validate(f fields, prefix string) {
	in.Label = strings.TrimSpace(in.Label)
	f.maxLen(prefix+"label", in.Label, MaxTitleLength)
	f.position(prefix+"position", in.Position)
	if len(in.Options) == 0 {
		f.add(prefix+"options", keyRequired)
	}
	for i := range in.Options {
		in.Options[i].validate(f, fmt.Sprintf("%soptions[%d].", prefix, i))
	}
}

func (in *AnswerOptionInput) validate(f fields, prefix string) {
	in.Text = strings.TrimSpace(in.Text)
	f.text(prefix+"text", in.Text, MaxDescriptionLength)
	f.position(prefix+"position", in.Position)
}

// Create stores the quiz and its optional question tree in one transaction.
func (s *QuizService) Create(ctx context.Context, actor Actor, lectureID string, in QuizInput) (domain.Quiz, error) {
	_, c, err := loadLecture(ctx, s.Store, lectureID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := authorizeManage(actor, c); err != nil {
		return domain.Quiz{}, err
	}

	f := fields{}
	in.validate(f)
	if err := f.err(); err != nil {
		return domain.Quiz{}, err
	}

	now := s.now()
	q := domain.Quiz{
		ID:          idx.New().String(),
		LectureID:   lectureID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Questions:   []domain.Question{},
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Quizzes().CreateQuiz(ctx, q); err != nil {
			return err
		}
		for _, qin := range in.Questions {
			question, err := insertQuestion(ctx, tx, q.ID, qin)
			if err != nil {
				return err
			}
			q.Questions = append(q.Questions, question)
		}
		return nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return q, nil
}

// Get returns the quiz with its question tree. Correct answers are hidden
// from viewers who cannot manage the classroom.
func (s *QuizService) Get(ctx context.Context, actor Actor, id string) (domain.Quiz, error) {
	q, c, err := s.load(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := authorizeView(ctx, s.Store, actor, c); err != nil {
		return domain.Quiz{}, err
	}

	q.Questions, err = s.Store.Quizzes().LoadQuestions(ctx, q.ID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if !canManage(actor, c) {
		q.HideAnswers()
	}
	return q, nil
}

// ListByLecture returns the quizzes of a lecture without their questions.
func (s *QuizService) ListByLecture(ctx context.Context, actor Actor, lectureID string) ([]domain.Quiz, error) {
	_, c, err := loadLecture(ctx, s.Store, lectureID)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(ctx, s.Store, actor, c); err != nil {
		return nil, err
	}
	return s.Store.Quizzes().ListQuizzes(ctx, lectureID)
}

func (s *QuizService) Update(ctx context.Context, actor Actor, id string, p QuizPatch) (domain.Quiz, error) {
	q, c, err := s.load(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := authorizeManage(actor, c); err != nil {
		return domain.Quiz{}, err
	}

	in := QuizInput{Title: q.Title, Description: q.Description}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	f := fields{}
	in.validate(f)
	if err := f.err(); err != nil {
		return domain.Quiz{}, err
	}

	q.Title, q.Description, q.UpdatedAt = in.Title, in.Description, s.now()
	if err := s.Store.Quizzes().UpdateQuiz(ctx, q); err != nil {
		return domain.Quiz{}, notFound(err, ErrQuizNotFound)
	}
	return q, nil
}

func (s *QuizService) Delete(ctx context.Context, actor Actor, id string) error {
	_, c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeManage(actor, c); err != nil {
		return err
	}
	return notFound(s.Store.Quizzes().DeleteQuiz(ctx, id, s.now()), ErrQuizNotFound)
}

// AddQuestion appends a question, with optional option groups, to a quiz.
func (s *QuizService) AddQuestion(ctx context.Context, actor Actor, quizID string, in QuestionInput) (domain.Question, error) {
	_, c, err := s.load(ctx, quizID)
	if err != nil {
		return domain.Question{}, err
	}
	if err := authorizeManage(actor, c); err != nil {
		return domain.Question{}, err
	}

	f := fields{}
	in.validate(f, "")
	if err := f.err(); err != nil {
		return domain.Question{}, err
	}

	var out domain.Question
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		out, err = insertQuestion(ctx, tx, quizID, in)
		return err
	})
	return out, err
}

func (s *QuizService) UpdateQuestion(ctx context.Context, actor Actor, id string, p QuestionPatch) (domain.Question, error) {
	scope, err := s.Store.Quizzes().QuestionScope(ctx, id)
	if err != nil {
		return domain.Question{}, notFound(err, ErrQuestionNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return domain.Question{}, err
	}
	tree, err := s.Store.Quizzes().LoadQuestions(ctx, scope.QuizID)
	if err != nil {
		return domain.Question{}, err
	}
	q, ok := findQuestion(tree, id)
	if !ok {
		return domain.Question{}, ErrQuestionNotFound
	}

	if p.Prompt != nil {
		q.Prompt = strings.TrimSpace(*p.Prompt)
	}
	if p.Position != nil {
		q.Position = *p.Position
	}
	f := fields{}
	f.text("prompt", q.Prompt, MaxDescriptionLength)
	f.position("position", q.Position)
	if err := f.err(); err != nil {
		return domain.Question{}, err
	}

	if err := s.Store.Quizzes().UpdateQuestion(ctx, q); err != nil {
		return domain.Question{}, notFound(err, ErrQuestionNotFound)
	}
	return q, nil
}

// DeleteQuestion removes the question with its option groups and options.
func (s *QuizService) DeleteQuestion(ctx context.Context, actor Actor, id string) error {
	scope, err := s.Store.Quizzes().QuestionScope(ctx, id)
	if err != nil {
		return notFound(err, ErrQuestionNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return err
	}
	return notFound(s.Store.Quizzes().DeleteQuestion(ctx, id), ErrQuestionNotFound)
}

func (s *QuizService) AddOptionGroup(ctx context.Context, actor Actor, questionID string, in OptionGroupInput) (domain.OptionGroup, error) {
	scope, err := s.Store.Quizzes().QuestionScope(ctx, questionID)
	if err != nil {
		return domain.OptionGroup{}, notFound(err, ErrQuestionNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return domain.OptionGroup{}, err
	}

	f := fields{}
	in.validate(f, "")
	if err := f.err(); err != nil {
		return domain.OptionGroup{}, err
	}

	var out domain.OptionGroup
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		out, err = insertOptionGroup(ctx, tx, questionID, in)
		return err
	})
	return out, err
}

func (s *QuizService) UpdateOptionGroup(ctx context.Context, actor Actor, id string, p OptionGroupPatch) (domain.OptionGroup, error) {
	scope, err := s.Store.Quizzes().OptionGroupScope(ctx, id)
	if err != nil {
		return domain.OptionGroup{}, notFound(err, ErrOptionGroupNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return domain.OptionGroup{}, err
	}
	tree, err := s.Store.Quizzes().LoadQuestions(ctx, scope.QuizID)
	if err != nil {
		return domain.OptionGroup{}, err
	}
	g, ok := findOptionGroup(tree, id)
	if !ok {
		return domain.OptionGroup{}, ErrOptionGroupNotFound
	}

	if p.Label != nil {
		g.Label = strings.TrimSpace(*p.Label)
	}
	if p.Position != nil {
		g.Position = *p.Position
	}
	f := fields{}
	f.maxLen("label", g.Label, MaxTitleLength)
	f.position("position", g.Position)
	if err := f.err(); err != nil {
		return domain.OptionGroup{}, err
	}

	if err := s.Store.Quizzes().UpdateOptionGroup(ctx, g); err != nil {
		return domain.OptionGroup{}, notFound(err, ErrOptionGroupNotFound)
	}
	return g, nil
}

func (s *QuizService) DeleteOptionGroup(ctx context.Context, actor Actor, id string) error {
	scope, err := s.Store.Quizzes().OptionGroupScope(ctx, id)
	if err != nil {
		return notFound(err, ErrOptionGroupNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return err
	}
	return notFound(s.Store.Quizzes().DeleteOptionGroup(ctx, id), ErrOptionGroupNotFound)
}

func (s *QuizService) AddAnswerOption(ctx context.Context, actor Actor, groupID string, in AnswerOptionInput) (domain.AnswerOption, error) {
	scope, err := s.Store.Quizzes().OptionGroupScope(ctx, groupID)
	if err != nil {
		return domain.AnswerOption{}, notFound(err, ErrOptionGroupNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return domain.AnswerOption{}, err
	}

	f := fields{}
	in.validate(f, "")
	if err := f.err(); err != nil {
		return domain.AnswerOption{}, err
	}

	o := newAnswerOption(groupID, in)
	if err := s.Store.Quizzes().CreateAnswerOption(ctx, o); err != nil {
		return domain.AnswerOption{}, err
	}
	return o, nil
}

func (s *QuizService) UpdateAnswerOption(ctx context.Context, actor Actor, id string, p AnswerOptionPatch) (domain.AnswerOption, error) {
	scope, err := s.Store.Quizzes().AnswerOptionScope(ctx, id)
	if err != nil {
		return domain.AnswerOption{}, notFound(err, ErrOptionNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return domain.AnswerOption{}, err
	}
	tree, err := s.Store.Quizzes().LoadQuestions(ctx, scope.QuizID)
	if err != nil {
		return domain.AnswerOption{}, err
	}
	o, ok := findAnswerOption(tree, id)
	if !ok {
		return domain.AnswerOption{}, ErrOptionNotFound
	}

	if p.Text != nil {
		o.Text = strings.TrimSpace(*p.Text)
	}
	if p.IsCorrect != nil {
		o.IsCorrect = *p.IsCorrect
	}
	if p.Position != nil {
		o.Position = *p.Position
	}
	f := fields{}
	f.text("text", o.Text, MaxDescriptionLength)
	f.position("position", o.Position)
	if err := f.err(); err != nil {
		return domain.AnswerOption{}, err
	}

	if err := s.Store.Quizzes().UpdateAnswerOption(ctx, o); err != nil {
		return domain.AnswerOption{}, notFound(err, ErrOptionNotFound)
	}
	return o, nil
}

func (s *QuizService) DeleteAnswerOption(ctx context.Context, actor Actor, id string) error {
	scope, err := s.Store.Quizzes().AnswerOptionScope(ctx, id)
	if err != nil {
		return notFound(err, ErrOptionNotFound)
	}
	if err := manageScope(ctx, s.Store, actor, scope); err != nil {
		return err
	}
	return notFound(s.Store.Quizzes().DeleteAnswerOption(ctx, id), ErrOptionNotFound)
}

// load returns a quiz with the classroom it lives in.
func (s *QuizService) load(ctx context.Context, id string) (domain.Quiz, domain.Classroom, error) {
	q, err := s.Store.Quizzes().GetQuiz(ctx, id)
	if err != nil {
		return domain.Quiz{}, domain.Classroom{}, notFound(err, ErrQuizNotFound)
	}
	_, c, err := loadLecture(ctx, s.Store, q.LectureID)
	if err != nil {
		return domain.Quiz{}, domain.Classroom{}, err
	}
	return q, c, nil
}

func (s *QuizService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func insertQuestion(ctx context.Context, st store.Store, quizID string, in QuestionInput) (domain.Question, error) {
	q := domain.Question{
		ID:           idx.New().String(),
		QuizID:       quizID,
		Prompt:       in.Prompt,
		Position:     in.Position,
		OptionGroups: []domain.OptionGroup{},
	}
	if err := st.Quizzes().CreateQuestion(ctx, q); err != nil {
		return domain.Question{}, err
	}
	for _, gin := range in.OptionGroups {
		g, err := insertOptionGroup(ctx, st, q.ID, gin)
		if err != nil {
			return domain.Question{}, err
		}
		q.OptionGroups = append(q.OptionGroups, g)
	}
	return q, nil
}

func insertOptionGroup(ctx context.Context, st store.Store, questionID string, in OptionGroupInput) (domain.OptionGroup, error) {
	g := domain.OptionGroup{
		ID:         idx.New().String(),
		QuestionID: questionID,
		Label:      in.Label,
		Position:   in.Position,
		Options:    make([]domain.AnswerOption, 0, len(in.Options)),
	}
	if err := st.Quizzes().CreateOptionGroup(ctx, g); err != nil {
		return domain.OptionGroup{}, err
	}
	for _, oin := range in.Options {
		o := newAnswerOption(g.ID, oin)
		if err := st.Quizzes().CreateAnswerOption(ctx, o); err != nil {
			return domain.OptionGroup{}, err
		}
		g.Options = append(g.Options, o)
	}
	return g, nil
}

func newAnswerOption(groupID string, in AnswerOptionInput) domain.AnswerOption {
	return domain.AnswerOption{
		ID:            idx.New().String(),
		OptionGroupID: groupID,
		Text:          in.Text,
		IsCorrect:     in.IsCorrect,
		Position:      in.Position,
	}
}

func findQuestion(tree []domain.Question, id string) (domain.Question, bool) {
	for _, q := range tree {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

func findOptionGroup(tree []domain.Question, id string) (domain.OptionGroup, bool) {
	for _, q := range tree {
		for _, g := range q.OptionGroups {
			if g.ID == id {
				return g, true
			}
		}
	}
	return domain.OptionGroup{}, false
}

func findAnswerOption(tree []domain.Question, id string) (domain.AnswerOption, bool) {
	for _, q := range tree {
		for _, g := range q.OptionGroups {
			for _, o := range g.Options {
				if o.ID == id {
					return o, true
				}
			}
		}
	}
	return domain.AnswerOption{}, false
}
