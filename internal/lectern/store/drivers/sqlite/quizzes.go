package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/store"
	"github.com/aussiebroadwan/lectern/internal/lectern/store/drivers/sqlite/gen"
)

type quizzesRepo struct {
	q *gen.Queries
}

func (r *quizzesRepo) CreateQuiz(ctx context.Context, qz domain.Quiz) error {
	return mapConstraint(r.q.CreateQuiz(ctx, gen.CreateQuizParams{
		ID:          qz.ID,
		LectureID:   qz.LectureID,
		Title:       qz.Title,
		Description: qz.Description,
		CreatedAt:   utc(qz.CreatedAt),
		UpdatedAt:   utc(qz.UpdatedAt),
	}))
}

func (r *quizzesRepo) GetQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	row, err := r.q.GetQuiz(ctx, id)
	if err != nil {
		return domain.Quiz{}, mapNotFound(err)
	}
	return mapQuiz(row), nil
}

func (r *quizzesRepo) UpdateQuiz(ctx context.Context, qz domain.Quiz) error {
	return requireRow(r.q.UpdateQuiz(ctx, gen.UpdateQuizParams{
		Title:       qz.Title,
		Description: qz.Description,
		UpdatedAt:   utc(qz.UpdatedAt),
		ID:          qz.ID,
	}))
}

func (r *quizzesRepo) DeleteQuiz(ctx context.Context, id string, now time.Time) error {
	return requireRow(r.q.SoftDeleteQuiz(ctx, gen.SoftDeleteQuizParams{
		DeletedAt: mapTimeNull(now),
		UpdatedAt: utc(now),
		ID:        id,
	}))
}

func (r *quizzesRepo) ListQuizzes(ctx context.Context, lectureID string) ([]domain.Quiz, error) {
	rows, err := r.q.ListQuizzes(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapQuiz(row))
	}
	return out, nil
}

func (r *quizzesRepo) CreateQuestion(ctx context.Context, q domain.Question) error {
	return mapConstraint(r.q.CreateQuestion(ctx, gen.CreateQuestionParams{
		ID:       q.ID,
		QuizID:   q.QuizID,
		Prompt:   q.Prompt,
		Position: int64(q.Position),
	}))
}

func (r *quizzesRepo) UpdateQuestion(ctx context.Context, q domain.Question) error {
	return requireRow(r.q.UpdateQuestion(ctx, gen.UpdateQuestionParams{
		Prompt:   q.Prompt,
		Position: int64(q.Position),
		ID:       q.ID,
	}))
}

func (r *quizzesRepo) DeleteQuestion(ctx context.Context, id string) error {
	return requireRow(r.q.DeleteQuestion(ctx, id))
}

func (r *quizzesRepo) CreateOptionGroup(ctx context.Context, g domain.OptionGroup) error {
	return mapConstraint(r.q.CreateOptionGroup(ctx, gen.CreateOptionGroupParams{
		ID:         g.ID,
		QuestionID: g.QuestionID,
		Label:      g.Label,
		Position:   int64(g.Position),
	}))
}

func (r *quizzesRepo) UpdateOptionGroup(ctx context.Context, g domain.OptionGroup) error {
	return requireRow(r.q.UpdateOptionGroup(ctx, gen.UpdateOptionGroupParams{
		Label:    g.Label,
		Position: int64(g.Position),
		ID:       g.ID,
	}))
}

func (r *quizzesRepo) DeleteOptionGroup(ctx context.Context, id string) error {
	return requireRow(r.q.DeleteOptionGroup(ctx, id))
}

func (r *quizzesRepo) CreateAnswerOption(ctx context.Context, o domain.AnswerOption) error {
	return mapConstraint(r.q.CreateAnswerOption(ctx, gen.CreateAnswerOptionParams{
		ID:            o.ID,
		OptionGroupID: o.OptionGroupID,
		Text:          o.Text,
		IsCorrect:     o.IsCorrect,
		Position:      int64(o.Position),
	}))
}

func (r *quizzesRepo) UpdateAnswerOption(ctx context.Context, o domain.AnswerOption) error {
	return requireRow(r.q.UpdateAnswerOption(ctx, gen.UpdateAnswerOptionParams{
		Text:      o.Text,
		IsCorrect: o.IsCorrect,
		Position:  int64(o.Position),
		ID:        o.ID,
	}))
}

func (r *quizzesRepo) DeleteAnswerOption(ctx context.Context, id string) error {
	return requireRow(r.q.DeleteAnswerOption(ctx, id))
}

// LoadQuestions fetches the three levels in one query each and stitches
// them together in memory.
func (r *quizzesRepo) LoadQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	qrows, err := r.q.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	grows, err := r.q.ListOptionGroupsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	orows, err := r.q.ListAnswerOptionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	options := make(map[string][]domain.AnswerOption, len(grows))
	for _, o := range orows {
		options[o.OptionGroupID] = append(options[o.OptionGroupID], domain.AnswerOption{
			ID:            o.ID,
			OptionGroupID: o.OptionGroupID,
			Text:          o.Text,
			IsCorrect:     o.IsCorrect,
			Position:      int(o.Position),
		})
	}

	groups := make(map[string][]domain.OptionGroup, len(qrows))
	for _, g := range grows {
		groups[g.QuestionID] = append(groups[g.QuestionID], domain.OptionGroup{
			ID:         g.ID,
			QuestionID: g.QuestionID,
			Label:      g.Label,
			Position:   int(g.Position),
			Options:    nonNil(options[g.ID]),
		})
	}

	out := make([]domain.Question, 0, len(qrows))
	for _, q := range qrows {
		out = append(out, domain.Question{
			ID:           q.ID,
			QuizID:       q.QuizID,
			Prompt:       q.Prompt,
			Position:     int(q.Position),
			OptionGroups: nonNil(groups[q.ID]),
		})
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *quizzesRepo) QuestionScope(ctx context.Context, questionID string) (store.Scope, error) {
	row, err := r.q.GetQuestionScope(ctx, questionID)
	if err != nil {
		return store.Scope{}, mapNotFound(err)
	}
	return store.Scope{ClassroomID: row.ClassroomID, LectureID: row.LectureID, QuizID: row.QuizID}, nil
}

func (r *quizzesRepo) OptionGroupScope(ctx context.Context, groupID string) (store.Scope, error) {
	row, err := r.q.GetOptionGroupScope(ctx, groupID)
	if err != nil {
		return store.Scope{}, mapNotFound(err)
	}
	return store.Scope{ClassroomID: row.ClassroomID, LectureID: row.LectureID, QuizID: row.QuizID}, nil
}

func (r *quizzesRepo) AnswerOptionScope(ctx context.Context, optionID string) (store.Scope, error) {
	row, err := r.q.GetAnswerOptionScope(ctx, optionID)
	if err != nil {
		return store.Scope{}, mapNotFound(err)
	}
	return store.Scope{ClassroomID: row.ClassroomID, LectureID: row.LectureID, QuizID: row.QuizID}, nil
}
