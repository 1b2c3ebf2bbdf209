package domain

import "time"

type Lecture struct {
	ID          string
	ClassroomID string
	Title       string
	Content     string
	Position    int
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type Quiz struct {
	ID          string
	LectureID   string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time

	Questions []Question

	// AnswersHidden is set once HideAnswers has cleared the IsCorrect flags.
	AnswersHidden bool
}

type Question struct {
	ID       string
	QuizID   string
	Prompt   string
	Position int

	OptionGroups []OptionGroup
}

// OptionGroup is one column of choices under a question.
type OptionGroup struct {
	ID         string
	QuestionID string
	Label      string
	Position   int

	Options []AnswerOption
}

type AnswerOption struct {
	ID            string
	OptionGroupID string
	Text          string
	IsCorrect     bool
	Position      int
}

// HideAnswers clears every IsCorrect flag in the tree.
func (q *Quiz) HideAnswers() {
	q.AnswersHidden = true
	for i := range q.Questions {
		for j := range q.Questions[i].OptionGroups {
			for k := range q.Questions[i].OptionGroups[j].Options {
				q.Questions[i].OptionGroups[j].Options[k].IsCorrect = false
			}
		}
	}
}
