package http

import (
	"github.com/aussiebroadwan/lectern/internal/lectern/domain"
	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

func toTokenResponse(p domain.TokenPair) lecternsdk.TokenResponse {
	return lecternsdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
	}
}

func toUserResponse(u domain.User, avatarURL string) lecternsdk.UserResponse {
	return lecternsdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Active:    u.Active,
		AvatarURL: avatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toClassroomResponse(c domain.Classroom) lecternsdk.ClassroomResponse {
	return lecternsdk.ClassroomResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toJoinRequestResponse(jr domain.JoinRequest) lecternsdk.JoinRequestResponse {
	return lecternsdk.JoinRequestResponse{
		ID:           jr.ID,
		ClassroomID:  jr.ClassroomID,
		StudentID:    jr.StudentID,
		StudentEmail: jr.StudentEmail,
		StudentName:  jr.StudentName,
		CreatedAt:    jr.CreatedAt,
	}
}

func toMemberResponse(m domain.ClassroomMember) lecternsdk.MemberResponse {
	return lecternsdk.MemberResponse{
		ClassroomID:  m.ClassroomID,
		StudentID:    m.StudentID,
		StudentEmail: m.StudentEmail,
		StudentName:  m.StudentName,
		Active:       m.Active,
		JoinedAt:     m.JoinedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toLectureResponse(l domain.Lecture) lecternsdk.LectureResponse {
	return lecternsdk.LectureResponse{
		ID:          l.ID,
		ClassroomID: l.ClassroomID,
		Title:       l.Title,
		Content:     l.Content,
		Position:    l.Position,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// mapSlice converts every element with fn. It never returns nil so empty
// lists encode as [].
func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

// toQuizResponse renders the tree. When the quiz had its answers hidden the
// is_correct field is left out entirely.
func toQuizResponse(q domain.Quiz) lecternsdk.QuizResponse {
	out := lecternsdk.QuizResponse{
		ID:          q.ID,
		LectureID:   q.LectureID,
		Title:       q.Title,
		Description: q.Description,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
	for _, question := range q.Questions {
		out.Questions = append(out.Questions, toQuestionResponse(question, q.AnswersHidden))
	}
	return out
}

func toQuestionResponse(q domain.Question, hidden bool) lecternsdk.QuestionResponse {
	return lecternsdk.QuestionResponse{
		ID:       q.ID,
		QuizID:   q.QuizID,
		Prompt:   q.Prompt,
		Position: q.Position,
		OptionGroups: mapSlice(q.OptionGroups, func(g domain.OptionGroup) lecternsdk.OptionGroupResponse {
			return toOptionGroupResponse(g, hidden)
		}),
	}
}

func toOptionGroupResponse(g domain.OptionGroup, hidden bool) lecternsdk.OptionGroupResponse {
	return lecternsdk.OptionGroupResponse{
		ID:         g.ID,
		QuestionID: g.QuestionID,
		Label:      g.Label,
		Position:   g.Position,
		Options: mapSlice(g.Options, func(o domain.AnswerOption) lecternsdk.AnswerOptionResponse {
			return toAnswerOptionResponse(o, hidden)
		}),
	}
}

func toAnswerOptionResponse(o domain.AnswerOption, hidden bool) lecternsdk.AnswerOptionResponse {
	out := lecternsdk.AnswerOptionResponse{
		ID:            o.ID,
		OptionGroupID: o.OptionGroupID,
		Text:          o.Text,
		Position:      o.Position,
	}
	if !hidden {
		correct := o.IsCorrect
		out.IsCorrect = &correct
	}
	return out
}

func toQuizInput(req lecternsdk.QuizRequest) service.QuizInput {
	return service.QuizInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   mapSlice(req.Questions, toQuestionInput),
	}
}

func toQuestionInput(req lecternsdk.QuestionRequest) service.QuestionInput {
	return service.QuestionInput{
		Prompt:       req.Prompt,
		Position:     req.Position,
		OptionGroups: mapSlice(req.OptionGroups, toOptionGroupInput),
	}
}

func toOptionGroupInput(req lecternsdk.OptionGroupRequest) service.OptionGroupInput {
	return service.OptionGroupInput{
		Label:    req.Label,
		Position: req.Position,
		Options:  mapSlice(req.Options, toAnswerOptionInput),
	}
}

func toAnswerOptionInput(req lecternsdk.AnswerOptionRequest) service.AnswerOptionInput {
	return service.AnswerOptionInput{
		Text:      req.Text,
		IsCorrect: req.IsCorrect,
		Position:  req.Position,
	}
}
