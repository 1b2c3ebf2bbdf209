package lecternsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Lectures
// ============================================================================

func (s *Session) CreateLecture(ctx context.Context, classroomID string, req LectureRequest) (*LectureResponse, error) {
	var out LectureResponse
	if err := s.do(ctx, http.MethodPost, classroomPath(classroomID, "lectures"), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListLectures(ctx context.Context, classroomID string) ([]LectureResponse, error) {
	var out []LectureResponse
	if err := s.do(ctx, http.MethodGet, classroomPath(classroomID, "lectures"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetLecture(ctx context.Context, id string) (*LectureResponse, error) {
	var out LectureResponse
	if err := s.do(ctx, http.MethodGet, "/v1/lectures/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateLecture(ctx context.Context, id string, req LecturePatchRequest) (*LectureResponse, error) {
	var out LectureResponse
	if err := s.do(ctx, http.MethodPatch, "/v1/lectures/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteLecture(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/lectures/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Quizzes
// ============================================================================

// CreateQuiz creates a quiz, optionally with its whole question tree.
func (s *Session) CreateQuiz(ctx context.Context, lectureID string, req QuizRequest) (*QuizResponse, error) {
	var out QuizResponse
	path := "/v1/lectures/" + url.PathEscape(lectureID) + "/quizzes"
	if err := s.do(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListQuizzes(ctx context.Context, lectureID string) ([]QuizResponse, error) {
	var out []QuizResponse
	path := "/v1/lectures/" + url.PathEscape(lectureID) + "/quizzes"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuiz returns the quiz with its questions. is_correct is only present
// for callers who manage the classroom.
func (s *Session) GetQuiz(ctx context.Context, id string) (*QuizResponse, error) {
	var out QuizResponse
	if err := s.do(ctx, http.MethodGet, "/v1/quizzes/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateQuiz(ctx context.Context, id string, req QuizPatchRequest) (*QuizResponse, error) {
	var out QuizResponse
	if err := s.do(ctx, http.MethodPatch, "/v1/quizzes/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteQuiz(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/quizzes/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) AddQuestion(ctx context.Context, quizID string, req QuestionRequest) (*QuestionResponse, error) {
	var out QuestionResponse
	path := "/v1/quizzes/" + url.PathEscape(quizID) + "/questions"
	if err := s.do(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateQuestion(ctx context.Context, id string, req QuestionPatchRequest) (*QuestionResponse, error) {
	var out QuestionResponse
	if err := s.do(ctx, http.MethodPatch, "/v1/questions/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteQuestion(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/questions/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) AddOptionGroup(ctx context.Context, questionID string, req OptionGroupRequest) (*OptionGroupResponse, error) {
	var out OptionGroupResponse
	path := "/v1/questions/" + url.PathEscape(questionID) + "/option-groups"
	if err := s.do(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateOptionGroup(ctx context.Context, id string, req OptionGroupPatchRequest) (*OptionGroupResponse, error) {
	var out OptionGroupResponse
	if err := s.do(ctx, http.MethodPatch, "/v1/option-groups/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteOptionGroup(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/option-groups/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) AddAnswerOption(ctx context.Context, groupID string, req AnswerOptionRequest) (*AnswerOptionResponse, error) {
	var out AnswerOptionResponse
	path := "/v1/option-groups/" + url.PathEscape(groupID) + "/options"
	if err := s.do(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateAnswerOption(ctx context.Context, id string, req AnswerOptionPatchRequest) (*AnswerOptionResponse, error) {
	var out AnswerOptionResponse
	if err := s.do(ctx, http.MethodPatch, "/v1/options/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteAnswerOption(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/options/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
