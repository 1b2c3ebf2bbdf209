package lecternsdk

import (
	"context"
	"net/http"
	"net/url"
)

func classroomPath(id string, rest ...string) string {
	p := "/v1/classrooms/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (s *Session) CreateClassroom(ctx context.Context, req ClassroomRequest) (*ClassroomResponse, error) {
	var out ClassroomResponse
	if err := s.do(ctx, http.MethodPost, "/v1/classrooms", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClassrooms returns what the caller can see: everything for admins,
// owned classrooms for teachers, memberships for students.
func (s *Session) ListClassrooms(ctx context.Context, limit, offset int) ([]ClassroomResponse, error) {
	var out []ClassroomResponse
	if err := s.do(ctx, http.MethodGet, "/v1/classrooms"+pageQuery(limit, offset), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetClassroom(ctx context.Context, id string) (*ClassroomResponse, error) {
	var out ClassroomResponse
	if err := s.do(ctx, http.MethodGet, classroomPath(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateClassroom(ctx context.Context, id string, req ClassroomPatchRequest) (*ClassroomResponse, error) {
	var out ClassroomResponse
	if err := s.do(ctx, http.MethodPatch, classroomPath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteClassroom(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, classroomPath(id), nil, nil, http.StatusNoContent)
}

// RequestJoin files a join request for the calling student.
func (s *Session) RequestJoin(ctx context.Context, classroomID string) (*JoinRequestResponse, error) {
	var out JoinRequestResponse
	if err := s.do(ctx, http.MethodPost, classroomPath(classroomID, "join-requests"), nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListJoinRequests(ctx context.Context, classroomID string) ([]JoinRequestResponse, error) {
	var out []JoinRequestResponse
	if err := s.do(ctx, http.MethodGet, classroomPath(classroomID, "join-requests"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) ApproveJoin(ctx context.Context, classroomID, studentID string) (*MemberResponse, error) {
	var out MemberResponse
	path := classroomPath(classroomID, "join-requests", url.PathEscape(studentID), "approve")
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RejectJoin(ctx context.Context, classroomID, studentID string) error {
	path := classroomPath(classroomID, "join-requests", url.PathEscape(studentID))
	return s.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK)
}

func (s *Session) ListMembers(ctx context.Context, classroomID string) ([]MemberResponse, error) {
	var out []MemberResponse
	if err := s.do(ctx, http.MethodGet, classroomPath(classroomID, "members"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// DeactivateMember blocks a student from the classroom and returns the
// localized confirmation.
func (s *Session) DeactivateMember(ctx context.Context, classroomID, studentID string) (string, error) {
	var out MessageResponse
	path := classroomPath(classroomID, "members", url.PathEscape(studentID), "deactivate")
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (s *Session) ActivateMember(ctx context.Context, classroomID, studentID string) (string, error) {
	var out MessageResponse
	path := classroomPath(classroomID, "members", url.PathEscape(studentID), "activate")
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Message, nil
}
