package http

import (
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

// ClassroomsHandler serves classrooms, join requests and memberships.
type ClassroomsHandler struct {
	Classrooms *service.ClassroomService
}

// classroomAndStudent reads the {id} and {studentId} path parameters.
func classroomAndStudent(r *http.Request) (string, string, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return "", "", err
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		return "", "", err
	}
	return id, studentID, nil
}

// HandleCreate handles POST /v1/classrooms
//
//	@Summary		Create a classroom
//	@Description	The caller becomes the owner.
//	@Tags			Classrooms
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		lecternsdk.ClassroomRequest	true	"Classroom"
//	@Success		201		{object}	lecternsdk.ClassroomResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms [post].
func (h *ClassroomsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req lecternsdk.ClassroomRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.Classrooms.Create(r.Context(), actor(r), service.ClassroomInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toClassroomResponse(c))
}

// HandleList handles GET /v1/classrooms
//
//	@Summary		List classrooms
//	@Description	Admins see every classroom, teachers the ones they own and students those they are active members of.
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Page size (default 50, max 200)"
//	@Param			offset	query		int	false	"Rows to skip"
//	@Success		200		{array}		lecternsdk.ClassroomResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms [get].
func (h *ClassroomsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	list, err := h.Classrooms.ListForUser(r.Context(), actor(r), page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toClassroomResponse))
}

// HandleGet handles GET /v1/classrooms/{id}
//
//	@Summary		Get a classroom
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Classroom ID"
//	@Success		200	{object}	lecternsdk.ClassroomResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id} [get].
func (h *ClassroomsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.Classrooms.Get(r.Context(), actor(r), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClassroomResponse(c))
}

// HandleUpdate handles PATCH /v1/classrooms/{id}
//
//	@Summary		Update a classroom
//	@Tags			Classrooms
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Classroom ID"
//	@Param			request	body		lecternsdk.ClassroomPatchRequest	true	"Fields to change"
//	@Success		200		{object}	lecternsdk.ClassroomResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id} [patch].
func (h *ClassroomsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.ClassroomPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	c, err := h.Classrooms.Update(r.Context(), actor(r), id, service.ClassroomPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClassroomResponse(c))
}

// HandleDelete handles DELETE /v1/classrooms/{id}
//
//	@Summary		Delete a classroom
//	@Description	Soft deletes the classroom. Its lectures and quizzes disappear with it.
//	@Tags			Classrooms
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Classroom ID"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id} [delete].
func (h *ClassroomsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.Classrooms.Delete(r.Context(), actor(r), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRequestJoin handles POST /v1/classrooms/{id}/join-requests
//
//	@Summary		Ask to join a classroom
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Classroom ID"
//	@Success		201	{object}	lecternsdk.JoinRequestResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		409	{object}	httpx.ErrorResponse	"already a member or already requested"
//	@Failure		422	{object}	httpx.ErrorResponse	"blocked from the classroom"
//	@Router			/v1/classrooms/{id}/join-requests [post].
func (h *ClassroomsHandler) HandleRequestJoin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	jr, err := h.Classrooms.RequestJoin(r.Context(), actor(r), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toJoinRequestResponse(jr))
}

// HandleListJoinRequests handles GET /v1/classrooms/{id}/join-requests
//
//	@Summary		List pending join requests
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Classroom ID"
//	@Success		200	{array}		lecternsdk.JoinRequestResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id}/join-requests [get].
func (h *ClassroomsHandler) HandleListJoinRequests(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	list, err := h.Classrooms.ListJoinRequests(r.Context(), actor(r), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toJoinRequestResponse))
}

// HandleApproveJoin handles POST /v1/classrooms/{id}/join-requests/{studentId}/approve
//
//	@Summary		Approve a join request
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Classroom ID"
//	@Param			studentId	path		string	true	"Student ID"
//	@Success		200			{object}	lecternsdk.MemberResponse
//	@Failure		404			{object}	httpx.ErrorResponse
//	@Failure		422			{object}	httpx.ErrorResponse	"student deactivated"
//	@Router			/v1/classrooms/{id}/join-requests/{studentId}/approve [post].
func (h *ClassroomsHandler) HandleApproveJoin(w http.ResponseWriter, r *http.Request) {
	id, studentID, err := classroomAndStudent(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	m, err := h.Classrooms.ApproveJoin(r.Context(), actor(r), id, studentID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(m))
}

// HandleRejectJoin handles DELETE /v1/classrooms/{id}/join-requests/{studentId}
//
//	@Summary		Reject a join request
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Classroom ID"
//	@Param			studentId	path		string	true	"Student ID"
//	@Success		200			{object}	httpx.MessageResponse
//	@Failure		404			{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id}/join-requests/{studentId} [delete].
func (h *ClassroomsHandler) HandleRejectJoin(w http.ResponseWriter, r *http.Request) {
	id, studentID, err := classroomAndStudent(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.Classrooms.RejectJoin(r.Context(), actor(r), id, studentID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusOK, "classroom.join_rejected")
}

// HandleListMembers handles GET /v1/classrooms/{id}/members
//
//	@Summary		List members
//	@Description	Includes blocked students with active=false.
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Classroom ID"
//	@Success		200	{array}		lecternsdk.MemberResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id}/members [get].
func (h *ClassroomsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	list, err := h.Classrooms.ListMembers(r.Context(), actor(r), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toMemberResponse))
}

// HandleDeactivateMember handles POST /v1/classrooms/{id}/members/{studentId}/deactivate
//
//	@Summary		Block a student
//	@Description	Marks the membership inactive and drops any pending join request.
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Classroom ID"
//	@Param			studentId	path		string	true	"Student ID"
//	@Success		200			{object}	httpx.MessageResponse
//	@Failure		404			{object}	httpx.ErrorResponse
//	@Failure		422			{object}	httpx.ErrorResponse	"not a student"
//	@Router			/v1/classrooms/{id}/members/{studentId}/deactivate [post].
func (h *ClassroomsHandler) HandleDeactivateMember(w http.ResponseWriter, r *http.Request) {
	id, studentID, err := classroomAndStudent(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	msg, err := h.Classrooms.Deactivate(r.Context(), actor(r), id, studentID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusOK, msg)
}

// HandleActivateMember handles POST /v1/classrooms/{id}/members/{studentId}/activate
//
//	@Summary		Unblock a student
//	@Tags			Classrooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Classroom ID"
//	@Param			studentId	path		string	true	"Student ID"
//	@Success		200			{object}	httpx.MessageResponse
//	@Failure		404			{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id}/members/{studentId}/activate [post].
func (h *ClassroomsHandler) HandleActivateMember(w http.ResponseWriter, r *http.Request) {
	id, studentID, err := classroomAndStudent(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	msg, err := h.Classrooms.Activate(r.Context(), actor(r), id, studentID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteMessage(w, r, http.StatusOK, msg)
}
