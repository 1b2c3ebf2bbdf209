package http

import (
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

type LecturesHandler struct {
	Lectures *service.LectureService
}

// HandleCreate handles POST /v1/classrooms/{id}/lectures
//
//	@Summary		Create a lecture
//	@Tags			Lectures
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Classroom ID"
//	@Param			request	body		lecternsdk.LectureRequest	true	"Lecture"
//	@Success		201		{object}	lecternsdk.LectureResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id}/lectures [post].
func (h *LecturesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	classroomID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.LectureRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	l, err := h.Lectures.Create(r.Context(), actor(r), classroomID, service.LectureInput{
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toLectureResponse(l))
}

// HandleList handles GET /v1/classrooms/{id}/lectures
//
//	@Summary		List lectures
//	@Description	Ordered by position.
//	@Tags			Lectures
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Classroom ID"
//	@Success		200	{array}		lecternsdk.LectureResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/classrooms/{id}/lectures [get].
func (h *LecturesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	classroomID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	list, err := h.Lectures.ListByClassroom(r.Context(), actor(r), classroomID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toLectureResponse))
}

// HandleGet handles GET /v1/lectures/{id}
//
//	@Summary		Get a lecture
//	@Tags			Lectures
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Lecture ID"
//	@Success		200	{object}	lecternsdk.LectureResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/lectures/{id} [get].
func (h *LecturesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	l, err := h.Lectures.Get(r.Context(), actor(r), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLectureResponse(l))
}

// HandleUpdate handles PATCH /v1/lectures/{id}
//
//	@Summary		Update a lecture
//	@Tags			Lectures
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Lecture ID"
//	@Param			request	body		lecternsdk.LecturePatchRequest	true	"Fields to change"
//	@Success		200		{object}	lecternsdk.LectureResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/lectures/{id} [patch].
func (h *LecturesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.LecturePatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	l, err := h.Lectures.Update(r.Context(), actor(r), id, service.LecturePatch{
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLectureResponse(l))
}

// HandleDelete handles DELETE /v1/lectures/{id}
//
//	@Summary		Delete a lecture
//	@Tags			Lectures
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Lecture ID"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/lectures/{id} [delete].
func (h *LecturesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.Lectures.Delete(r.Context(), actor(r), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
