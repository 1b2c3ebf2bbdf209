package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/lectern/internal/lectern/service"
	"github.com/aussiebroadwan/lectern/pkg/httpx"
	"github.com/aussiebroadwan/lectern/pkg/lecternsdk"
)

// QuizzesHandler serves quizzes and their question trees. Only managers of
// the classroom reach the write endpoints, so everything but HandleGet and
// HandleList renders with answers.
type QuizzesHandler struct {
	Quizzes *service.QuizService
}

// HandleCreate handles POST /v1/lectures/{id}/quizzes
//
//	@Summary		Create a quiz
//	@Description	The whole question tree may be sent along and is stored in one transaction.
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Lecture ID"
//	@Param			request	body		lecternsdk.QuizRequest	true	"Quiz"
//	@Success		201		{object}	lecternsdk.QuizResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/lectures/{id}/quizzes [post].
func (h *QuizzesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	lectureID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.QuizRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q, err := h.Quizzes.Create(r.Context(), actor(r), lectureID, toQuizInput(req))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toQuizResponse(q))
}

// HandleList handles GET /v1/lectures/{id}/quizzes
//
//	@Summary		List quizzes of a lecture
//	@Description	Quizzes are listed without their questions.
//	@Tags			Quizzes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Lecture ID"
//	@Success		200	{array}		lecternsdk.QuizResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/lectures/{id}/quizzes [get].
func (h *QuizzesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lectureID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	list, err := h.Quizzes.ListByLecture(r.Context(), actor(r), lectureID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toQuizResponse))
}

// HandleGet handles GET /v1/quizzes/{id}
//
//	@Summary		Get a quiz
//	@Description	Returns the question tree. is_correct is only included for those who manage the classroom.
//	@Tags			Quizzes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Quiz ID"
//	@Success		200	{object}	lecternsdk.QuizResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/quizzes/{id} [get].
func (h *QuizzesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q, err := h.Quizzes.Get(r.Context(), actor(r), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toQuizResponse(q))
}

// HandleUpdate handles PATCH /v1/quizzes/{id}
//
//	@Summary		Update a quiz
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Quiz ID"
//	@Param			request	body		lecternsdk.QuizPatchRequest	true	"Fields to change"
//	@Success		200		{object}	lecternsdk.QuizResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/quizzes/{id} [patch].
func (h *QuizzesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.QuizPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q, err := h.Quizzes.Update(r.Context(), actor(r), id, service.QuizPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toQuizResponse(q))
}

// HandleDelete handles DELETE /v1/quizzes/{id}
//
//	@Summary		Delete a quiz
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Quiz ID"
//	@Success		204
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/quizzes/{id} [delete].
func (h *QuizzesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Quizzes.Delete)
}

// HandleAddQuestion handles POST /v1/quizzes/{id}/questions
//
//	@Summary		Add a question
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Quiz ID"
//	@Param			request	body		lecternsdk.QuestionRequest	true	"Question, optionally with option groups"
//	@Success		201		{object}	lecternsdk.QuestionResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/quizzes/{id}/questions [post].
func (h *QuizzesHandler) HandleAddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.QuestionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q, err := h.Quizzes.AddQuestion(r.Context(), actor(r), quizID, toQuestionInput(req))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toQuestionResponse(q, false))
}

// HandleUpdateQuestion handles PATCH /v1/questions/{id}
//
//	@Summary		Update a question
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Question ID"
//	@Param			request	body		lecternsdk.QuestionPatchRequest	true	"Fields to change"
//	@Success		200		{object}	lecternsdk.QuestionResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/questions/{id} [patch].
func (h *QuizzesHandler) HandleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.QuestionPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	q, err := h.Quizzes.UpdateQuestion(r.Context(), actor(r), id, service.QuestionPatch{
		Prompt:   req.Prompt,
		Position: req.Position,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toQuestionResponse(q, false))
}

// HandleDeleteQuestion handles DELETE /v1/questions/{id}
//
//	@Summary		Delete a question
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Question ID"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/questions/{id} [delete].
func (h *QuizzesHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Quizzes.DeleteQuestion)
}

// HandleAddOptionGroup handles POST /v1/questions/{id}/option-groups
//
//	@Summary		Add an option group
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Question ID"
//	@Param			request	body		lecternsdk.OptionGroupRequest	true	"Option group with its options"
//	@Success		201		{object}	lecternsdk.OptionGroupResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/questions/{id}/option-groups [post].
func (h *QuizzesHandler) HandleAddOptionGroup(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.OptionGroupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	g, err := h.Quizzes.AddOptionGroup(r.Context(), actor(r), questionID, toOptionGroupInput(req))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toOptionGroupResponse(g, false))
}

// HandleUpdateOptionGroup handles PATCH /v1/option-groups/{id}
//
//	@Summary		Update an option group
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Option group ID"
//	@Param			request	body		lecternsdk.OptionGroupPatchRequest	true	"Fields to change"
//	@Success		200		{object}	lecternsdk.OptionGroupResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/option-groups/{id} [patch].
func (h *QuizzesHandler) HandleUpdateOptionGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.OptionGroupPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	g, err := h.Quizzes.UpdateOptionGroup(r.Context(), actor(r), id, service.OptionGroupPatch{
		Label:    req.Label,
		Position: req.Position,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOptionGroupResponse(g, false))
}

// HandleDeleteOptionGroup handles DELETE /v1/option-groups/{id}
//
//	@Summary		Delete an option group
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Option group ID"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/option-groups/{id} [delete].
func (h *QuizzesHandler) HandleDeleteOptionGroup(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Quizzes.DeleteOptionGroup)
}

// HandleAddAnswerOption handles POST /v1/option-groups/{id}/options
//
//	@Summary		Add an answer option
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Option group ID"
//	@Param			request	body		lecternsdk.AnswerOptionRequest	true	"Answer option"
//	@Success		201		{object}	lecternsdk.AnswerOptionResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/option-groups/{id}/options [post].
func (h *QuizzesHandler) HandleAddAnswerOption(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.AnswerOptionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	o, err := h.Quizzes.AddAnswerOption(r.Context(), actor(r), groupID, toAnswerOptionInput(req))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAnswerOptionResponse(o, false))
}

// HandleUpdateAnswerOption handles PATCH /v1/options/{id}
//
//	@Summary		Update an answer option
//	@Tags			Quizzes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Answer option ID"
//	@Param			request	body		lecternsdk.AnswerOptionPatchRequest	true	"Fields to change"
//	@Success		200		{object}	lecternsdk.AnswerOptionResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/options/{id} [patch].
func (h *QuizzesHandler) HandleUpdateAnswerOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req lecternsdk.AnswerOptionPatchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	o, err := h.Quizzes.UpdateAnswerOption(r.Context(), actor(r), id, service.AnswerOptionPatch{
		Text:      req.Text,
		IsCorrect: req.IsCorrect,
		Position:  req.Position,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAnswerOptionResponse(o, false))
}

// HandleDeleteAnswerOption handles DELETE /v1/options/{id}
//
//	@Summary		Delete an answer option
//	@Tags			Quizzes
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Answer option ID"
//	@Success		204
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/v1/options/{id} [delete].
func (h *QuizzesHandler) HandleDeleteAnswerOption(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.Quizzes.DeleteAnswerOption)
}

func (h *QuizzesHandler) remove(
	w http.ResponseWriter,
	r *http.Request,
	del func(ctx context.Context, actor service.Actor, id string) error,
) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := del(r.Context(), actor(r), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
