package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/lectern/pkg/apperr"
	"github.com/aussiebroadwan/lectern/pkg/i18n"
	"github.com/aussiebroadwan/lectern/pkg/slogx"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string            `json:"error" example:"validation"`
	Message   string            `json:"message" example:"The request contains invalid fields."`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// MessageResponse is returned by operations that have nothing else to say.
type MessageResponse struct {
	Message string `json:"message" example:"student blocked from classroom"`
}

// WriteJSON writes v as JSON with the given status code. Responses are never
// cached since most of them carry credentials or per-user data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a localized MessageResponse.
func WriteMessage(w http.ResponseWriter, r *http.Request, code int, key string) {
	WriteJSON(w, code, MessageResponse{Message: i18n.Translate(Lang(r.Context()), key)})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

var errMalformedBody = apperr.Validation(map[string]string{"body": "validation.malformed_json"})

// DecodeJSON reads a single JSON document from the request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errMalformedBody.Wrap(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errMalformedBody.Wrap(errors.New("trailing data after JSON document"))
	}
	return nil
}

// WriteError renders err as an ErrorResponse. Unclassified errors become a
// generic 500 and are logged with a stack trace.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	e := apperr.As(err)
	tag := Lang(ctx)

	if e.Kind == apperr.KindInternal {
		slogx.FromContext(ctx).Error("request failed", slogx.Err(err), slogx.Stack())
	}

	resp := ErrorResponse{
		Error:     string(e.Kind),
		Message:   i18n.Translate(tag, e.Key),
		RequestID: slogx.RequestID(ctx),
	}
	if len(e.Fields) > 0 {
		resp.Fields = make(map[string]string, len(e.Fields))
		for field, key := range e.Fields {
			resp.Fields[field] = i18n.Translate(tag, key)
		}
	}

	WriteJSON(w, e.Kind.HTTPStatus(), resp)
}
