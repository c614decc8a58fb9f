package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"venue-route-service/internal/api/dto"
	"venue-route-service/internal/domain"
	"venue-route-service/internal/platform/obs"
	"venue-route-service/internal/ports"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v. It writes the 400
// response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// errorStatus maps service and domain errors to an HTTP status and a
// client-facing message.
func errorStatus(err error) (int, string) {
	var pe *domain.PositionError
	var ne *domain.NoPathError
	var use *domain.UnknownStallError

	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &use):
		return http.StatusBadRequest, use.Error()
	case errors.As(err, &pe):
		return http.StatusBadRequest, pe.Error()
	case errors.Is(err, domain.ErrInvalidPosition):
		return http.StatusBadRequest, domain.ErrInvalidPosition.Error()
	case errors.As(err, &ne):
		return http.StatusUnprocessableEntity, ne.Error()
	case errors.Is(err, domain.ErrNoPathFound):
		return http.StatusUnprocessableEntity, domain.ErrNoPathFound.Error()
	case errors.Is(err, ports.ErrVenueNotFound):
		return http.StatusNotFound, ports.ErrVenueNotFound.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
	writeError(w, r, status, msg)
}

func errorResponse(err error) *dto.ErrorResponse {
	status, msg := errorStatus(err)
	return &dto.ErrorResponse{Status: status, Message: msg}
}

func toPositionDTO(p domain.Position) dto.PositionDTO {
	return dto.PositionDTO{X: p.X, Y: p.Y}
}

func toPositionDTOs(ps []domain.Position) []dto.PositionDTO {
	out := make([]dto.PositionDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPositionDTO(p))
	}
	return out
}
