package response

import (
	"errors"
	"net/http"

	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/pkg/github"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shift.ErrRecordNotFound):
		NotFound(w, "Shift record not found")
	case errors.Is(err, github.ErrNotFound):
		NotFound(w, "Shift file not found")
	case errors.Is(err, github.ErrVersionConflict):
		InternalServerError(w, "Shift file changed concurrently, try again")
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
