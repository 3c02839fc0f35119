package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/handler/http/response"
)

type ShiftsHandler interface {
	Recent(w http.ResponseWriter, r *http.Request)
}

type shiftsHandlerImpl struct {
	records  shift.RecordRepository
	pageSize int
}

func NewShiftsHandler(records shift.RecordRepository, pageSize int) ShiftsHandler {
	return &shiftsHandlerImpl{
		records:  records,
		pageSize: pageSize,
	}
}

// Recent implements ShiftsHandler. It returns the newest rows first, capped
// at the configured page size unless a smaller ?limit= is given.
func (h *shiftsHandlerImpl) Recent(w http.ResponseWriter, r *http.Request) {
	limit := h.pageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(w, "limit must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	_, rows, err := h.records.ReadAll(r.Context())
	if err != nil {
		slog.Error("failed to read shifts", "error", err)
		response.HandleError(w, err)
		return
	}

	recent := make([]shift.Row, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, rows[i])
	}
	response.Success(w, recent)
}
