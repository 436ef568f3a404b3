package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sp075/salon-booking-system/internal/api/handlers"
	"github.com/sp075/salon-booking-system/internal/domain"
	availableSlots "github.com/sp075/salon-booking-system/internal/usecase/get_available_slots"
)

const (
	msgInvalidOwnerID    = "некорректный идентификатор владельца"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceIDs = "некорректный список услуг"
	msgOwnerNotFound     = "владелец не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerProfileId}/slots?date=2025-10-15&serviceIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerProfileID, err := uuid.Parse(mux.Vars(r)["ownerProfileId"])
	if err != nil {
		h.logger.Warn("GET /owners/{id}/slots - Invalid owner id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /owners/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /owners/{id}/slots - Invalid serviceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &availableSlots.Request{
		OwnerProfileID: ownerProfileID,
		Date:           date,
		ServiceIDs:     serviceIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, availableSlots.ErrOwnerNotFound):
			h.logger.Warn("GET /owners/{id}/slots - Owner not found: owner=%s", ownerProfileID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, availableSlots.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)

		default:
			h.logger.Error("GET /owners/{id}/slots - Failed to get slots: owner=%s, error=%v", ownerProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseServiceIDs парсит список идентификаторов услуг из query параметра
// Пустой параметр означает запрос на один слот
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
