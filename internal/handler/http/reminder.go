package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReminderHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type reminderHandlerImpl struct {
	reminderService reminder.Service
}

func NewReminderHandler(reminderService reminder.Service) ReminderHandler {
	return &reminderHandlerImpl{reminderService: reminderService}
}

func (h *reminderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminderService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, reminders)
}

func (h *reminderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req reminder.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.reminderService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reminder created", created)
}

func (h *reminderHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reminderService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reminder deleted", nil)
}
