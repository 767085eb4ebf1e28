package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// EventHandler serves calendar events and the month grid.
type EventHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetDone(w http.ResponseWriter, r *http.Request)
	Grid(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService calendar.EventService
}

func NewEventHandler(eventService calendar.EventService) EventHandler {
	return &eventHandlerImpl{eventService: eventService}
}

func (h *eventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := calendar.ListEventsQuery{
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
		ClientName: r.URL.Query().Get("client_name"),
	}

	events, err := h.eventService.List(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, events)
}

func (h *eventHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.eventService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Event created", created)
}

func (h *eventHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, event)
}

func (h *eventHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.eventService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

func (h *eventHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Event deleted", nil)
}

func (h *eventHandlerImpl) SetDone(w http.ResponseWriter, r *http.Request) {
	var req calendar.SetDoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.eventService.SetDone(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Event updated", nil)
}

func (h *eventHandlerImpl) Grid(w http.ResponseWriter, r *http.Request) {
	query := calendar.GridQuery{
		Month:      r.URL.Query().Get("month"),
		ClientName: r.URL.Query().Get("client_name"),
	}

	grid, err := h.eventService.MonthGrid(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grid)
}
