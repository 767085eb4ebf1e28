package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BillHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	MarkSent(w http.ResponseWriter, r *http.Request)
	Reminders(w http.ResponseWriter, r *http.Request)
}

type billHandlerImpl struct {
	billService bill.BillService
}

func NewBillHandler(billService bill.BillService) BillHandler {
	return &billHandlerImpl{billService: billService}
}

func (h *billHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := bill.ListBillsQuery{
		ClientID: r.URL.Query().Get("client_id"),
		Sent:     r.URL.Query().Get("sent"),
	}

	bills, err := h.billService.List(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, bills)
}

func (h *billHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req bill.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.billService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Bill created", created)
}

func (h *billHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.billService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, b)
}

func (h *billHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req bill.UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.billService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

func (h *billHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.billService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Bill deleted", nil)
}

func (h *billHandlerImpl) MarkSent(w http.ResponseWriter, r *http.Request) {
	sent, err := h.billService.MarkSent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Bill marked as sent", sent)
}

// Reminders lists unsent bills by due date.
func (h *billHandlerImpl) Reminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.billService.Reminders(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, reminders)
}
