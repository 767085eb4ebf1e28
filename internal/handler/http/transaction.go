package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TransactionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type transactionHandlerImpl struct {
	transactionService ledger.TransactionService
}

func NewTransactionHandler(transactionService ledger.TransactionService) TransactionHandler {
	return &transactionHandlerImpl{transactionService: transactionService}
}

// transactionQuery reads the filters shared by list, summary and export.
func transactionQuery(r *http.Request) ledger.ListTransactionsQuery {
	q := r.URL.Query()
	return ledger.ListTransactionsQuery{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Type:      q.Get("type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

func (h *transactionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	txs, err := h.transactionService.List(r.Context(), transactionQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, txs)
}

func (h *transactionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.transactionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Transaction created", created)
}

func (h *transactionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactionService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tx)
}

func (h *transactionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req ledger.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.transactionService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

func (h *transactionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Transaction deleted", nil)
}

func (h *transactionHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	query := ledger.SummaryQuery{
		ListTransactionsQuery: transactionQuery(r),
		Months:                r.URL.Query().Get("months"),
	}

	summary, err := h.transactionService.Summary(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
