package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/dharmendra-007/personal-finance-tracker/internal/application/service"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/schema"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/logger"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps request bodies; transaction payloads are tiny.
const maxBodyBytes = 1 << 20

// TransactionHandler handles HTTP requests for transactions
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(svc *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: svc,
		logger:  log,
	}
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/transactions", h.ListTransactions).Methods(http.MethodGet)
	router.HandleFunc("/api/transactions", h.CreateTransaction).Methods(http.MethodPost)
	router.HandleFunc("/api/transactions/{id}", h.ReplaceTransaction).Methods(http.MethodPut)
	router.HandleFunc("/api/transactions/{id}", h.PatchTransaction).Methods(http.MethodPatch)
	router.HandleFunc("/api/transactions/{id}", h.DeleteTransaction).Methods(http.MethodDelete)

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/transactions",
			"POST /api/transactions",
			"PUT /api/transactions/{id}",
			"PATCH /api/transactions/{id}",
			"DELETE /api/transactions/{id}",
		},
	})
}

// ListTransactions returns every stored transaction, newest date first.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	txs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list transactions", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	respond(w, http.StatusOK, "Transactions fetched successfully", txs)
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	body, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	tx, err := h.service.Create(r.Context(), body)
	if err != nil {
		h.respondServiceError(w, err, requestID, "Failed to create transaction")
		return
	}

	h.logger.Info("Transaction created", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
		"type":       tx.Type,
	})
	respond(w, http.StatusCreated, "Transaction created successfully", tx)
}

// ReplaceTransaction fully replaces a transaction by ID. The
// replacement payload goes through the same rules a new record does.
func (h *TransactionHandler) ReplaceTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	body, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	tx, err := h.service.Replace(r.Context(), id, body)
	if err != nil {
		h.respondServiceError(w, err, requestID, "Failed to update transaction")
		return
	}

	respond(w, http.StatusOK, "Transaction updated successfully", tx)
}

// PatchTransaction applies a partial update to a transaction by ID.
func (h *TransactionHandler) PatchTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	body, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	tx, err := h.service.Patch(r.Context(), id, body)
	if err != nil {
		h.respondServiceError(w, err, requestID, "Failed to update transaction")
		return
	}

	respond(w, http.StatusOK, "Transaction updated successfully", tx)
}

// DeleteTransaction removes a transaction by ID.
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, requestID, "Failed to delete transaction")
		return
	}

	h.logger.Info("Transaction deleted", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})
	respond(w, http.StatusOK, "Transaction deleted successfully", nil)
}

// respondServiceError maps service errors onto the envelope taxonomy:
// malformed input and field violations are 400s, unknown identifiers
// are 404s, anything else is the generic 500 with no internal detail.
func (h *TransactionHandler) respondServiceError(w http.ResponseWriter, err error, requestID, fallback string) {
	var fieldErrs schema.ErrorList
	switch {
	case errors.Is(err, schema.ErrMalformedInput):
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
	case errors.As(err, &fieldErrs):
		h.logger.Warn("Validation failed", map[string]interface{}{
			"request_id": requestID,
			"errors":     fieldErrs.Error(),
		})
		respondError(w, http.StatusBadRequest, fieldErrs.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "Transaction not found")
	default:
		h.logger.Error("Unexpected error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}
