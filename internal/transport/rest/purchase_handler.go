// Package rest provides HTTP handlers for purchase-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "lojabackend/internal/errors"
	"lojabackend/internal/service"
	"lojabackend/pkg/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// User-facing messages, kept verbatim from the legacy backend so the
// existing mobile client keeps working.
const (
	msgServerError      = "Erro no contato com o servidor."
	msgMissingFields    = "Preencha todos os campos."
	msgWrongType        = "Tipo dos dados incorreto."
	msgInvalidID        = "Id da compra inválido."
	msgCustomerNotFound = "Cliente não encontrado."
	msgPurchaseNotFound = "Compra não encontrada."
	msgCreated          = "Compra criada com sucesso!"
	msgUpdated          = "Compra editada com sucesso!"
	msgDeleted          = "Compra excluída com sucesso!"
	msgCascadeDeleted   = "Compras excluídas com sucesso!"
	msgUnknownCustomer  = "Este cliente não existe."
	msgNoPurchases      = "Nenhuma compra encontrada para este cliente."
)

type Handler struct {
	service  service.PurchaseService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the purchase API with the provided service.
func NewHandler(service service.PurchaseService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the purchase resource. Every
// route except the per-customer cascade delete sits behind the auth middleware.
func (h *Handler) RegisterRoutes(r *chi.Mux, auth func(http.Handler) http.Handler) {
	r.Route("/api/v1/compras", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/", h.ListAll)
			r.Post("/", h.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.ListForCustomer)
				r.Put("/", h.Update)
				r.Delete("/", h.Delete)
			})
		})

		r.Delete("/cliente/{numero}", h.DeleteForCustomer)
	})
	r.Get("/healthz", h.HealthCheck)
}

// ListAll retrieves every purchase.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to list all purchases")

	list, err := h.service.ListAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving purchase list", "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved purchase list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"status":    http.StatusOK,
		"resultado": list,
	})
}

// ListForCustomer retrieves the purchases of one customer. An id that does
// not parse as an integer cannot match any customer and maps to the same 404
// the legacy backend produced through implicit SQL coercion.
func (h *Handler) ListForCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	pathID := r.PathValue("id")
	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Non-numeric customer ID", "ID", pathID)
		web.RespondMessage(w, mLogger, http.StatusNotFound, msgCustomerNotFound)
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to list purchases of customer", "ID", id)
	list, err := h.service.ListForCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCustomerNotFound) {
			mLogger.WarnContext(r.Context(), "Customer not found", "ID", id)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgCustomerNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving purchases of customer", "ID", id, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"status":  http.StatusOK,
		"compras": list,
	})
}

// Create handles the creation of a new purchase.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	input, ok := h.decodeInput(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create purchase", "id_cliente", *input.CustomerID)
	created, err := h.service.Create(r.Context(), *input)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating purchase", "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	mLogger.InfoContext(r.Context(), "Purchase created successfully", slog.Int64("ID", created.ID))
	web.RespondMessage(w, mLogger, http.StatusOK, msgCreated)
}

// Update overwrites an existing purchase. Field presence is checked before
// the id, matching the legacy validation order.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	input, ok := h.decodeInput(w, r, mLogger)
	if !ok {
		return
	}

	pathID := r.PathValue("id")
	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Invalid purchase ID", "ID", pathID)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgInvalidID)
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update purchase", "ID", id)
	updated, err := h.service.Update(r.Context(), id, *input)
	if err != nil {
		if errors.Is(err, apperrors.ErrPurchaseNotFound) {
			mLogger.WarnContext(r.Context(), "Purchase not found for update", "ID", id)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgPurchaseNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating purchase", "ID", id, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	mLogger.InfoContext(r.Context(), "Purchase updated successfully", slog.Int64("ID", updated.ID))
	web.RespondMessage(w, mLogger, http.StatusOK, msgUpdated)
}

// Delete removes one purchase. There is no prior existence check; the delete
// statement's affected-row count is the check, so a non-numeric id simply
// reads as a purchase that is not there.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	pathID := r.PathValue("id")
	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil {
		mLogger.WarnContext(r.Context(), "Non-numeric purchase ID", "ID", pathID)
		web.RespondMessage(w, mLogger, http.StatusNotFound, msgPurchaseNotFound)
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete purchase", "ID", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrPurchaseNotFound) {
			mLogger.WarnContext(r.Context(), "Purchase not found for deletion", "ID", id)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgPurchaseNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting purchase", "ID", id, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	mLogger.InfoContext(r.Context(), "Purchase deleted successfully", slog.Int64("ID", id))
	web.RespondMessage(w, mLogger, http.StatusOK, msgDeleted)
}

// DeleteForCustomer removes every purchase of the customer with the given
// external number. The 401 for an unknown customer is a legacy quirk kept
// for wire compatibility.
func (h *Handler) DeleteForCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	number := r.PathValue("numero")

	mLogger.DebugContext(r.Context(), "Received request to delete purchases of customer", "numero", number)
	if err := h.service.DeleteForCustomer(r.Context(), number); err != nil {
		if errors.Is(err, apperrors.ErrUnknownCustomer) {
			mLogger.WarnContext(r.Context(), "Unknown customer for cascade delete", "numero", number)
			web.RespondMessage(w, mLogger, http.StatusUnauthorized, msgUnknownCustomer)
			return
		}
		if errors.Is(err, apperrors.ErrNoPurchasesForCustomer) {
			mLogger.WarnContext(r.Context(), "Customer has no purchases", "numero", number)
			web.RespondMessage(w, mLogger, http.StatusNotFound, msgNoPurchases)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting purchases of customer", "numero", number, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	mLogger.InfoContext(r.Context(), "Purchases of customer deleted successfully", "numero", number)
	web.RespondMessage(w, mLogger, http.StatusOK, msgCascadeDeleted)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeInput decodes and validates the purchase body shared by Create and
// Update. A JSON value of the wrong type maps to the legacy type-error
// message; missing or null fields map to the missing-fields message.
func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*service.PurchaseInputDto, bool) {
	var input service.PurchaseInputDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgWrongType)
		return nil, false
	}

	if err := h.validate.Struct(input); err != nil {
		mLogger.WarnContext(r.Context(), "Missing purchase fields", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgMissingFields)
		return nil, false
	}
	return &input, true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
