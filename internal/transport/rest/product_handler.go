package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"lojabackend/internal/service"
	"lojabackend/pkg/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const msgProductCreated = "Produto criado com sucesso!"

// ProductHandler serves the product catalog. The catalog is public, so none
// of its routes sit behind the auth middleware.
type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new instance of the product API with the provided service.
func NewProductHandler(service service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product resource.
func (h *ProductHandler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/produtos", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Get("/{categoria}", h.ListByCategory)
		r.Post("/", h.Create)
	})
}

// ListAll retrieves every product in the catalog.
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to list all products")

	list, err := h.service.ListAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"status":    http.StatusOK,
		"resultado": list,
	})
}

// ListByCategory retrieves the products of one category. An unknown category
// is not an error; it yields an empty result list.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := r.PathValue("categoria")
	mLogger.DebugContext(r.Context(), "Received request to list products by category", "categoria", category)

	list, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving products by category", "categoria", category, "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{
		"status":    http.StatusOK,
		"resultado": list,
	})
}

// Create adds a new product to the catalog.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var input service.ProductInputDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		mLogger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgWrongType)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		mLogger.WarnContext(r.Context(), "Missing product fields", "error", err)
		web.RespondMessage(w, mLogger, http.StatusBadRequest, msgMissingFields)
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondMessage(w, mLogger, http.StatusInternalServerError, msgServerError)
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", slog.Int64("ID", created.ID))
	web.RespondMessage(w, mLogger, http.StatusCreated, msgProductCreated)
}

func (h *ProductHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
