package assessment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/inference"
	"github.com/Krimson/cardio-risk/assessor/internal/risk"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HTTPHandler обслуживает API оценок (Presentation Layer).
type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes монтирует обработчик под /api.
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/assessments", h.CreateAssessment).Methods("POST")
	api.HandleFunc("/validate", h.ValidateParameters).Methods("POST")
	api.HandleFunc("/model-metrics", h.GetModelMetrics).Methods("GET")
	api.HandleFunc("/risk-tiers", h.ListRiskTiers).Methods("GET")
	api.HandleFunc("/predictions", h.ListPredictions).Methods("GET")
	api.HandleFunc("/predictions/export", h.ExportPredictions).Methods("GET")
}

// CreateAssessment проверяет и оценивает один набор параметров здоровья
// @Summary Assess cardiovascular risk
// @Description Validates the parameters locally, requests a prediction and classifies the probability into a risk tier
// @Tags Assessments
// @Accept json
// @Produce json
// @Param parameters body risk.HealthParameters true "Health parameters"
// @Success 200 {object} Assessment
// @Failure 400 {object} ErrorResponse "Malformed body"
// @Failure 422 {object} ValidationErrorResponse "Invalid parameters"
// @Failure 502 {object} ErrorResponse "Inference service failure"
// @Router /api/assessments [post]
func (h *HTTPHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var params risk.HealthParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Assess(r.Context(), params)
	if err != nil {
		var validationErr *risk.ValidationError
		var inferenceErr *inference.Error
		switch {
		case errors.As(err, &validationErr):
			respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:      "Invalid health parameters",
				Status:     http.StatusUnprocessableEntity,
				Violations: validationErr.Violations,
			})
		case errors.As(err, &inferenceErr):
			respondError(w, http.StatusBadGateway, inferenceErr.Message)
		default:
			h.logger.Error("Assessment failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Failed to assess risk")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ValidateParameters выполняет локальные проверки без обращения к сервису инференса
// @Summary Validate health parameters
// @Tags Assessments
// @Accept json
// @Produce json
// @Param parameters body risk.HealthParameters true "Health parameters"
// @Success 200 {object} ValidationResponse
// @Failure 400 {object} ErrorResponse "Malformed body"
// @Router /api/validate [post]
func (h *HTTPHandler) ValidateParameters(w http.ResponseWriter, r *http.Request) {
	var params risk.HealthParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	violations := h.service.Validate(params)
	if violations == nil {
		violations = []risk.Violation{}
	}
	respondJSON(w, http.StatusOK, ValidationResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// GetModelMetrics возвращает метрики развёрнутой модели
// @Summary Model metrics
// @Tags Model
// @Produce json
// @Success 200 {object} inference.ModelMetrics
// @Failure 502 {object} ErrorResponse "Inference service failure"
// @Router /api/model-metrics [get]
func (h *HTTPHandler) GetModelMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.ModelMetrics(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, inference.ErrMetricsUnavailable.Error())
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// ListRiskTiers возвращает таблицу уровней риска
// @Summary Risk tiers
// @Tags Model
// @Produce json
// @Success 200 {array} risk.Descriptor
// @Router /api/risk-tiers [get]
func (h *HTTPHandler) ListRiskTiers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Tiers())
}

// ListPredictions возвращает последние оценки
// @Summary Prediction history
// @Tags History
// @Produce json
// @Param limit query int false "Number of records (1-50)" default(50)
// @Success 200 {object} HistoryResponse
// @Failure 503 {object} ErrorResponse "History disabled"
// @Router /api/predictions [get]
func (h *HTTPHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	limit := store.ClampLimit(getQueryInt(r, "limit", store.MaxHistory))

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		h.respondHistoryError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		Predictions: records,
		Limit:       limit,
		Count:       len(records),
	})
}

// ExportPredictions выгружает последние оценки в таблицу
// @Summary Export prediction history
// @Tags History
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 503 {object} ErrorResponse "History disabled"
// @Router /api/predictions/export [get]
func (h *HTTPHandler) ExportPredictions(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportHistory(r.Context())
	if err != nil {
		h.respondHistoryError(w, err)
		return
	}

	w.Header().Set("Content-Type", exportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="predictions.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write export", zap.Error(err))
	}
}

func (h *HTTPHandler) respondHistoryError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrHistoryDisabled) {
		respondError(w, http.StatusServiceUnavailable, "Prediction history is not configured")
		return
	}
	h.logger.Error("Failed to load prediction history", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Failed to load prediction history")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:  message,
		Status: status,
	})
}

func getQueryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
