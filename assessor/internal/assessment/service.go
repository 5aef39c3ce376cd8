package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/inference"
	"github.com/Krimson/cardio-risk/assessor/internal/observability"
	"github.com/Krimson/cardio-risk/assessor/internal/risk"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
	"github.com/Krimson/cardio-risk/assessor/internal/websocket"
)

// ErrHistoryDisabled возвращается операциями истории, если хранилище записей не настроено.
var ErrHistoryDisabled = errors.New("prediction history is disabled")

const (
	endpointPredict      = "predict"
	endpointModelMetrics = "model_metrics"
)

// Service проверяет, оценивает и сохраняет оценки (Application Layer).
type Service struct {
	predictor Predictor
	records   RecordStore
	cache     MetricsCache
	notifier  Notifier

	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// Option подключает необязательные зависимости Service.
type Option func(*Service)

// WithRecordStore включает сохранение и историю.
func WithRecordStore(records RecordStore) Option {
	return func(s *Service) { s.records = records }
}

// WithMetricsCache включает кеширование метрик модели.
func WithMetricsCache(cache MetricsCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithNotifier публикует завершённые оценки.
func WithNotifier(notifier Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

func NewService(predictor Predictor, metrics *observability.Metrics, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		predictor: predictor,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate выполняет только локальные проверки.
func (s *Service) Validate(params risk.HealthParameters) []risk.Violation {
	return risk.Validate(params)
}

// Assess проверяет params, запрашивает предсказание у сервиса инференса и
// собирает результат. При ошибке валидации наружу ничего не уходит.
func (s *Service) Assess(ctx context.Context, params risk.HealthParameters) (*Assessment, error) {
	if violations := risk.Validate(params); len(violations) > 0 {
		for _, v := range violations {
			s.metrics.ValidationFailures.WithLabelValues(v.Field, string(v.Reason)).Inc()
		}
		return nil, &risk.ValidationError{Violations: violations}
	}

	start := time.Now()
	prediction, err := s.predictor.Predict(ctx, params)
	s.metrics.InferenceDuration.WithLabelValues(endpointPredict).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.InferenceErrors.WithLabelValues(endpointPredict).Inc()
		s.logger.Warn("Prediction failed", zap.Error(err))
		return nil, err
	}

	bmi := prediction.BMI
	if bmi <= 0 {
		bmi = risk.BMI(params.Weight, params.Height)
	}
	// Уровень считаем по сырому значению, округление только для вывода и хранения
	tier := risk.Classify(prediction.Probability)
	probability := risk.Round2(prediction.Probability)

	result := &Assessment{
		ID:               uuid.New().String(),
		CreatedAt:        s.now().UTC(),
		Parameters:       params,
		Prediction:       prediction.Prediction,
		RiskResult:       prediction.RiskResult,
		Probability:      probability,
		BMI:              bmi,
		BMICategory:      risk.BMICategory(bmi),
		Tier:             tier.Descriptor(),
		Recommendations:  risk.RecommendationsFor(tier),
		CholesterolLabel: params.Cholesterol.Label(),
		GlucoseLabel:     params.Glucose.Label(),
	}
	s.metrics.Assessments.WithLabelValues(tier.String()).Inc()

	if s.records != nil {
		rec := store.NewPredictionRecord(result.ID, result.CreatedAt, params, bmi, result.RiskResult, probability)
		if err := s.records.Insert(ctx, rec); err != nil {
			s.logger.Error("Failed to save prediction", zap.String("id", result.ID), zap.Error(err))
		}
	}

	if s.notifier != nil {
		s.notifier.Publish(websocket.Event{
			ID:          result.ID,
			CreatedAt:   result.CreatedAt,
			Probability: probability,
			Tier:        result.Tier.Name,
			Label:       result.Tier.Label,
			Color:       result.Tier.Color,
		})
	}

	s.logger.Info("Assessment completed",
		zap.String("id", result.ID),
		zap.Float64("probability", probability),
		zap.Stringer("tier", tier),
	)
	return result, nil
}

// ModelMetrics возвращает метрики модели, читая через кеш, если он настроен.
// При сбое кеша запрос идёт напрямую в сервис инференса.
func (s *Service) ModelMetrics(ctx context.Context) (*inference.ModelMetrics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err == nil:
			s.metrics.MetricsCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		case errors.Is(err, store.ErrCacheMiss):
			s.metrics.MetricsCacheHits.WithLabelValues("miss").Inc()
		default:
			s.metrics.MetricsCacheHits.WithLabelValues("error").Inc()
			s.logger.Warn("Model metrics cache unavailable", zap.Error(err))
		}
	}

	start := time.Now()
	metrics, err := s.predictor.ModelMetrics(ctx)
	s.metrics.InferenceDuration.WithLabelValues(endpointModelMetrics).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.InferenceErrors.WithLabelValues(endpointModelMetrics).Inc()
		s.logger.Warn("Model metrics request failed", zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, metrics); err != nil {
			s.logger.Warn("Failed to cache model metrics", zap.Error(err))
		}
	}
	return metrics, nil
}

// History возвращает последние записи, начиная с новых. limit ограничен 1..50.
func (s *Service) History(ctx context.Context, limit int) ([]*store.PredictionRecord, error) {
	if s.records == nil {
		return nil, ErrHistoryDisabled
	}

	records, err := s.records.ListRecent(ctx, store.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	if records == nil {
		records = []*store.PredictionRecord{}
	}
	return records, nil
}

// ExportHistory выгружает последние записи в книгу xlsx.
func (s *Service) ExportHistory(ctx context.Context) ([]byte, error) {
	records, err := s.History(ctx, store.MaxHistory)
	if err != nil {
		return nil, err
	}
	return GenerateHistoryExport(records)
}

// Tiers возвращает таблицу уровней риска по возрастанию.
func (s *Service) Tiers() []risk.Descriptor {
	return risk.Tiers()
}
