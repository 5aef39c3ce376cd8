package assessment

import (
	"context"

	"github.com/Krimson/cardio-risk/assessor/internal/inference"
	"github.com/Krimson/cardio-risk/assessor/internal/risk"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
	"github.com/Krimson/cardio-risk/assessor/internal/websocket"
)

// Predictor - удалённый сервис инференса.
type Predictor interface {
	Predict(ctx context.Context, params risk.HealthParameters) (*inference.Prediction, error)
	ModelMetrics(ctx context.Context) (*inference.ModelMetrics, error)
}

// RecordStore сохраняет завершённые оценки.
type RecordStore interface {
	Insert(ctx context.Context, rec *store.PredictionRecord) error
	ListRecent(ctx context.Context, limit int) ([]*store.PredictionRecord, error)
}

// MetricsCache хранит последний ответ с метриками модели.
type MetricsCache interface {
	Get(ctx context.Context) (*inference.ModelMetrics, error)
	Set(ctx context.Context, metrics *inference.ModelMetrics) error
}

// Notifier получает каждую завершённую оценку.
type Notifier interface {
	Publish(event websocket.Event)
}
