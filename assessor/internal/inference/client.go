package inference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

const (
	predictPath      = "/api/predict"
	modelMetricsPath = "/api/model-metrics"

	defaultPredictMessage = "Failed to get prediction"
)

// ErrMetricsUnavailable is returned for any failure of the model metrics call.
var ErrMetricsUnavailable = errors.New("failed to load model metrics")

// Error is a failed prediction call. Message is what the user should see.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference: %s (status %d)", e.Message, e.StatusCode)
	}
	return "inference: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Client talks to the remote inference service. Every call is a single
// attempt; failures are returned to the caller, never retried.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a client for baseURL. A zero timeout leaves calls bounded
// only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		http.SetTimeout(timeout)
	}

	return &Client{
		http:   http,
		logger: logger,
	}
}

// Predict submits one health-parameter record and returns the model output.
func (c *Client) Predict(ctx context.Context, params risk.HealthParameters) (*Prediction, error) {
	body, err := NewPredictRequest(params)
	if err != nil {
		return nil, &Error{Message: defaultPredictMessage, Err: err}
	}

	var result Prediction
	var failure errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post(predictPath)
	if err != nil {
		c.logger.Error("Inference call failed", zap.String("path", predictPath), zap.Error(err))
		return nil, &Error{Message: defaultPredictMessage, Err: err}
	}

	if resp.IsError() {
		msg := failure.Error
		if msg == "" {
			msg = defaultPredictMessage
		}
		c.logger.Warn("Inference returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", msg),
		)
		return nil, &Error{StatusCode: resp.StatusCode(), Message: msg}
	}

	c.logger.Debug("Received prediction",
		zap.Float64("probability", result.Probability),
		zap.Float64("bmi", result.BMI),
		zap.String("risk_result", result.RiskResult),
	)
	return &result, nil
}

// ModelMetrics fetches the static quality metrics of the deployed model.
func (c *Client) ModelMetrics(ctx context.Context) (*ModelMetrics, error) {
	var metrics ModelMetrics
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&metrics).
		Get(modelMetricsPath)
	if err != nil {
		c.logger.Error("Model metrics call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMetricsUnavailable, err)
	}
	if resp.IsError() {
		c.logger.Warn("Model metrics returned error", zap.Int("status_code", resp.StatusCode()))
		return nil, fmt.Errorf("%w: status %d", ErrMetricsUnavailable, resp.StatusCode())
	}

	return &metrics, nil
}
