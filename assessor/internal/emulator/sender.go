package emulator

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

var (
	ErrSendFailed = errors.New("failed to send record")
	// Ассессор отклонил запись как невалидную
	ErrRejected = errors.New("record rejected")
)

// Sender доставляет сгенерированные записи.
type Sender interface {
	Send(ctx context.Context, params risk.HealthParameters) error
	Close() error
}

// HTTPSender отправляет записи в запущенный ассессор.
type HTTPSender struct {
	http *resty.Client
}

func NewHTTPSender(baseURL string) *HTTPSender {
	return &HTTPSender{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

func (s *HTTPSender) Send(ctx context.Context, params risk.HealthParameters) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(params).
		Post("/api/assessments")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnprocessableEntity:
		return ErrRejected
	case resp.IsError():
		return fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode())
	}
	return nil
}

func (s *HTTPSender) Close() error { return nil }

// JSONLSender дописывает в файл по одному JSON-объекту на строку.
type JSONLSender struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewJSONLSender открывает path на дозапись, создавая файл при необходимости.
func NewJSONLSender(path string) (*JSONLSender, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &JSONLSender{
		file:   file,
		writer: bufio.NewWriterSize(file, 4096),
	}, nil
}

func (s *JSONLSender) Send(ctx context.Context, params risk.HealthParameters) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("JSON marshaling failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return s.writer.Flush()
}

func (s *JSONLSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush failed: %w", err)
	}
	return s.file.Close()
}
