package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresStore хранит записи предсказаний в PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore оборачивает открытое подключение к базе.
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// NewPostgresStoreFromDSN открывает и проверяет базу, затем применяет миграции.
func NewPostgresStoreFromDSN(dsn string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(dsn); err != nil {
		db.Close()
		return nil, err
	}

	return NewPostgresStore(db, logger), nil
}

// Ping проверяет подключение.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает подключение к базе.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Insert сохраняет одну запись.
func (s *PostgresStore) Insert(ctx context.Context, rec *PredictionRecord) error {
	query := `
		INSERT INTO predictions (
			id, created_at, age, height, weight, gender, systolic_bp, diastolic_bp,
			cholesterol, glucose, smoking, alcohol, physical_activity,
			bmi, risk_result, probability
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt,
		rec.Age,
		rec.Height,
		rec.Weight,
		rec.Gender,
		rec.SystolicBP,
		rec.DiastolicBP,
		rec.Cholesterol,
		rec.Glucose,
		rec.Smoking,
		rec.Alcohol,
		rec.PhysicalActivity,
		rec.BMI,
		rec.RiskResult,
		rec.Probability,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	s.logger.Debug("Prediction stored", zap.String("id", rec.ID))
	return nil
}

// ListRecent возвращает не более limit записей, начиная с новых.
func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*PredictionRecord, error) {
	query := `
		SELECT id, created_at, age, height, weight, gender, systolic_bp, diastolic_bp,
			cholesterol, glucose, smoking, alcohol, physical_activity,
			bmi, risk_result, probability
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	records := make([]*PredictionRecord, 0)
	for rows.Next() {
		var rec PredictionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CreatedAt,
			&rec.Age,
			&rec.Height,
			&rec.Weight,
			&rec.Gender,
			&rec.SystolicBP,
			&rec.DiastolicBP,
			&rec.Cholesterol,
			&rec.Glucose,
			&rec.Smoking,
			&rec.Alcohol,
			&rec.PhysicalActivity,
			&rec.BMI,
			&rec.RiskResult,
			&rec.Probability,
		)
		if err != nil {
			s.logger.Warn("Skipping unreadable prediction row", zap.Error(err))
			continue
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return records, nil
}
