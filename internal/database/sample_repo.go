package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/kdimtricp/swingcore/internal/biomechanics"
	"github.com/kdimtricp/swingcore/internal/models"
)

// SampleRepository stores sampled metric values for the scoring layer.
type SampleRepository struct {
	db *DB
}

func NewSampleRepository(db *DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// ReplaceSamples swaps every stored sample of videoID for samples.
func (r *SampleRepository) ReplaceSamples(ctx context.Context, videoID string, samples []models.MetricSample) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM metric_samples WHERE video_id = $1`, videoID); err != nil {
		return fmt.Errorf("failed to clear metric samples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metric_samples (id, video_id, sample_time, frame_index, metric, value, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i := range samples {
		s := &samples[i]
		if s.ID == "" {
			s.ID = uuid.New().String()
		}

		// undefined metrics are stored as NULL, never as 0
		value := sql.NullFloat64{Float64: s.Value.Value, Valid: s.Value.Defined}

		if _, err := stmt.ExecContext(ctx, s.ID, videoID, s.SampleTime, s.FrameIndex, s.Metric, value, s.Status); err != nil {
			return fmt.Errorf("failed to insert sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metric samples: %w", err)
	}
	return nil
}

func (r *SampleRepository) ListSamples(ctx context.Context, videoID string) ([]models.MetricSample, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT id, video_id, sample_time, frame_index, metric, value, status
		FROM metric_samples
		WHERE video_id = $1
		ORDER BY sample_time, metric`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric samples: %w", err)
	}
	defer rows.Close()

	samples := []models.MetricSample{}
	for rows.Next() {
		var s models.MetricSample
		var value sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.VideoID, &s.SampleTime, &s.FrameIndex, &s.Metric, &value, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan metric sample: %w", err)
		}
		if value.Valid {
			s.Value = biomechanics.Defined(value.Float64)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
