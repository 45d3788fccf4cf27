package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kdimtricp/swingcore/internal/pose"
)

// PoseRepository stores pose sequences one row per frame.
type PoseRepository struct {
	db *DB
}

func NewPoseRepository(db *DB) *PoseRepository {
	return &PoseRepository{db: db}
}

// SaveSequence replaces the stored frames of videoID with seq.
func (r *PoseRepository) SaveSequence(ctx context.Context, videoID string, seq *pose.Sequence) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pose_frames WHERE video_id = $1`, videoID); err != nil {
		return fmt.Errorf("failed to clear pose frames: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pose_frames (video_id, frame_index, frame_time, keypoints, confidence)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("failed to prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range seq.Frames() {
		keypoints, err := json.Marshal(f.Keypoints)
		if err != nil {
			return fmt.Errorf("failed to marshal keypoints: %w", err)
		}
		confidence, err := json.Marshal(f.Confidence)
		if err != nil {
			return fmt.Errorf("failed to marshal confidence: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, videoID, i, f.Timestamp, string(keypoints), string(confidence)); err != nil {
			return fmt.Errorf("failed to insert frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pose frames: %w", err)
	}
	return nil
}

// LoadSequence rebuilds the stored sequence of videoID, validating it again.
func (r *PoseRepository) LoadSequence(ctx context.Context, videoID string, topo pose.Topology) (*pose.Sequence, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT frame_time, keypoints, confidence
		FROM pose_frames
		WHERE video_id = $1
		ORDER BY frame_index`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pose frames: %w", err)
	}
	defer rows.Close()

	var frames []pose.Frame
	for rows.Next() {
		var f pose.Frame
		var keypoints, confidence []byte
		if err := rows.Scan(&f.Timestamp, &keypoints, &confidence); err != nil {
			return nil, fmt.Errorf("failed to scan pose frame: %w", err)
		}
		if err := json.Unmarshal(keypoints, &f.Keypoints); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keypoints: %w", err)
		}
		if err := json.Unmarshal(confidence, &f.Confidence); err != nil {
			return nil, fmt.Errorf("failed to unmarshal confidence: %w", err)
		}
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pose.NewSequence(topo, frames)
}
