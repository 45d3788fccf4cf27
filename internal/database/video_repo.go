package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdimtricp/swingcore/internal/models"
	"github.com/kdimtricp/swingcore/internal/overlay"
	"gorm.io/gorm"
)

type VideoRepository struct {
	db *DB
}

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) InsertVideo(ctx context.Context, video *models.Video) error {
	result := r.db.GORM().WithContext(ctx).Create(video)
	if result.Error != nil {
		return fmt.Errorf("failed to insert video: %w", result.Error)
	}
	return nil
}

func (r *VideoRepository) GetVideoByID(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	result := r.db.GORM().WithContext(ctx).First(&video, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video: %w", result.Error)
	}
	return &video, nil
}

func (r *VideoRepository) ListVideos(ctx context.Context) ([]models.Video, error) {
	videos := []models.Video{}
	result := r.db.GORM().WithContext(ctx).Order("upload_time DESC").Find(&videos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list videos: %w", result.Error)
	}
	return videos, nil
}

// UpdateVideoSize records the intrinsic size once the video metadata is known.
func (r *VideoRepository) UpdateVideoSize(ctx context.Context, id string, size overlay.Size) error {
	result := r.db.GORM().WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Updates(map[string]any{"width": size.Width, "height": size.Height})
	if result.Error != nil {
		return fmt.Errorf("failed to update video size: %w", result.Error)
	}
	return requireRow(result, id)
}

// SetVideoFile attaches the stored recording to a video.
func (r *VideoRepository) SetVideoFile(ctx context.Context, id, filename string) error {
	result := r.db.GORM().WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		Update("video_filename", filename)
	if result.Error != nil {
		return fmt.Errorf("failed to set video file: %w", result.Error)
	}
	return requireRow(result, id)
}

func (r *VideoRepository) DeleteVideo(ctx context.Context, id string) error {
	result := r.db.GORM().WithContext(ctx).Delete(&models.Video{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete video: %w", result.Error)
	}
	return requireRow(result, id)
}

func requireRow(result *gorm.DB, id string) error {
	if result.RowsAffected == 0 {
		return fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return nil
}
