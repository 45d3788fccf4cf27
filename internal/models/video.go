package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kdimtricp/swingcore/internal/overlay"
)

// Video is an uploaded swing recording together with its pose sequence.
// Width and Height are zero until the video metadata is known.
type Video struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	VideoFilename string    `gorm:"not null;default:''" json:"video_filename,omitempty"`
	PoseFilename  string    `gorm:"not null" json:"pose_filename"`
	Topology      string    `gorm:"not null" json:"topology"`
	FrameCount    int       `gorm:"not null" json:"frame_count"`
	Width         float64   `gorm:"not null;default:0" json:"width"`
	Height        float64   `gorm:"not null;default:0" json:"height"`
	UploadTime    time.Time `gorm:"not null;index" json:"upload_time"`
}

func NewVideo(title, poseFilename, topology string, frameCount int) *Video {
	return &Video{
		ID:           uuid.New().String(),
		Title:        title,
		PoseFilename: poseFilename,
		Topology:     topology,
		FrameCount:   frameCount,
		UploadTime:   time.Now().UTC(),
	}
}

// IntrinsicSize returns the video size, or nil while it is unknown.
func (v *Video) IntrinsicSize() *overlay.Size {
	if v.Width <= 0 || v.Height <= 0 {
		return nil
	}
	return &overlay.Size{Width: v.Width, Height: v.Height}
}
