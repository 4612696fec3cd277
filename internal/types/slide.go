package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Slide status progression tags. The column is free-form text: each
// pipeline stage stamps whichever stage it completed or failed.
const (
	SlideStatusParsed          = "parsed"
	SlideStatusOptimized       = "optimized"
	SlideStatusGeneratingAudio = "generating_audio"
	SlideStatusAudioReady      = "audio_ready"
	SlideStatusAudioError      = "audio_error"
	SlideStatusImageGenerated  = "image_generated"
	SlideStatusImageError      = "image_error"
)

// Slide rows are hard-deleted and recreated on every re-parse; the
// (lesson_id, slide_index) pair stays unique and caller-controlled.
type Slide struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_slide_lesson_index" json:"lesson_id"`
	Lesson               *Lesson        `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	SlideIndex           int            `gorm:"column:slide_index;not null;uniqueIndex:idx_slide_lesson_index" json:"slide_index"`
	SlideType            string         `gorm:"column:slide_type;not null;default:'content'" json:"slide_type"`
	Title                string         `gorm:"column:title" json:"title"`
	Content              string         `gorm:"column:content;type:text" json:"content"`
	VisualIdea           string         `gorm:"column:visual_idea;type:text" json:"visual_idea"`
	SpeakerNote          string         `gorm:"column:speaker_note;type:text" json:"speaker_note"`
	ImagePrompt          string         `gorm:"column:image_prompt;type:text" json:"image_prompt"`
	ImageURL             string         `gorm:"column:image_url" json:"image_url"`
	AudioURL             string         `gorm:"column:audio_url" json:"audio_url"`
	AudioDuration        float64        `gorm:"column:audio_duration" json:"audio_duration"`
	OptimizedContentJSON datatypes.JSON `gorm:"column:optimized_content_json;type:jsonb" json:"optimized_content_json"`
	Status               string         `gorm:"column:status;not null;default:'parsed'" json:"status"`
	CreatedAt            time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null" json:"updated_at"`
}

func (Slide) TableName() string { return "slide" }

func (s *Slide) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
