package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LessonStatusDraft        = "draft"
	LessonStatusOutlineReady = "outline_ready"
	LessonStatusScriptReady  = "script_ready"
	LessonStatusComplete     = "complete"
)

type Lesson struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject     *Subject       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	RawOutline  string         `gorm:"column:raw_outline;type:text" json:"raw_outline"`
	OutlineJSON datatypes.JSON `gorm:"column:outline_json;type:jsonb" json:"outline_json"`
	SlideScript string         `gorm:"column:slide_script;type:text" json:"slide_script"`
	Status      string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
