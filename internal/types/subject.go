package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject carries the instructor metadata that the prompt composer folds
// into the role prompt (institution type, expertise area, audience, ...).
type Subject struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name            string         `gorm:"column:name;not null" json:"name"`
	InstitutionType string         `gorm:"column:institution_type" json:"institution_type"`
	ExpertiseArea   string         `gorm:"column:expertise_area" json:"expertise_area"`
	CourseName      string         `gorm:"column:course_name" json:"course_name"`
	TargetAudience  string         `gorm:"column:target_audience" json:"target_audience"`
	Major           string         `gorm:"column:major" json:"major"`
	Context         string         `gorm:"column:context;type:text" json:"context"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Subject) TableName() string { return "subject" }

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
