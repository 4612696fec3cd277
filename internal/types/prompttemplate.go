package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PromptTemplate struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Content   string         `gorm:"column:content;type:text;not null" json:"content"`
	Variables datatypes.JSON `gorm:"column:variables;type:jsonb" json:"variables"`
	Version   int            `gorm:"column:version;not null;default:1" json:"version"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (PromptTemplate) TableName() string { return "prompt_template" }

func (p *PromptTemplate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
