package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKeyService string

const (
	ApiKeyServiceLLM   ApiKeyService = "llm"
	ApiKeyServiceTTS   ApiKeyService = "tts"
	ApiKeyServiceImage ApiKeyService = "image"
)

// ApiKey is either a system-wide credential (is_system, user_id null) or a
// per-user override. The value is AES-GCM encrypted at rest.
type ApiKey struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID    `gorm:"type:uuid;index:idx_api_key_service_user" json:"user_id,omitempty"`
	User           *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	IsSystem       bool          `gorm:"column:is_system;not null;default:false" json:"is_system"`
	Service        ApiKeyService `gorm:"column:service;not null;index:idx_api_key_service_user" json:"service"`
	EncryptedValue string        `gorm:"column:encrypted_value;not null" json:"-"`
	Label          string        `gorm:"column:label" json:"label"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

func (ApiKey) TableName() string { return "api_key" }

func (k *ApiKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
