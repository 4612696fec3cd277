package types

import "time"

// SystemConfig is a flat string key/value store; typed reads live in the
// config service.
type SystemConfig struct {
	Key       string    `gorm:"primaryKey;column:key" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SystemConfig) TableName() string { return "system_config" }
