package model

import "time"

// SettingModel holds small key/value flags, e.g. the bootstrap marker.
type SettingModel struct {
	Key       string    `gorm:"primary_key;type:varchar(100)" json:"key"`
	Value     string    `gorm:"type:varchar(255)" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SettingModel) TableName() string {
	return "settings"
}
