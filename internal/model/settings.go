package model

import "time"

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = "system_config"

type GlobalSettings struct {
	ID                string    `gorm:"size:50;primaryKey" json:"id"`
	MaintenanceMode   bool      `gorm:"not null;default:false" json:"maintenanceMode"`
	AllowRegistration bool      `gorm:"not null;default:true" json:"allowRegistration"`
	Announcement      *string   `gorm:"type:text" json:"announcement"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
