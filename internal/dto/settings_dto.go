package dto

type UpdateSettingsRequest struct {
	MaintenanceMode   *bool   `json:"maintenanceMode"`
	AllowRegistration *bool   `json:"allowRegistration"`
	Announcement      *string `json:"announcement"`
}
