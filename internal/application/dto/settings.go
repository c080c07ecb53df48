package dto

// SettingsResponse carries the barber's saved profile plus a preview of the
// template rendered with sample values.
type SettingsResponse struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Preview  string `json:"preview"`
}

// SaveSettingsRequest is the DTO for the explicit settings save.
type SaveSettingsRequest struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}
