package models

import "qrstudio/internal/entities"

// UpdateEditorRequest replaces every editor field at once
type UpdateEditorRequest struct {
	Name                  string `json:"name"`
	Text                  string `json:"text"`
	ActualDestination     string `json:"actualDestination"`
	UseRedirectSystem     bool   `json:"useRedirectSystem"`
	Size                  int    `json:"size" binding:"required,min=1,max=4000"`
	ErrorCorrectionLevel  string `json:"errorCorrectionLevel" binding:"required,oneof=L M Q H"`
	ForegroundColor       string `json:"foregroundColor" binding:"required,hexcolor"`
	BackgroundColor       string `json:"backgroundColor" binding:"required,hexcolor"`
	BackgroundTransparent bool   `json:"backgroundTransparent"`
}

// Settings converts the request into editor settings
func (r *UpdateEditorRequest) Settings() entities.QRSettings {
	return entities.QRSettings{
		Name:                  r.Name,
		Text:                  r.Text,
		ActualDestination:     r.ActualDestination,
		UseRedirectSystem:     r.UseRedirectSystem,
		Size:                  r.Size,
		ErrorCorrectionLevel:  entities.ErrorCorrectionLevel(r.ErrorCorrectionLevel),
		ForegroundColor:       r.ForegroundColor,
		BackgroundColor:       r.BackgroundColor,
		BackgroundTransparent: r.BackgroundTransparent,
	}
}

// ShortURLRequest carries the destination to shorten
type ShortURLRequest struct {
	Destination string `json:"destination" binding:"required"`
}

// DarkModeRequest sets the theme preference
type DarkModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"` // Pointer so false is not treated as missing
}
