package models

import (
	"qrstudio/internal/entities"
	"qrstudio/internal/service"
)

// EditorResponse is the editor state after an operation
type EditorResponse struct {
	Editor service.EditorState  `json:"editor"`
	Render service.RenderStatus `json:"render,omitempty"`
}

// RecordListResponse lists saved QR codes, newest first
type RecordListResponse struct {
	Records []entities.QRRecord `json:"records"`
	Count   int                 `json:"count"`
}

// RedirectResponse is a Redirect Map lookup
type RedirectResponse struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	RedirectURL string `json:"redirectUrl"`
}

// ShortURLResponse is a Short-URL Map entry
type ShortURLResponse struct {
	ID string `json:"id"`
	entities.ShortURLMapping
}

// DarkModeResponse is the stored theme preference
type DarkModeResponse struct {
	Enabled bool `json:"enabled"`
	Set     bool `json:"set"` // false when no preference was ever stored
}
