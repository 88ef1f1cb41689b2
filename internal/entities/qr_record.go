package entities

import "time"

// ErrorCorrectionLevel is the QR error-correction level, one of L, M, Q, H.
type ErrorCorrectionLevel string

const (
	ErrorCorrectionLow      ErrorCorrectionLevel = "L"
	ErrorCorrectionMedium   ErrorCorrectionLevel = "M"
	ErrorCorrectionQuartile ErrorCorrectionLevel = "Q"
	ErrorCorrectionHigh     ErrorCorrectionLevel = "H"
)

// Valid reports whether l is one of the four known levels.
func (l ErrorCorrectionLevel) Valid() bool {
	switch l {
	case ErrorCorrectionLow, ErrorCorrectionMedium, ErrorCorrectionQuartile, ErrorCorrectionHigh:
		return true
	}
	return false
}

// Editor defaults for a fresh QR code.
const (
	DefaultSize            = 400
	DefaultErrorCorrection = ErrorCorrectionMedium
	DefaultForeground      = "#000000"
	DefaultBackground      = "#ffffff"
)

// QRSettings holds the editable fields of a QR code.
type QRSettings struct {
	Name                  string               `json:"name"`
	Text                  string               `json:"text"`
	ActualDestination     string               `json:"actualDestination"`
	UseRedirectSystem     bool                 `json:"useRedirectSystem"`
	Size                  int                  `json:"size"`
	ErrorCorrectionLevel  ErrorCorrectionLevel `json:"errorCorrectionLevel"`
	ForegroundColor       string               `json:"foregroundColor"`
	BackgroundColor       string               `json:"backgroundColor"`
	BackgroundTransparent bool                 `json:"backgroundTransparent"`
}

// DefaultSettings returns the settings of a blank editor.
func DefaultSettings() QRSettings {
	return QRSettings{
		Size:                 DefaultSize,
		ErrorCorrectionLevel: DefaultErrorCorrection,
		ForegroundColor:      DefaultForeground,
		BackgroundColor:      DefaultBackground,
	}
}

// QRRecord is a saved QR code. It is persisted as one element of the
// savedQRs JSON array, so the json tags are the storage format.
type QRRecord struct {
	ID string `json:"id"`
	QRSettings
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
