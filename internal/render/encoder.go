package render

import (
	"fmt"

	"qrstudio/internal/entities"

	"github.com/skip2/go-qrcode"
)

// Encoder turns a payload into a QR symbol.
type Encoder interface {
	Encode(content string, level entities.ErrorCorrectionLevel, scale float64) (*VectorImage, error)
}

type qrEncoder struct{}

// NewEncoder creates an encoder backed by go-qrcode. Symbols carry a
// four-module quiet zone.
func NewEncoder() Encoder {
	return qrEncoder{}
}

func recoveryLevel(level entities.ErrorCorrectionLevel) (qrcode.RecoveryLevel, error) {
	switch level {
	case entities.ErrorCorrectionLow:
		return qrcode.Low, nil
	case entities.ErrorCorrectionMedium:
		return qrcode.Medium, nil
	case entities.ErrorCorrectionQuartile:
		return qrcode.High, nil
	case entities.ErrorCorrectionHigh:
		return qrcode.Highest, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", level)
}

// Encode builds the symbol with default colors (white background, black
// modules).
func (qrEncoder) Encode(content string, level entities.ErrorCorrectionLevel, scale float64) (*VectorImage, error) {
	if content == "" {
		return nil, fmt.Errorf("failed to encode QR code: empty content")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("failed to encode QR code: scale must be positive")
	}

	rl, err := recoveryLevel(level)
	if err != nil {
		return nil, err
	}

	q, err := qrcode.New(content, rl)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return &VectorImage{
		Background: Shape{Fill: "white"},
		Foreground: Shape{Fill: "black"},
		Scale:      scale,
		modules:    q.Bitmap(),
	}, nil
}
