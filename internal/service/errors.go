package service

import "errors"

var (
	// ErrEmptyPayload is returned by Save when there is neither text nor a destination to encode.
	ErrEmptyPayload = errors.New("please enter a destination URL or text for the QR code")
	// ErrRecordNotFound is returned when an id does not match any saved QR code.
	ErrRecordNotFound = errors.New("QR code not found")
	// ErrNotEditing is returned by destination-only updates when no saved redirect QR code is active.
	ErrNotEditing = errors.New("no saved redirect QR code is being edited")
	// ErrRedirectRecord is returned when a short URL is requested for a QR code that encodes its redirect URL.
	ErrRedirectRecord = errors.New("redirect QR codes cannot use a short URL")
	// ErrInvalidSettings wraps validation failures of editor fields.
	ErrInvalidSettings = errors.New("invalid QR settings")
	// ErrRenderFailed wraps encoder failures, e.g. a payload too long for any QR version.
	ErrRenderFailed = errors.New("failed to render QR code")
	// ErrShortenerFailed wraps failures of the external URL shortener.
	ErrShortenerFailed = errors.New("failed to create short URL")
)
