package service

import (
	"net/url"
	"strings"

	"qrstudio/internal/entities"
)

// usesRedirect reports whether s encodes a redirect URL instead of its text.
func usesRedirect(s entities.QRSettings) bool {
	return s.UseRedirectSystem && strings.TrimSpace(s.ActualDestination) != ""
}

// RedirectURL builds the stable URL encoded by redirect-mode QR codes.
func RedirectURL(base, id string) string {
	return base + "?id=" + url.QueryEscape(id)
}

// Payload returns the string that gets encoded into the symbol. It has no
// side effects: in redirect mode the caller supplies the id and is
// responsible for committing the redirect entry.
func Payload(s entities.QRSettings, id, redirectBase string) string {
	if usesRedirect(s) {
		return RedirectURL(redirectBase, id)
	}
	return s.Text
}

// NormalizeURL prefixes https:// unless the URL already has an http(s) scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
