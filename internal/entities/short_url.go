package entities

import "time"

// ShortURLMapping ties a record id to the short URL created for its
// destination. A destination change replaces the mapping with a new one.
type ShortURLMapping struct {
	ShortURL    string    `json:"shortUrl"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"createdAt"`
}
