package data

import "time"

// ArtistDoc aggregates every track attributed to one artist name.
// Artists are keyed by display name downstream, so two artists sharing
// a name collapse into one document.
type ArtistDoc struct {
	Name           string   `json:"name" gorm:"primaryKey"`
	TrackCount     int64    `json:"track_count"`
	Albums         []string `json:"albums" gorm:"serializer:json"`
	TotalPlayCount int64    `json:"total_play_count"`
	TotalSkipCount int64    `json:"total_skip_count"`
	Genres         []string `json:"genres" gorm:"serializer:json"`

	// Null (not omitted) when no track carried the source date.
	FirstAdded *time.Time `json:"first_added"`
	LastPlayed *time.Time `json:"last_played"`

	// Omitted entirely when no track carried a rating.
	AvgRating *float64 `json:"avg_rating,omitempty"`
}

func (ArtistDoc) TableName() string { return "artists" }

func (a ArtistDoc) ID() string { return a.Name }
