package data

import "time"

// AlbumDoc aggregates the tracks grouped under one "album artist -
// album" key. Like artists, albums are keyed by display name in the
// index, so two albums sharing a name collide.
type AlbumDoc struct {
	Name       string `json:"name" gorm:"primaryKey"`
	Artist     string `json:"artist"` // the album artist
	Year       *int64 `json:"year"`   // minimum non-zero track year, null if none
	TrackCount int64  `json:"track_count"`
	TotalTime  int64  `json:"total_time"` // milliseconds, summed

	Genres      []string   `json:"genres" gorm:"serializer:json"`
	Compilation bool       `json:"compilation"`
	ReleaseDate *time.Time `json:"release_date"`

	TotalPlayCount int64 `json:"total_play_count"`
	TotalSkipCount int64 `json:"total_skip_count"`

	AvgBitRate *float64 `json:"avg_bit_rate,omitempty"`

	// Rating is the mean of the track ratings. The field keeps its
	// historical name instead of avg_rating for output compatibility.
	Rating *float64 `json:"rating,omitempty"`

	FirstAdded *time.Time `json:"first_added,omitempty"`
	LastAdded  *time.Time `json:"last_added,omitempty"`
}

func (AlbumDoc) TableName() string { return "albums" }

func (a AlbumDoc) ID() string { return a.Name }
