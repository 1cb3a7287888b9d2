package data

// GenreDoc aggregates every track carrying one genre name.
type GenreDoc struct {
	Name        string `json:"name" gorm:"primaryKey"`
	TrackCount  int64  `json:"track_count"`
	ArtistCount int64  `json:"artist_count"`
	AlbumCount  int64  `json:"album_count"`
	TotalTime   int64  `json:"total_time"`

	AvgBitRate *float64 `json:"avg_bit_rate,omitempty"`
	AvgRating  *float64 `json:"avg_rating,omitempty"`

	// Both derive from the genre's own play-count list and appear
	// together or not at all. TotalPlayCount is genre-scoped: it sums
	// the per-track counts seen here, independent of other documents.
	AvgPlayCount   *float64 `json:"avg_play_count,omitempty"`
	TotalPlayCount *int64   `json:"total_play_count,omitempty"`
}

func (GenreDoc) TableName() string { return "genres" }

func (g GenreDoc) ID() string { return g.Name }
