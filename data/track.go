package data

import "time"

// TrackDoc is one normalized track. String and numeric fields below the
// first group always carry a value (defaulted to ""/0 when the export
// omits them); the pointer fields are only present when the export had
// them.
type TrackDoc struct {
	TrackID     string `json:"track_id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	AlbumArtist string `json:"album_artist"`
	Genre       string `json:"genre"`
	Composer    string `json:"composer"`
	Kind        string `json:"kind"`
	Location    string `json:"location"`
	Grouping    string `json:"grouping"`
	Comments    string `json:"comments"`

	TotalTime   int64 `json:"total_time"` // milliseconds
	Year        int64 `json:"year"`
	PlayCount   int64 `json:"play_count"`
	SkipCount   int64 `json:"skip_count"`
	BitRate     int64 `json:"bit_rate"`
	SampleRate  int64 `json:"sample_rate"`
	TrackNumber int64 `json:"track_number"`
	DiscNumber  int64 `json:"disc_number"`
	DiscCount   int64 `json:"disc_count"`
	Size        int64 `json:"size"`

	// Ratings are 0-100. A present zero is a real rating and survives
	// normalization; only an absent field yields nil.
	Rating              *int64 `json:"rating,omitempty"`
	AlbumRating         *int64 `json:"album_rating,omitempty"`
	RatingComputed      *bool  `json:"rating_computed,omitempty"`
	AlbumRatingComputed *bool  `json:"album_rating_computed,omitempty"`
	Compilation         *bool  `json:"compilation,omitempty"`
	Explicit            *bool  `json:"explicit,omitempty"`
	BPM                 *int64 `json:"bpm,omitempty"`

	DateAdded    *time.Time `json:"date_added,omitempty"`
	DateModified *time.Time `json:"date_modified,omitempty"`
	LastPlayed   *time.Time `json:"last_played,omitempty"`
	SkipDate     *time.Time `json:"skip_date,omitempty"`
	ReleaseDate  *time.Time `json:"release_date,omitempty"`
}

func (TrackDoc) TableName() string { return "tracks" }

func (t TrackDoc) ID() string { return t.TrackID }
