package aggregate

import (
	"strconv"

	"github.com/rorads/itunes-xml-insights/data"
	"github.com/rorads/itunes-xml-insights/library"
)

// Normalize maps one raw track record onto the fixed track-document
// schema. Missing fields take their defaults ("" for strings, 0 for
// numbers); fields with no default stay absent rather than becoming
// null. Dates are copied only when present. Normalize never fails:
// records missing their identifier or name are filtered out before they
// reach it.
func Normalize(raw library.Raw) data.TrackDoc {
	t := data.TrackDoc{
		TrackID:     idString(raw["Track ID"]),
		Name:        raw.StringOr("Name", ""),
		Artist:      raw.StringOr("Artist", ""),
		Album:       raw.StringOr("Album", ""),
		AlbumArtist: raw.StringOr("Album Artist", ""),
		Genre:       raw.StringOr("Genre", ""),
		Composer:    raw.StringOr("Composer", ""),
		Kind:        raw.StringOr("Kind", ""),
		Location:    raw.StringOr("Location", ""),
		Grouping:    raw.StringOr("Grouping", ""),
		Comments:    raw.StringOr("Comments", ""),
	}

	t.TotalTime, _ = raw.Int("Total Time")
	t.Year, _ = raw.Int("Year")
	t.PlayCount, _ = raw.Int("Play Count")
	t.SkipCount, _ = raw.Int("Skip Count")
	t.BitRate, _ = raw.Int("Bit Rate")
	t.SampleRate, _ = raw.Int("Sample Rate")
	t.TrackNumber, _ = raw.Int("Track Number")
	t.DiscNumber, _ = raw.Int("Disc Number")
	t.DiscCount, _ = raw.Int("Disc Count")
	t.Size, _ = raw.Int("Size")

	t.Rating = raw.IntPtr("Rating")
	t.AlbumRating = raw.IntPtr("Album Rating")
	t.RatingComputed = raw.BoolPtr("Rating Computed")
	t.AlbumRatingComputed = raw.BoolPtr("Album Rating Computed")
	t.Compilation = raw.BoolPtr("Compilation")
	t.Explicit = raw.BoolPtr("Explicit")
	t.BPM = raw.IntPtr("BPM")

	t.DateAdded = raw.TimePtr("Date Added")
	t.DateModified = raw.TimePtr("Date Modified")
	t.LastPlayed = raw.TimePtr("Play Date UTC")
	t.SkipDate = raw.TimePtr("Skip Date")
	t.ReleaseDate = raw.TimePtr("Release Date")

	return t
}

// idString coerces the track identifier to its string representation
// regardless of the numeric type the plist decoder produced.
func idString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}
