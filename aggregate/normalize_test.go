package aggregate_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rorads/itunes-xml-insights/aggregate"
	"github.com/rorads/itunes-xml-insights/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	doc := aggregate.Normalize(library.Raw{
		"Track ID": uint64(42),
		"Name":     "Song",
	})

	assert.Equal(t, "42", doc.TrackID)
	assert.Equal(t, "Song", doc.Name)
	assert.Equal(t, "", doc.Artist)
	assert.Equal(t, int64(0), doc.PlayCount)
	assert.Nil(t, doc.Rating)
	assert.Nil(t, doc.Compilation)
	assert.Nil(t, doc.DateAdded)
}

func TestNormalizeIDCoercion(t *testing.T) {
	assert.Equal(t, "7", aggregate.Normalize(library.Raw{"Track ID": uint64(7)}).TrackID)
	assert.Equal(t, "7", aggregate.Normalize(library.Raw{"Track ID": int64(7)}).TrackID)
	assert.Equal(t, "7", aggregate.Normalize(library.Raw{"Track ID": "7"}).TrackID)
}

// A rating of zero is a real rating and must survive both into the
// document and through JSON encoding; only a missing rating is omitted.
func TestNormalizeZeroRating(t *testing.T) {
	doc := aggregate.Normalize(library.Raw{
		"Track ID": uint64(1),
		"Name":     "Song",
		"Rating":   uint64(0),
	})

	require.NotNil(t, doc.Rating)
	assert.Equal(t, int64(0), *doc.Rating)

	bs, err := json.Marshal(doc)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(bs, &fields))
	assert.Contains(t, fields, "rating")
}

func TestNormalizeAbsentRatingOmitted(t *testing.T) {
	doc := aggregate.Normalize(library.Raw{
		"Track ID": uint64(1),
		"Name":     "Song",
	})

	bs, err := json.Marshal(doc)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(bs, &fields))
	assert.NotContains(t, fields, "rating")
	assert.NotContains(t, fields, "compilation")
	assert.NotContains(t, fields, "date_added")

	// Zero-valued defaults still appear.
	assert.Contains(t, fields, "play_count")
	assert.Contains(t, fields, "artist")
}

func TestNormalizeDates(t *testing.T) {
	added := time.Date(2015, 3, 14, 9, 26, 53, 0, time.UTC)
	doc := aggregate.Normalize(library.Raw{
		"Track ID":   uint64(1),
		"Name":       "Song",
		"Date Added": added,
	})

	require.NotNil(t, doc.DateAdded)
	assert.Equal(t, added, *doc.DateAdded)
	assert.Nil(t, doc.LastPlayed)
	assert.Nil(t, doc.SkipDate)
}
