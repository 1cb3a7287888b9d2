package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/rorads/itunes-xml-insights/aggregate"
	"github.com/rorads/itunes-xml-insights/catalog"
	"github.com/rorads/itunes-xml-insights/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func TestPutIsIdempotent(t *testing.T) {
	cat := open(t)

	cols := &aggregate.Collections{
		Tracks:  []data.TrackDoc{{TrackID: "1", Name: "Song", Artist: "A"}},
		Artists: []data.ArtistDoc{{Name: "A", TrackCount: 1, Albums: []string{"LP"}, Genres: []string{"Rock"}}},
		Albums:  []data.AlbumDoc{{Name: "LP", Artist: "A", TrackCount: 1}},
		Genres:  []data.GenreDoc{{Name: "Rock", TrackCount: 1, ArtistCount: 1}},
	}

	require.NoError(t, cat.Put(cols))
	require.NoError(t, cat.Put(cols))

	counts, err := cat.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["tracks"])
	assert.Equal(t, int64(1), counts["artists"])
	assert.Equal(t, int64(1), counts["albums"])
	assert.Equal(t, int64(1), counts["genres"])
}

func TestPutSkipsEmptyIDs(t *testing.T) {
	cat := open(t)

	require.NoError(t, cat.PutArtists([]data.ArtistDoc{
		{Name: ""},
		{Name: "B"},
	}))

	counts, err := cat.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["artists"])
}

func TestPutReplacesRow(t *testing.T) {
	cat := open(t)

	require.NoError(t, cat.PutTracks([]data.TrackDoc{{TrackID: "1", Name: "before"}}))
	require.NoError(t, cat.PutTracks([]data.TrackDoc{{TrackID: "1", Name: "after", PlayCount: 3}}))

	counts, err := cat.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["tracks"])
}
