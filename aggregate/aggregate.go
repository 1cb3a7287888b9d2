// Package aggregate turns a loaded library into the four output
// collections: the normalized tracks plus per-artist, per-album, and
// per-genre aggregates, all derived from a single forward pass over the
// track records.
package aggregate

import (
	"time"

	"github.com/rorads/itunes-xml-insights/data"
	"github.com/rorads/itunes-xml-insights/library"
)

// unknown is the grouping fallback for tracks that carry no artist,
// album, or genre field at all. Note it is also a perfectly legal
// display name, so a library containing an album literally titled
// "Unknown" shares an accumulator with the albumless tracks.
const unknown = "Unknown"

// Collections holds everything one run produces. Document order within
// each collection is first-encounter order and is not a contract.
type Collections struct {
	Tracks  []data.TrackDoc
	Artists []data.ArtistDoc
	Albums  []data.AlbumDoc
	Genres  []data.GenreDoc

	// Skipped counts records dropped for missing their identifier or
	// name. Skips are silent by design; the count exists for logging.
	Skipped int
}

type artistAgg struct {
	name           string
	trackCount     int64
	albums         set
	totalPlayCount int64
	totalSkipCount int64
	ratings        []int64
	genres         set
	firstAdded     *time.Time
	lastPlayed     *time.Time
}

type albumAgg struct {
	name           string
	artist         string
	year           *int64
	trackCount     int64
	totalTime      int64
	bitRates       []int64
	genres         set
	ratings        []int64
	compilation    bool
	releaseDate    *time.Time
	addedDates     []time.Time
	totalPlayCount int64
	totalSkipCount int64
}

type genreAgg struct {
	name       string
	trackCount int64
	artists    set
	albums     set
	totalTime  int64
	bitRates   []int64
	ratings    []int64
	playCounts []int64
}

// pass owns the accumulator tables for one run. The order slices record
// first encounter so output is stable run-to-run.
type pass struct {
	artists     map[string]*artistAgg
	artistOrder []string
	albums      map[string]*albumAgg
	albumOrder  []string
	genres      map[string]*genreAgg
	genreOrder  []string
}

func newPass() *pass {
	return &pass{
		artists: map[string]*artistAgg{},
		albums:  map[string]*albumAgg{},
		genres:  map[string]*genreAgg{},
	}
}

func (p *pass) artist(key string) *artistAgg {
	if a, ok := p.artists[key]; ok {
		return a
	}
	a := &artistAgg{albums: set{}, genres: set{}}
	p.artists[key] = a
	p.artistOrder = append(p.artistOrder, key)
	return a
}

func (p *pass) album(key string) *albumAgg {
	if a, ok := p.albums[key]; ok {
		return a
	}
	a := &albumAgg{genres: set{}}
	p.albums[key] = a
	p.albumOrder = append(p.albumOrder, key)
	return a
}

func (p *pass) genre(key string) *genreAgg {
	if g, ok := p.genres[key]; ok {
		return g
	}
	g := &genreAgg{artists: set{}, albums: set{}}
	p.genres[key] = g
	p.genreOrder = append(p.genreOrder, key)
	return g
}

// Process consumes every track record exactly once and returns the four
// collections. Records missing "Track ID" or "Name" are skipped before
// normalization and never reach the accumulators.
func Process(lib *library.Library) *Collections {
	out := &Collections{}
	p := newPass()

	for _, raw := range lib.Tracks {
		if !raw.Has("Track ID") || !raw.Has("Name") {
			out.Skipped++
			continue
		}

		out.Tracks = append(out.Tracks, Normalize(raw))

		artist := raw.StringOr("Artist", unknown)
		album := raw.StringOr("Album", unknown)
		albumArtist := raw.StringOr("Album Artist", artist)
		genre := raw.StringOr("Genre", unknown)
		albumKey := albumArtist + " - " + album

		playCount, _ := raw.Int("Play Count")
		skipCount, _ := raw.Int("Skip Count")
		rating, hasRating := raw.Int("Rating")
		bitRate, _ := raw.Int("Bit Rate")
		totalTime, _ := raw.Int("Total Time")

		if artist != "" {
			a := p.artist(artist)
			a.name = artist
			a.trackCount++
			if album != "" {
				a.albums.add(album)
			}
			a.totalPlayCount += playCount
			a.totalSkipCount += skipCount
			if hasRating {
				a.ratings = append(a.ratings, rating)
			}
			if genre != "" {
				a.genres.add(genre)
			}
			if added, ok := raw.Time("Date Added"); ok {
				if a.firstAdded == nil || added.Before(*a.firstAdded) {
					a.firstAdded = &added
				}
			}
			if played, ok := raw.Time("Play Date UTC"); ok {
				if a.lastPlayed == nil || played.After(*a.lastPlayed) {
					a.lastPlayed = &played
				}
			}
		}

		if album != "" {
			a := p.album(albumKey)
			a.name = album
			a.artist = albumArtist
			a.trackCount++
			if year, ok := raw.Int("Year"); ok && year != 0 {
				if a.year == nil || year < *a.year {
					a.year = &year
				}
			}
			a.totalTime += totalTime
			if bitRate != 0 {
				a.bitRates = append(a.bitRates, bitRate)
			}
			if genre != "" {
				a.genres.add(genre)
			}
			if hasRating {
				a.ratings = append(a.ratings, rating)
			}
			if compilation, ok := raw.Bool("Compilation"); ok && compilation {
				a.compilation = true
			}
			if released, ok := raw.Time("Release Date"); ok {
				if a.releaseDate == nil || released.Before(*a.releaseDate) {
					a.releaseDate = &released
				}
			}
			if added, ok := raw.Time("Date Added"); ok {
				a.addedDates = append(a.addedDates, added)
			}
			a.totalPlayCount += playCount
			a.totalSkipCount += skipCount
		}

		if genre != "" {
			g := p.genre(genre)
			g.name = genre
			g.trackCount++
			if artist != "" {
				g.artists.add(artist)
			}
			if album != "" {
				g.albums.add(album)
			}
			g.totalTime += totalTime
			if bitRate != 0 {
				g.bitRates = append(g.bitRates, bitRate)
			}
			if hasRating {
				g.ratings = append(g.ratings, rating)
			}
			g.playCounts = append(g.playCounts, playCount)
		}
	}

	p.finalize(out)

	return out
}
