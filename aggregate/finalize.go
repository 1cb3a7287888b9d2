package aggregate

import (
	"time"

	"github.com/rorads/itunes-xml-insights/data"
)

// finalize walks each accumulator table once and emits the output
// documents. Every mean is guarded by a non-emptiness check: a group
// with no contributing values gets no field at all.
func (p *pass) finalize(out *Collections) {
	for _, key := range p.artistOrder {
		a := p.artists[key]
		doc := data.ArtistDoc{
			Name:           a.name,
			TrackCount:     a.trackCount,
			Albums:         a.albums.members(),
			TotalPlayCount: a.totalPlayCount,
			TotalSkipCount: a.totalSkipCount,
			Genres:         a.genres.members(),
			FirstAdded:     a.firstAdded,
			LastPlayed:     a.lastPlayed,
		}
		if len(a.ratings) > 0 {
			avg := mean(a.ratings)
			doc.AvgRating = &avg
		}
		out.Artists = append(out.Artists, doc)
	}

	for _, key := range p.albumOrder {
		a := p.albums[key]
		doc := data.AlbumDoc{
			Name:           a.name,
			Artist:         a.artist,
			Year:           a.year,
			TrackCount:     a.trackCount,
			TotalTime:      a.totalTime,
			Genres:         a.genres.members(),
			Compilation:    a.compilation,
			ReleaseDate:    a.releaseDate,
			TotalPlayCount: a.totalPlayCount,
			TotalSkipCount: a.totalSkipCount,
		}
		if len(a.bitRates) > 0 {
			avg := mean(a.bitRates)
			doc.AvgBitRate = &avg
		}
		if len(a.ratings) > 0 {
			avg := mean(a.ratings)
			doc.Rating = &avg
		}
		if len(a.addedDates) > 0 {
			first, last := minMaxTimes(a.addedDates)
			doc.FirstAdded = &first
			doc.LastAdded = &last
		}
		out.Albums = append(out.Albums, doc)
	}

	for _, key := range p.genreOrder {
		g := p.genres[key]
		doc := data.GenreDoc{
			Name:        g.name,
			TrackCount:  g.trackCount,
			ArtistCount: int64(len(g.artists)),
			AlbumCount:  int64(len(g.albums)),
			TotalTime:   g.totalTime,
		}
		if len(g.bitRates) > 0 {
			avg := mean(g.bitRates)
			doc.AvgBitRate = &avg
		}
		if len(g.ratings) > 0 {
			avg := mean(g.ratings)
			doc.AvgRating = &avg
		}
		if len(g.playCounts) > 0 {
			avg := mean(g.playCounts)
			total := sum(g.playCounts)
			doc.AvgPlayCount = &avg
			doc.TotalPlayCount = &total
		}
		out.Genres = append(out.Genres, doc)
	}
}

func sum(vs []int64) int64 {
	var total int64
	for _, v := range vs {
		total += v
	}
	return total
}

// mean is only ever called on non-empty slices; callers guard.
func mean(vs []int64) float64 {
	return float64(sum(vs)) / float64(len(vs))
}

func minMaxTimes(ts []time.Time) (min, max time.Time) {
	min, max = ts[0], ts[0]
	for _, t := range ts[1:] {
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return min, max
}
