// Package catalog persists the processed collections to a local sqlite
// file, for inspection without an Elasticsearch instance. Writes mirror
// the index writer's semantics: keyed upsert with full replacement, and
// documents with an empty identifier are skipped.
package catalog

import (
	"fmt"

	"github.com/rorads/itunes-xml-insights/aggregate"
	"github.com/rorads/itunes-xml-insights/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Catalog represents our sqlite3 snapshot file.
type Catalog struct {
	db *gorm.DB
}

// Open returns a connection to a migrated sqlite3 snapshot file on
// disk, creating the file and tables if necessary.
func Open(filename string) (*Catalog, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening snapshot file at '%s': %w", filename, err)
	}

	if err := gdb.AutoMigrate(
		&data.TrackDoc{},
		&data.ArtistDoc{},
		&data.AlbumDoc{},
		&data.GenreDoc{},
	); err != nil {
		return nil, fmt.Errorf("error migrating snapshot at '%s': %w", filename, err)
	}

	return &Catalog{db: gdb}, nil
}

func (c *Catalog) Close() error {
	pool, err := c.db.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// Put writes all four collections.
func (c *Catalog) Put(cols *aggregate.Collections) error {
	if err := c.PutTracks(cols.Tracks); err != nil {
		return err
	}
	if err := c.PutArtists(cols.Artists); err != nil {
		return err
	}
	if err := c.PutAlbums(cols.Albums); err != nil {
		return err
	}
	return c.PutGenres(cols.Genres)
}

func (c *Catalog) PutTracks(tracks []data.TrackDoc) error {
	for _, track := range tracks {
		if track.ID() == "" {
			continue
		}
		if err := c.upsert(&track); err != nil {
			return fmt.Errorf("error writing track '%s': %w", track.TrackID, err)
		}
	}
	return nil
}

func (c *Catalog) PutArtists(artists []data.ArtistDoc) error {
	for _, artist := range artists {
		if artist.ID() == "" {
			continue
		}
		if err := c.upsert(&artist); err != nil {
			return fmt.Errorf("error writing artist '%s': %w", artist.Name, err)
		}
	}
	return nil
}

func (c *Catalog) PutAlbums(albums []data.AlbumDoc) error {
	for _, album := range albums {
		if album.ID() == "" {
			continue
		}
		if err := c.upsert(&album); err != nil {
			return fmt.Errorf("error writing album '%s': %w", album.Name, err)
		}
	}
	return nil
}

func (c *Catalog) PutGenres(genres []data.GenreDoc) error {
	for _, genre := range genres {
		if genre.ID() == "" {
			continue
		}
		if err := c.upsert(&genre); err != nil {
			return fmt.Errorf("error writing genre '%s': %w", genre.Name, err)
		}
	}
	return nil
}

// upsert replaces the whole row on key conflict, so re-running a
// snapshot over the same library leaves one row per key.
func (c *Catalog) upsert(doc any) error {
	return c.db.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(doc).
		Error
}

// Counts returns the number of rows per table, keyed by table name.
func (c *Catalog) Counts() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, table := range []string{"tracks", "artists", "albums", "genres"} {
		var count int64
		if err := c.db.Table(table).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("error counting table '%s': %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
