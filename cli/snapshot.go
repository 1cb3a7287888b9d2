package main

import (
	"context"
	"fmt"
	"log"

	"github.com/rorads/itunes-xml-insights/aggregate"
	"github.com/rorads/itunes-xml-insights/catalog"
	"github.com/rorads/itunes-xml-insights/config"
	"github.com/rorads/itunes-xml-insights/library"
	"github.com/rorads/itunes-xml-insights/subcmd"
)

// snapshot aggregates the library into a local sqlite file instead of
// elasticsearch, for offline inspection of the same collections.
func snapshot(ctx context.Context, cfg *config.Config, args []string) error {
	cmd := subcmd.New("snapshot", "aggregate the library export into a local sqlite file")
	libraryPath := cmd.String("library", cfg.LibraryPath, "path to the iTunes library xml export")
	out := cmd.String("out", cfg.Snapshot.Path, "path to the sqlite snapshot file")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	lib, err := library.Load(*libraryPath)
	if err != nil {
		return err
	}
	cols := aggregate.Process(lib)
	if cols.Skipped > 0 {
		log.Printf("skipped %d records with no track id or name", cols.Skipped)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("canceled: %w", err)
	}

	cat, err := catalog.Open(*out)
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := cat.Put(cols); err != nil {
		return err
	}

	counts, err := cat.Counts()
	if err != nil {
		return err
	}
	for _, table := range []string{"tracks", "artists", "albums", "genres"} {
		log.Printf("%s: %d rows", table, counts[table])
	}

	return nil
}
