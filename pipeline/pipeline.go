// Package pipeline runs one end-to-end ingestion: parse the library
// export, aggregate it, rebuild the Elasticsearch indices, and
// provision the Kibana dashboard.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rorads/itunes-xml-insights/aggregate"
	"github.com/rorads/itunes-xml-insights/data"
	"github.com/rorads/itunes-xml-insights/elastic"
	"github.com/rorads/itunes-xml-insights/kibana"
	"github.com/rorads/itunes-xml-insights/library"
)

type Pipeline struct {
	LibraryPath string

	ElasticsearchURL      string
	ElasticsearchAttempts int
	ElasticsearchInterval time.Duration

	KibanaURL      string
	KibanaAttempts int
	KibanaInterval time.Duration

	// Collections selects which indices to rebuild. Empty means all of
	// them. Unselected indices are left untouched.
	Collections []string

	SkipDashboards bool
}

// Run executes the pipeline. The library is parsed and aggregated
// before anything touches Elasticsearch, so a bad export leaves every
// index exactly as it was. A Kibana failure is logged, not returned:
// the data is already indexed and the dashboard can be built by hand.
func (p *Pipeline) Run(ctx context.Context) error {
	log.Printf("loading library from %s", p.LibraryPath)
	lib, err := library.Load(p.LibraryPath)
	if err != nil {
		return err
	}
	log.Printf("loaded %d track records", len(lib.Tracks))

	cols := aggregate.Process(lib)
	if cols.Skipped > 0 {
		log.Printf("skipped %d records with no track id or name", cols.Skipped)
	}

	es, err := elastic.Connect(ctx, p.ElasticsearchURL, p.ElasticsearchAttempts, p.ElasticsearchInterval)
	if err != nil {
		return err
	}

	for _, name := range p.selected() {
		docs := collectionDocs(cols, name)

		if err := es.EnsureIndex(ctx, name); err != nil {
			return err
		}
		written, err := es.IndexDocs(ctx, name, docs)
		if err != nil {
			return err
		}
		count, err := es.Count(ctx, name)
		if err != nil {
			return err
		}
		log.Printf("indexed %d documents into '%s' (index now holds %d)", written, name, count)
	}

	if !p.SkipDashboards {
		kib := kibana.New(p.KibanaURL, p.KibanaAttempts, p.KibanaInterval)
		if err := kib.Setup(ctx); err != nil {
			log.Printf("error setting up kibana: %v", err)
			log.Printf("you can still create dashboards manually at %s", p.KibanaURL)
		}
	}

	return nil
}

func (p *Pipeline) selected() []string {
	if len(p.Collections) == 0 {
		return elastic.Indices
	}
	// Preserve canonical index order regardless of how the selection
	// was spelled.
	var out []string
	for _, name := range elastic.Indices {
		for _, sel := range p.Collections {
			if sel == name {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func collectionDocs(cols *aggregate.Collections, name string) []data.Doc {
	var docs []data.Doc
	switch name {
	case "tracks":
		for i := range cols.Tracks {
			docs = append(docs, &cols.Tracks[i])
		}
	case "artists":
		for i := range cols.Artists {
			docs = append(docs, &cols.Artists[i])
		}
	case "albums":
		for i := range cols.Albums {
			docs = append(docs, &cols.Albums[i])
		}
	case "genres":
		for i := range cols.Genres {
			docs = append(docs, &cols.Genres[i])
		}
	default:
		panic(fmt.Sprintf("unknown collection '%s'", name))
	}
	return docs
}
