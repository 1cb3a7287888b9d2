package main

import (
	"context"

	"github.com/rorads/itunes-xml-insights/config"
	"github.com/rorads/itunes-xml-insights/elastic"
	"github.com/rorads/itunes-xml-insights/pipeline"
	"github.com/rorads/itunes-xml-insights/setflag"
	"github.com/rorads/itunes-xml-insights/subcmd"
)

func ingest(ctx context.Context, cfg *config.Config, args []string) error {
	cmd := subcmd.New("ingest", "parse the library export and rebuild the elasticsearch indices")
	collections := setflag.New(elastic.Indices...)
	cmd.Var(collections, "collections", "comma-separated subset of indices to rebuild (default: all)")
	library := cmd.String("library", cfg.LibraryPath, "path to the iTunes library xml export")
	skipDashboards := cmd.Bool("skip-dashboards", false, "index only; don't touch kibana")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		LibraryPath: *library,

		ElasticsearchURL:      cfg.Elasticsearch.URL,
		ElasticsearchAttempts: cfg.Elasticsearch.MaxRetries,
		ElasticsearchInterval: cfg.Elasticsearch.Interval(),

		KibanaURL:      cfg.Kibana.URL,
		KibanaAttempts: cfg.Kibana.MaxRetries,
		KibanaInterval: cfg.Kibana.Interval(),

		Collections:    collections.List(),
		SkipDashboards: *skipDashboards,
	}
	return p.Run(ctx)
}
