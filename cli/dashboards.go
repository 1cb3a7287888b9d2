package main

import (
	"context"

	"github.com/rorads/itunes-xml-insights/config"
	"github.com/rorads/itunes-xml-insights/kibana"
	"github.com/rorads/itunes-xml-insights/subcmd"
)

// dashboards provisions the kibana saved objects on their own, for when
// the indices already exist. Unlike the ingest path, a kibana failure
// here is fatal: provisioning was the whole point of the run.
func dashboards(ctx context.Context, cfg *config.Config, args []string) error {
	cmd := subcmd.New("dashboards", "provision the kibana index pattern, visualizations, and dashboard")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	kib := kibana.New(cfg.Kibana.URL, cfg.Kibana.MaxRetries, cfg.Kibana.Interval())
	return kib.Setup(ctx)
}
