// this program reads an iTunes library xml export, aggregates it into
// track, artist, album, and genre collections, and loads those into
// elasticsearch with a kibana dashboard on top.
//
// see elastic/mappings for the resulting index shapes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rorads/itunes-xml-insights/config"
	"github.com/rorads/itunes-xml-insights/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		panic(err)
	}
}

var usage = strings.TrimSpace(`
usage: insights $cmd
valid $cmd are 'ingest', 'snapshot', 'dashboards'
for help: insights $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	// .env is optional; absence is the normal case outside compose.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) < 2 {
		return fmt.Errorf(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "ingest":
		return ingest(ctx, cfg, args)

	case "snapshot":
		return snapshot(ctx, cfg, args)

	case "dashboards":
		return dashboards(ctx, cfg, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
