package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gamma-omg/geofind/gazetteer"
	"github.com/gamma-omg/geofind/metacache"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	reset := flag.Bool("reset", false, "Reinitialize the metadata cache from scratch if set")
	cfgPath := flag.String("config", "cfg/config.yaml", "Configuration file for the find server")
	flag.Parse()

	cfg, err := readConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %s", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	cache := metacache.OpenOrNop(cfg.CachePath, *reset, logger)
	defer cache.Close()

	gaz, err := gazetteer.Load()
	if err != nil {
		log.Fatal(err)
	}

	finder := &Finder{
		log:        logger,
		root:       cfg.ScanRoot,
		vectorExts: cfg.VectorExtensions,
		rasterExts: cfg.RasterExtensions,
		cache:      cache,
		gaz:        gaz,
		now:        time.Now,
		// extraction and reprojection are host capabilities; the standalone
		// server indexes names and cached extents only
	}
	finder.OnIndexProgress(func(percent int) {
		logger.Info("indexing", "percent", percent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	finder.Refresh()
	if err := finder.Watch(ctx, time.Duration(cfg.MergeEventsMs)*time.Millisecond); err != nil {
		log.Fatal(err)
	}

	srv := NewFindServer(finder, cfg.Results)
	sse := server.NewSSEServer(srv, server.WithBaseURL(fmt.Sprintf("http://%s", cfg.ServerAddr)))
	log.Println(sse.Start(cfg.ServerAddr))
}
