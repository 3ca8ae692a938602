// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/ManuGH/dvbchannels/internal/api"
	"github.com/ManuGH/dvbchannels/internal/channellist"
	"github.com/ManuGH/dvbchannels/internal/config"
	"github.com/ManuGH/dvbchannels/internal/hdhr"
	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/ManuGH/dvbchannels/internal/version"
	"golang.org/x/sync/errgroup"
)

func runServe(args []string, stderr io.Writer) int {
	fs := newFlagSet("serve", stderr)
	configPath := fs.String("config", "", "path to config file (YAML)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Configuration error:\n  %v\n", err)
		return exitInvalid
	}

	xglog.Reconfigure(xglog.Config{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Version: version.Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		logger := xglog.WithComponent("serve")
		logger.Error().Err(err).Msg("serve failed")
		return exitInvalid
	}
	return exitOK
}

// serve loads the channel list and runs the HTTP server and the file
// watcher until ctx is cancelled or one of them fails.
func serve(ctx context.Context, cfg config.Config) error {
	logger := xglog.WithComponent("serve")
	ctx = logger.WithContext(ctx)

	policy, err := channellist.ParseRejectPolicy(cfg.RejectPolicy)
	if err != nil {
		return err
	}
	opts := channellist.Options{Policy: policy, Workers: cfg.Workers}

	initial, err := channellist.Load(ctx, cfg.ChannelFile, opts)
	if err != nil {
		return err
	}
	store := channellist.NewStore(initial)
	logger.Info().
		Str(xglog.FieldPath, cfg.ChannelFile).
		Int(xglog.FieldChannels, initial.Len()).
		Int(xglog.FieldRejected, initial.Rejected()).
		Msg("channel list loaded")

	apiCfg := api.Config{
		ListenAddr: cfg.HTTP.ListenAddr,
		RateLimit:  cfg.HTTP.RateLimit,
	}
	if cfg.HDHR.Enabled {
		apiCfg.HDHR = hdhr.NewServer(hdhr.Config{
			DeviceID:     cfg.HDHR.DeviceID,
			FriendlyName: cfg.HDHR.FriendlyName,
			ModelName:    cfg.HDHR.ModelName,
			FirmwareName: cfg.HDHR.FirmwareName,
			BaseURL:      cfg.HDHR.BaseURL,
			TunerCount:   cfg.HDHR.TunerCount,
			StreamURL:    cfg.HDHR.StreamURL,
		}, store)
	}
	server := api.New(apiCfg, store)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	if cfg.Watch.Enabled {
		watcher := channellist.NewWatcher(channellist.WatcherConfig{
			Path:     cfg.ChannelFile,
			Store:    store,
			Options:  opts,
			Debounce: cfg.Watch.Debounce,
		})
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}
	return g.Wait()
}
