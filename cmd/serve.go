package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"steeple/config"
	"steeple/feeds"
	"steeple/server"
	"steeple/sources"
	"steeple/store"

	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the feed API",
		Description: `Starts the feed HTTP server and the live status poller.

Launches the HTTP server on the configured port. Feed requests are resolved
against the registered feed algorithms; live status changes are pushed to
connected SSE clients.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/steeple.toml",
				Usage:   "Path to the configuration file",
				EnvVars: []string{"STEEPLE_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on, overrides the config file",
				EnvVars: []string{"STEEPLE_PORT"},
			},
		},
		Action: func(ctx *cli.Context) error {
			fmt.Println("Starting steeple...")

			cfg, err := config.LoadConfig(ctx.String("config"))
			if err != nil {
				return err
			}
			if port := ctx.Int("port"); port != 0 {
				cfg.Server.Port = port
			}

			engine, cleanup, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			dispatcher := feeds.NewDispatcher(engine)
			bc := server.NewBroadcaster()

			pollCtx, cancel := context.WithCancel(ctx.Context)
			defer cancel()
			go server.PollLiveStatus(
				pollCtx,
				engine.Sources.Live,
				time.Duration(cfg.Streams.PollIntervalSeconds)*time.Second,
				bc,
			)

			app := server.Server(&server.ServerConfig{
				Hostname:    cfg.Server.Hostname,
				Dispatcher:  dispatcher,
				Messages:    engine.Sources.Messages,
				Broadcaster: bc,
			})

			// Graceful shutdown
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)
			go func() {
				<-c
				fmt.Println("Gracefully shutting down...")
				cancel()
				bc.Shutdown()
				app.ShutdownWithTimeout(60 * time.Second)
			}()

			fmt.Println("Starting server...")
			if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
				return err
			}

			fmt.Println("Done!")
			return nil
		},
	}
}

// buildEngine wires the content source adapters from configuration. The
// campus source is optional; without a database the campus feed simply has
// nothing to show.
func buildEngine(cfg *config.TomlConfig) (*feeds.Engine, func(), error) {
	client := sources.NewClient()

	src := feeds.Sources{
		Messages: sources.NewMessages(client, cfg.Media.BaseURL, cfg.Media.Target),
		Blogs:    sources.NewBlogs(client, cfg.Media.BaseURL),
		Live:     sources.NewLiveStreams(client, cfg.Streams.URL, cfg.Media.Target),
		Connect:  sources.NewConnect(client, cfg.Cms.BaseURL, cfg.Cms.Space, cfg.Cms.Token),
		Series:   sources.NewSeries(client, cfg.Media.BaseURL),
	}

	cleanup := func() {}
	if cfg.Campus.DatabaseURL != "" {
		st, err := store.New(cfg.Campus.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		src.Campus = sources.NewCampus(st, cfg.Campus.Channels)
		cleanup = func() { st.Close() }
	}

	engine := feeds.NewEngine(src)
	if cfg.Media.RecapTagID != "" {
		engine.RecapTagID = cfg.Media.RecapTagID
	}
	return engine, cleanup, nil
}
