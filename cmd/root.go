package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "steeple",
		Usage: "Content aggregation feeds for the church community app",
		Description: `Steeple merges the sermon archive, blog archive, live stream
		status, connect page CMS and campus content into the ordered card
		feeds the mobile app renders.

		The HTTP API resolves a feature id to one of the registered feed
		algorithms and returns its assembled card list.

		Flags can generally be set via environment variables, e.g.:

		--config => STEEPLE_CONFIG=config/steeple.toml
		--port => STEEPLE_PORT=3000
		`,
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			rollbackCmd(),
			fetchCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
