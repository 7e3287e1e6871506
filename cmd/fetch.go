package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"steeple/config"
	"steeple/feeds"
	"steeple/models"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Assemble one feed and print its cards to the command line",
		ArgsUsage: "FEATURE_ID",
		Description: `Dispatches a single feature id against the registered feed
algorithms and prints each assembled card as a JSON object on a single line.
Use a tool like jq to process the output.

Prints all other log messages to stderr.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/steeple.toml",
				Usage:   "Path to the configuration file",
				EnvVars: []string{"STEEPLE_CONFIG"},
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of cards",
			},
			&cli.IntFlag{
				Name:  "skip",
				Usage: "Number of cards to skip",
			},
			&cli.StringFlag{
				Name:  "campus",
				Usage: "Campus id to scope the feed to",
			},
			&cli.StringFlag{
				Name:  "series",
				Usage: "Series id for the SERIES feature",
			},
		},
		Action: func(ctx *cli.Context) error {
			featureID := ctx.Args().First()
			if featureID == "" {
				return fmt.Errorf("missing FEATURE_ID argument, e.g. %s:default", feeds.TagCampaignItems)
			}

			// Disable logging to stdout
			log.SetOutput(os.Stderr)

			cfg, err := config.LoadConfig(ctx.String("config"))
			if err != nil {
				return err
			}

			engine, cleanup, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			args := feeds.Args{
				CampusID: ctx.String("campus"),
				SeriesID: ctx.String("series"),
			}
			if ctx.IsSet("limit") {
				limit := ctx.Int("limit")
				args.Limit = &limit
			}
			if ctx.IsSet("skip") {
				skip := ctx.Int("skip")
				args.Skip = &skip
			}
			rawArgs, err := json.Marshal(args)
			if err != nil {
				return err
			}

			cards, err := feeds.NewDispatcher(engine).Dispatch(ctx.Context, featureID, rawArgs)
			if err != nil {
				return err
			}

			for _, card := range cards {
				printStdout(&card)
			}
			return nil
		},
	}
}

func printStdout(card *models.Card) {
	// Print as single JSON string on a single line
	cardJson, err := json.Marshal(card)
	if err == nil {
		fmt.Println(string(cardJson))
	}
}
