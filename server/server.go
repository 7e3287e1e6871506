package server

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"steeple/feeds"
	"steeple/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

type ServerConfig struct {

	// The hostname to use for the server
	Hostname string

	// Dispatcher resolves feature ids to feed algorithms
	Dispatcher *feeds.Dispatcher

	// Messages backs the speaker profile lookup
	Messages feeds.MessageSource

	// Broadcast channel to pass live status to SSE clients
	Broadcaster *Broadcaster
}

// Returns a fiber.App instance to be used as an HTTP server for the feed API
func Server(config *ServerConfig) *fiber.App {

	bc := config.Broadcaster

	app := fiber.New()

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		// start timer
		start := time.Now()

		// next routes
		err := c.Next()

		// stop timer
		stop := time.Now()

		log.WithFields(log.Fields{
			"method":  c.Method(),
			"route":   c.Route().Path,
			"latency": stop.Sub(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Cache-Control",
	}))

	// Cache feed responses briefly; never cache the SSE stream
	app.Use(cache.New(cache.Config{
		Expiration: 30 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return true
			}
			if strings.HasSuffix(c.Path(), "/sse") {
				return true
			}
			return !strings.HasPrefix(c.Path(), "/feeds")
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			// Include the query parameters in the cache key
			return c.Request().URI().String()
		},
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "hostname": config.Hostname})
	})

	// List the registered features with minted feature ids
	app.Get("/features", func(c *fiber.Ctx) error {
		type feature struct {
			Tag string `json:"tag"`
			ID  string `json:"featureId"`
		}
		features := []feature{}
		for _, tag := range config.Dispatcher.Tags() {
			features = append(features, feature{Tag: tag, ID: feeds.FeatureID(tag, feeds.Args{})})
		}
		return c.JSON(features)
	})

	// Resolve a feature id to its assembled card list
	app.Get("/feeds/:feature", func(c *fiber.Ctx) error {
		featureID := c.Params("feature")

		args := feeds.Args{
			CampusID: c.Query("campusId", ""),
			SeriesID: c.Query("seriesId", ""),
		}
		if raw := c.Query("limit", ""); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return c.Status(fiber.StatusBadRequest).SendString("Invalid limit")
			}
			args.Limit = &limit
		}
		if raw := c.Query("skip", ""); raw != "" {
			skip, err := strconv.Atoi(raw)
			if err != nil || skip < 0 {
				return c.Status(fiber.StatusBadRequest).SendString("Invalid skip")
			}
			args.Skip = &skip
		}

		rawArgs, err := json.Marshal(args)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error encoding args")
		}

		cards, err := config.Dispatcher.Dispatch(c.UserContext(), featureID, rawArgs)
		if err != nil {
			var unknown *feeds.UnknownAlgorithmError
			if errors.As(err, &unknown) {
				return c.Status(fiber.StatusBadRequest).SendString("Invalid feature")
			}
			log.WithFields(log.Fields{
				"feature": featureID,
				"error":   err,
			}).Error("Error assembling feed")
			return c.Status(fiber.StatusInternalServerError).SendString("Error assembling feed")
		}

		return c.JSON(models.FeedResponse{Cards: cards, Count: len(cards)})
	})

	// Speaker profile image lookup
	app.Get("/speakers/:name", func(c *fiber.Ctx) error {
		speaker, err := config.Messages.SpeakerByName(c.UserContext(), c.Params("name"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error fetching speaker")
		}
		if speaker == nil || speaker.Image == "" {
			return c.Status(fiber.StatusNotFound).SendString("Speaker not found")
		}
		return c.JSON(fiber.Map{
			"name": speaker.Name,
			"profileImage": models.ImageMedia{
				Sources: []models.ImageSource{{URI: speaker.Image}},
			},
		})
	})

	app.Delete("/live/sse", func(c *fiber.Ctx) error {
		key := c.Query("key", "")
		bc.RemoveClient(key)
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	app.Get("/live/sse", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("Transfer-Encoding", "chunked")

		// Unique client key
		key := uuid.New().String()
		statusChannel := make(chan models.LiveStatusEvent, 10) // Buffered channel
		aliveChan := time.NewTicker(5 * time.Second)

		defer aliveChan.Stop()

		// Register the client
		bc.AddClient(key, statusChannel)

		cleanup := func() {
			log.Infof("Cleaning up SSE stream for client: %s", key)
			bc.RemoveClient(key)
		}

		// Use StreamWriter to manage SSE streaming
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cleanup()

			// Send initial event with client key
			fmt.Fprintf(w, "event: init\ndata: %s\n\n", key)
			if err := w.Flush(); err != nil {
				log.Errorf("Failed to send init event: %v", err)
				return
			}

			for {
				select {
				case <-aliveChan.C:
					// Send keep-alive pings
					if _, err := fmt.Fprintf(w, "event: ping\ndata: \n\n"); err != nil {
						log.Warnf("Failed to send ping to client %s: %v", key, err)
						return
					}
					if err := w.Flush(); err != nil {
						log.Warnf("Failed to flush ping for client %s: %v", key, err)
						return
					}

				case status, ok := <-statusChannel:
					if !ok {
						log.Warnf("Status channel closed for client %s", key)
						return
					}
					jsonStatus, err := json.Marshal(status)
					if err != nil {
						log.Errorf("Error marshalling status for client %s: %v", key, err)
						continue
					}
					if _, err := fmt.Fprintf(w, "event: live-status\ndata: %s\n\n", jsonStatus); err != nil {
						log.Warnf("Failed to send live-status event to client %s: %v", key, err)
						return
					}
					if err := w.Flush(); err != nil {
						log.Warnf("Failed to flush live-status event for client %s: %v", key, err)
						return
					}
				}
			}
		}))

		return nil
	})

	return app
}
