package server

import (
	"context"
	"sync"
	"time"

	"steeple/feeds"
	"steeple/models"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Broadcaster fans live status changes out to connected SSE clients.
type Broadcaster struct {
	sync.RWMutex
	statusClients map[string]chan models.LiveStatusEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		statusClients: make(map[string]chan models.LiveStatusEvent),
	}
}

func (b *Broadcaster) BroadcastStatus(event models.LiveStatusEvent) {
	b.RLock()
	defer b.RUnlock()

	for id, client := range b.statusClients {
		select {
		case client <- event: // Non-blocking send
		default:
			log.Warnf("Client channel full, skipping status for client: %v", id)
		}
	}
}

func (b *Broadcaster) AddClient(key string, statusClient chan models.LiveStatusEvent) {
	b.Lock()
	defer b.Unlock()
	b.statusClients[key] = statusClient
	log.WithFields(log.Fields{
		"key":   key,
		"count": len(b.statusClients),
	}).Info("Adding client to broadcaster")
}

func (b *Broadcaster) RemoveClient(key string) {
	b.Lock()
	defer b.Unlock()

	if client, ok := b.statusClients[key]; ok {
		close(client)
		delete(b.statusClients, key)
	}

	log.WithFields(log.Fields{
		"key":   key,
		"count": len(b.statusClients),
	}).Info("Removed client from broadcaster")
}

func (b *Broadcaster) Shutdown() {
	log.Info("Shutting down broadcaster")
	b.Lock()
	defer b.Unlock()
	for key, client := range b.statusClients {
		close(client)
		delete(b.statusClients, key)
	}
}

// PollLiveStatus watches the live stream source and broadcasts whenever the
// live flag flips. Runs until the context is cancelled.
func PollLiveStatus(ctx context.Context, src feeds.LiveStreamSource, interval time.Duration, bc *Broadcaster) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last *models.LiveStatusEvent

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			streams, err := src.LiveStreams(ctx)
			if err != nil {
				log.WithField("error", err).Warn("Live status poll failed")
				continue
			}

			event := liveStatus(streams, time.Now())
			if last == nil || last.IsLive != event.IsLive {
				bc.BroadcastStatus(event)
				last = &event
			}
		}
	}
}

func liveStatus(streams []models.LiveStream, now time.Time) models.LiveStatusEvent {
	event := models.LiveStatusEvent{
		IsLive: lo.SomeBy(streams, func(s models.LiveStream) bool { return s.IsLive }),
		At:     now,
	}

	// Surface the earliest scheduled start among the known streams.
	for _, s := range streams {
		if s.EventStartTime == nil {
			continue
		}
		if event.StartsAt == nil || s.EventStartTime.Before(*event.StartsAt) {
			event.StartsAt = s.EventStartTime
		}
	}

	return event
}
