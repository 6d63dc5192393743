package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"carrental/internal/events"
	"carrental/pkg/logger"
	"carrental/pkg/websocket"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	StatisticsMessageType = "statistics"

	broadcastTimeout = 2 * time.Second
	broadcastBuffer  = 64
)

// RoomPublisher pushes a message to the websocket clients of a room.
type RoomPublisher interface {
	Publish(roomID, messageType string, data map[string]interface{})
}

// ChannelPublisher fans a message out to other instances, e.g. over Redis.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// ChannelSubscriber receives what other instances publish.
type ChannelSubscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// ChannelEvent is a statistics event as exchanged between instances.
type ChannelEvent struct {
	Origin string `json:"origin"`
	events.Event
}

// Statistics observes the company collections. Every change is logged,
// pushed to the websocket statistics room and, when configured, published
// on a Redis channel by Run.
type Statistics struct {
	mu      sync.RWMutex
	latest  map[string]int
	room    RoomPublisher
	channel ChannelPublisher
	name    string
	origin  string
	outbox  chan ChannelEvent
	logger  *logger.Logger
}

func NewStatistics(room RoomPublisher, channel ChannelPublisher, channelName string, logger *logger.Logger) *Statistics {
	s := &Statistics{
		latest:  make(map[string]int),
		room:    room,
		channel: channel,
		name:    channelName,
		origin:  uuid.NewString(),
		logger:  logger,
	}
	if channel != nil && channelName != "" {
		s.outbox = make(chan ChannelEvent, broadcastBuffer)
	}
	return s
}

// Update never blocks on the channel; events are dropped while the outbox
// is full.
func (s *Statistics) Update(event events.Event) {
	s.mu.Lock()
	s.latest[event.Source] = event.Count
	s.mu.Unlock()

	s.logger.LogStatistics(event.Source, event.Count)

	if s.room != nil {
		s.room.Publish(websocket.StatisticsRoom, StatisticsMessageType, map[string]interface{}{
			"source": event.Source,
			"count":  event.Count,
		})
	}
	if s.outbox == nil {
		return
	}
	select {
	case s.outbox <- ChannelEvent{Origin: s.origin, Event: event}:
	default:
		s.logger.WithField("channel", s.name).Warn("Statistics outbox full, dropping update")
	}
}

// Run publishes queued events on the channel until ctx is done.
func (s *Statistics) Run(ctx context.Context) {
	if s.outbox == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.outbox:
			publishCtx, cancel := context.WithTimeout(ctx, broadcastTimeout)
			if err := s.channel.Publish(publishCtx, s.name, event); err != nil {
				s.logger.WithError(err).WithField("channel", s.name).Warn("Failed to publish statistics")
			}
			cancel()
		}
	}
}

// Relay forwards the statistics published by other instances to the local
// websocket room until ctx is done.
func (s *Statistics) Relay(ctx context.Context, subscriber ChannelSubscriber) {
	if subscriber == nil || s.name == "" {
		return
	}
	pubsub := subscriber.Subscribe(ctx, s.name)
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			s.relay([]byte(msg.Payload))
		}
	}
}

func (s *Statistics) relay(payload []byte) {
	var event ChannelEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.WithError(err).WithField("channel", s.name).Warn("Ignoring malformed statistics message")
		return
	}
	if event.Origin == s.origin || s.room == nil {
		return
	}
	s.room.Publish(websocket.StatisticsRoom, StatisticsMessageType, map[string]interface{}{
		"source": event.Source,
		"count":  event.Count,
		"origin": event.Origin,
	})
}

// Latest returns the last count seen per source.
func (s *Statistics) Latest() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.latest))
	for source, count := range s.latest {
		out[source] = count
	}
	return out
}
