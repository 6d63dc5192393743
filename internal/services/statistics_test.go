package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"carrental/internal/events"
	"carrental/pkg/logger"
	"carrental/pkg/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomMessage struct {
	room    string
	msgType string
	data    map[string]interface{}
}

type fakeRoom struct {
	messages []roomMessage
}

func (f *fakeRoom) Publish(roomID, messageType string, data map[string]interface{}) {
	f.messages = append(f.messages, roomMessage{room: roomID, msgType: messageType, data: data})
}

type fakeChannel struct {
	mu       sync.Mutex
	channels []string
	payloads []interface{}
	err      error
}

func (f *fakeChannel) Publish(ctx context.Context, channel string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, message)
	return f.err
}

func (f *fakeChannel) published() ([]string, []interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.channels...), append([]interface{}(nil), f.payloads...)
}

func TestStatisticsUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	room := &fakeRoom{}
	channel := &fakeChannel{}
	stats := NewStatistics(room, channel, "rental:statistics", logger.NewNop())
	go stats.Run(ctx)

	stats.Update(events.Event{Source: "cars", Count: 3})
	stats.Update(events.Event{Source: "cars", Count: 2})
	stats.Update(events.Event{Source: "customers", Count: 1})

	require.Len(t, room.messages, 3)
	assert.Equal(t, websocket.StatisticsRoom, room.messages[0].room)
	assert.Equal(t, StatisticsMessageType, room.messages[0].msgType)
	assert.Equal(t, 3, room.messages[0].data["count"])
	assert.Equal(t, map[string]int{"cars": 2, "customers": 1}, stats.Latest())

	assert.Eventually(t, func() bool {
		channels, _ := channel.published()
		return len(channels) == 3
	}, time.Second, 10*time.Millisecond)
	channels, payloads := channel.published()
	assert.Equal(t, []string{"rental:statistics", "rental:statistics", "rental:statistics"}, channels)
	assert.Equal(t, ChannelEvent{Origin: stats.origin, Event: events.Event{Source: "customers", Count: 1}}, payloads[2])
}

func TestStatisticsUpdateDoesNotWaitForChannel(t *testing.T) {
	channel := &fakeChannel{}
	stats := NewStatistics(nil, channel, "rental:statistics", logger.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer+10; i++ {
			stats.Update(events.Event{Source: "bookings", Count: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Update blocked without a running publisher")
	}
	assert.Equal(t, broadcastBuffer+9, stats.Latest()["bookings"])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stats.Run(ctx)

	assert.Eventually(t, func() bool {
		channels, _ := channel.published()
		return len(channels) == broadcastBuffer
	}, time.Second, 10*time.Millisecond)
}

func TestStatisticsOptionalPublishers(t *testing.T) {
	channel := &fakeChannel{err: errors.New("redis down")}
	stats := NewStatistics(nil, channel, "", logger.NewNop())

	assert.NotPanics(t, func() {
		stats.Update(events.Event{Source: "rentals", Count: 1})
	})
	assert.Nil(t, stats.outbox, "no channel name disables redis publishing")
	assert.Equal(t, 1, stats.Latest()["rentals"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats.Run(ctx)
	stats.Relay(ctx, nil)
	channels, _ := channel.published()
	assert.Empty(t, channels)
}

func TestStatisticsRunSurvivesPublishErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := &fakeChannel{err: errors.New("redis down")}
	stats := NewStatistics(nil, channel, "rental:statistics", logger.NewNop())
	go stats.Run(ctx)

	stats.Update(events.Event{Source: "cars", Count: 1})
	stats.Update(events.Event{Source: "cars", Count: 2})

	assert.Eventually(t, func() bool {
		channels, _ := channel.published()
		return len(channels) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestStatisticsRelaysOtherInstances(t *testing.T) {
	room := &fakeRoom{}
	stats := NewStatistics(room, &fakeChannel{}, "rental:statistics", logger.NewNop())

	remote, err := json.Marshal(ChannelEvent{Origin: "other", Event: events.Event{Source: "cars", Count: 4}})
	require.NoError(t, err)
	own, err := json.Marshal(ChannelEvent{Origin: stats.origin, Event: events.Event{Source: "cars", Count: 5}})
	require.NoError(t, err)

	stats.relay(remote)
	stats.relay(own)
	stats.relay([]byte("not json"))

	require.Len(t, room.messages, 1)
	assert.Equal(t, websocket.StatisticsRoom, room.messages[0].room)
	assert.Equal(t, map[string]interface{}{"source": "cars", "count": 4, "origin": "other"}, room.messages[0].data)
	assert.Empty(t, stats.Latest(), "relayed counts belong to the other instance")
}

func TestChannelEventWireFormat(t *testing.T) {
	data, err := json.Marshal(ChannelEvent{Origin: "a", Event: events.Event{Source: "cars", Count: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"origin":"a","source":"cars","count":2}`, string(data))
}
