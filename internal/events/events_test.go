// file: internal/events/events_test.go
package events

import (
	"context"
	"sync"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(8, zap.NewNop())

	var mu sync.Mutex
	var got []Event
	bus.Subscribe(BadgeEarned{}.EventType(), func(_ context.Context, e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})

	userID := uuid.Must(uuid.NewV4())
	bus.Publish(BadgeEarned{UserID: userID, BadgeID: "first_steps"})
	bus.Publish(UserRegistered{UserID: userID, Email: "a@b.c"}) // no subscriber
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	earned, ok := got[0].(BadgeEarned)
	require.True(t, ok)
	assert.Equal(t, "first_steps", earned.BadgeID)
	assert.Equal(t, userID, earned.UserID)
}

func TestBusDropsWhenQueueFull(t *testing.T) {
	bus := NewBus(1, zap.NewNop())
	block := make(chan struct{})
	bus.Subscribe(CompletionRecorded{}.EventType(), func(_ context.Context, _ Event) {
		<-block
	})

	for i := 0; i < 10; i++ {
		bus.Publish(CompletionRecorded{UnitID: "intro"})
	}
	assert.Greater(t, bus.Dropped(), int64(0))

	close(block)
	bus.Close()
}

func TestBusSurvivesPanickingHandler(t *testing.T) {
	bus := NewBus(4, zap.NewNop())
	delivered := make(chan struct{}, 2)
	bus.Subscribe(RankChanged{}.EventType(), func(_ context.Context, _ Event) {
		delivered <- struct{}{}
		panic("handler bug")
	})

	bus.Publish(RankChanged{From: "Novice", To: "Apprentice"})
	bus.Publish(RankChanged{From: "Apprentice", To: "Strategist"})
	bus.Close()

	assert.Len(t, delivered, 2)
}

func TestNilBusIsInert(t *testing.T) {
	var bus *Bus
	bus.Publish(UserRegistered{})
	bus.Subscribe("anything", func(_ context.Context, _ Event) {})
	bus.Close()
	assert.Zero(t, bus.Dropped())
}
