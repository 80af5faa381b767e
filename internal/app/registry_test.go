package app_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/disagree/internal/app"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var left60 = domain.Stance{Side: domain.SideLeft, Intensity: 60}

func TestRegistry_CreateAssignsMonotonicIDs(t *testing.T) {
	reg := app.NewRegistry()

	a, err := reg.Create("Topic A", left60, "c1")
	require.NoError(t, err)
	b, err := reg.Create("Topic B", left60, "c2")
	require.NoError(t, err)

	assert.Equal(t, domain.RoomID(1), a.ID)
	assert.Equal(t, domain.RoomID(2), b.ID)
	assert.Equal(t, 1, a.ParticipantCount)
	assert.Equal(t, 2, a.Capacity)

	reg.Delete(b.ID)
	c, err := reg.Create("Topic C", left60, "c3")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomID(3), c.ID, "ids are never reused")
}

func TestRegistry_CreateRejectsInvalidInput(t *testing.T) {
	reg := app.NewRegistry()

	_, err := reg.Create("", left60, "c1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = reg.Create("x", domain.Stance{Side: domain.SideRight, Intensity: 0}, "c1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, 0, reg.Len())
	room, err := reg.Create("x", left60, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomID(1), room.ID, "failed creates do not consume ids")
}

func TestRegistry_FindDeleteIdempotent(t *testing.T) {
	reg := app.NewRegistry()
	room, err := reg.Create("Topic A", left60, "c1")
	require.NoError(t, err)

	got, ok := reg.FindByID(room.ID)
	require.True(t, ok)
	assert.Equal(t, room, got)

	reg.Delete(room.ID)
	reg.Delete(room.ID)
	reg.Delete(999)

	_, ok = reg.FindByID(room.ID)
	assert.False(t, ok)
	assert.Empty(t, reg.List())
}

func TestRegistry_ListInsertionOrder(t *testing.T) {
	reg := app.NewRegistry()
	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := reg.Create(name, left60, domain.ConnID(name))
		require.NoError(t, err)
	}
	reg.Delete(2)

	var names []string
	for _, r := range reg.List() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "c", "d"}, names)
}

func TestRegistry_SetParticipants(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)}
	reg := app.NewRegistry(app.WithClock(clock.Now))
	room, err := reg.Create("Topic A", left60, "c1")
	require.NoError(t, err)

	room, err = reg.SetParticipants(room.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomActive, room.State)
	assert.True(t, room.Full())

	clock.Advance(time.Minute)
	room, err = reg.SetParticipants(room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomForming, room.State)
	assert.Equal(t, clock.Now(), room.WaitingSince)

	_, err = reg.SetParticipants(room.ID, 3)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = reg.SetParticipants(room.ID, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = reg.SetParticipants(42, 1)
	assert.True(t, errors.Is(err, domain.ErrRoomNotFound))

	got, _ := reg.FindByID(room.ID)
	assert.Equal(t, 1, got.ParticipantCount)
}

func TestRegistry_SnapshotsAreCopies(t *testing.T) {
	reg := app.NewRegistry()
	room, err := reg.Create("Topic A", left60, "c1")
	require.NoError(t, err)

	room.ParticipantCount = 2
	got, _ := reg.FindByID(room.ID)
	assert.Equal(t, 1, got.ParticipantCount)
}

func TestRegistry_CreatedTodayRollsOver(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)}
	reg := app.NewRegistry(app.WithClock(clock.Now))

	for range 3 {
		_, err := reg.Create("x", left60, "c1")
		require.NoError(t, err)
	}
	reg.Delete(1)
	assert.Equal(t, 3, reg.CreatedToday(), "deletes do not lower the daily count")

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 0, reg.CreatedToday())
	_, err := reg.Create("y", left60, "c2")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.CreatedToday())
}
