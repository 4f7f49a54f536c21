package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Session) []Event {
	events := make([]Event, 0)
	for {
		select {
		case ev := <-s.Events:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestDirectory_BroadcastReachesOnlyMembers(t *testing.T) {
	d := NewDirectory(nil)

	inRoom := NewSession(1, "alice", nil)
	alsoInRoom := NewSession(2, "bob", nil)
	outsider := NewSession(3, "carol", nil)

	d.Join("room-a", inRoom)
	d.Join("room-a", alsoInRoom)
	d.Join("room-b", outsider)

	d.Broadcast("room-a", Event{Event: EventReceiveMessage}, "")

	assert.Len(t, drain(inRoom), 1)
	assert.Len(t, drain(alsoInRoom), 1)
	assert.Empty(t, drain(outsider))
}

func TestDirectory_BroadcastExcludesSender(t *testing.T) {
	d := NewDirectory(nil)

	sender := NewSession(1, "alice", nil)
	receiver := NewSession(2, "bob", nil)
	d.Join("room", sender)
	d.Join("room", receiver)

	d.Broadcast("room", Event{Event: EventUserJoined}, sender.ID)

	assert.Empty(t, drain(sender))
	assert.Len(t, drain(receiver), 1)
}

func TestDirectory_JoinIsIdempotent(t *testing.T) {
	d := NewDirectory(nil)

	s := NewSession(1, "alice", nil)
	d.Join("room", s)
	d.Join("room", s)

	require.Equal(t, 1, d.MemberCount("room"))

	d.Broadcast("room", Event{Event: EventReceiveMessage}, "")
	assert.Len(t, drain(s), 1, "duplicate membership must not duplicate delivery")
}

func TestDirectory_LeaveStopsDelivery(t *testing.T) {
	d := NewDirectory(nil)

	s := NewSession(1, "alice", nil)
	d.Join("room", s)

	require.True(t, d.Leave("room", s))
	assert.False(t, d.Leave("room", s), "second leave reports no membership")
	assert.Equal(t, 0, d.MemberCount("room"))

	d.Broadcast("room", Event{Event: EventReceiveMessage}, "")
	assert.Empty(t, drain(s))
}

func TestDirectory_DropSessionRemovesFromAllRooms(t *testing.T) {
	d := NewDirectory(nil)

	s := NewSession(1, "alice", nil)
	peer := NewSession(2, "bob", nil)
	d.Join("room-a", s)
	d.Join("room-b", s)
	d.Join("room-a", peer)

	left := d.DropSession(s)
	assert.ElementsMatch(t, []string{"room-a", "room-b"}, left)

	// And cleanup is idempotent.
	assert.Nil(t, d.DropSession(s))

	d.Broadcast("room-a", Event{Event: EventReceiveMessage}, "")
	d.Broadcast("room-b", Event{Event: EventReceiveMessage}, "")
	assert.Empty(t, drain(s))
	assert.Len(t, drain(peer), 1)
}

func TestDirectory_ContainsTracksMembership(t *testing.T) {
	d := NewDirectory(nil)

	s := NewSession(1, "alice", nil)
	assert.False(t, d.Contains("room", s))

	d.Join("room", s)
	assert.True(t, d.Contains("room", s))

	d.Leave("room", s)
	assert.False(t, d.Contains("room", s))
}

func TestSession_EnqueueDropsWhenQueueFull(t *testing.T) {
	s := NewSession(1, "alice", nil)

	for i := 0; i < sessionQueueSize; i++ {
		require.True(t, s.Enqueue(Event{Event: EventReceiveMessage}))
	}
	assert.False(t, s.Enqueue(Event{Event: EventReceiveMessage}))
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s := NewSession(1, "alice", nil)
	s.Close()
	s.Close()
}

func TestSession_EnqueueAfterCloseIsDropped(t *testing.T) {
	s := NewSession(1, "alice", nil)
	s.Close()
	assert.False(t, s.Enqueue(Event{Event: EventReceiveMessage}))
}

func TestDirectory_BroadcastRacingTeardown(t *testing.T) {
	d := NewDirectory(nil)

	for i := 0; i < 100; i++ {
		s := NewSession(1, "alice", nil)
		peer := NewSession(2, "bob", nil)
		d.Join("room", s)
		d.Join("room", peer)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 32; j++ {
				d.Broadcast("room", Event{Event: EventReceiveMessage}, "")
			}
		}()
		go func() {
			defer wg.Done()
			d.DropSession(s)
			s.Close()
		}()
		wg.Wait()

		drain(peer)
		d.DropSession(peer)
		peer.Close()
	}
}
