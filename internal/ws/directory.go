package ws

import (
	"log/slog"
	"sync"
)

// Directory maps room identifiers to the sessions currently joined to
// them. A session may occupy any number of rooms at once; the reverse
// index keeps disconnect cleanup deterministic. One coarse RWMutex guards
// both maps, which is sufficient at this scale.
type Directory struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Session]struct{}
	sessions map[*Session]map[string]struct{}
	log      *slog.Logger
}

func NewDirectory(log *slog.Logger) *Directory {
	if log == nil {
		log = slog.Default()
	}
	return &Directory{
		rooms:    make(map[string]map[*Session]struct{}),
		sessions: make(map[*Session]map[string]struct{}),
		log:      log,
	}
}

// Join adds the session to the room. Idempotent per session.
func (d *Directory) Join(room string, session *Session) {
	if session == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rooms[room] == nil {
		d.rooms[room] = make(map[*Session]struct{})
	}
	d.rooms[room][session] = struct{}{}

	if d.sessions[session] == nil {
		d.sessions[session] = make(map[string]struct{})
	}
	d.sessions[session][room] = struct{}{}
}

// Leave removes the session from the room, pruning the room entry when it
// empties. Reports whether the session was actually a member.
func (d *Directory) Leave(room string, session *Session) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	members, ok := d.rooms[room]
	if !ok {
		return false
	}
	if _, ok := members[session]; !ok {
		return false
	}

	delete(members, session)
	if len(members) == 0 {
		delete(d.rooms, room)
	}

	if rooms, ok := d.sessions[session]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(d.sessions, session)
		}
	}
	return true
}

// DropSession removes the session from every room it occupies and returns
// the rooms it left, so the caller can emit departure notices. Idempotent:
// a second call for the same session returns nil.
func (d *Directory) DropSession(session *Session) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	rooms, ok := d.sessions[session]
	if !ok {
		return nil
	}
	delete(d.sessions, session)

	left := make([]string, 0, len(rooms))
	for room := range rooms {
		left = append(left, room)
		if members, ok := d.rooms[room]; ok {
			delete(members, session)
			if len(members) == 0 {
				delete(d.rooms, room)
			}
		}
	}
	return left
}

// Contains reports whether the session is currently joined to the room.
func (d *Directory) Contains(room string, session *Session) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members, ok := d.rooms[room]
	if !ok {
		return false
	}
	_, ok = members[session]
	return ok
}

// MemberCount returns the number of sessions currently in the room.
func (d *Directory) MemberCount(room string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms[room])
}

// Broadcast fans the event out to every session in the room except the
// one with excludeID (empty string excludes nobody). Membership is
// snapshotted under the read lock; delivery is non-blocking and events to
// slow consumers are dropped.
func (d *Directory) Broadcast(room string, event Event, excludeID string) {
	d.mu.RLock()
	members := make([]*Session, 0, len(d.rooms[room]))
	for session := range d.rooms[room] {
		if excludeID != "" && session.ID == excludeID {
			continue
		}
		members = append(members, session)
	}
	d.mu.RUnlock()

	for _, session := range members {
		if !session.Enqueue(event) {
			d.log.Debug("dropping broadcast event",
				slog.String("session", session.ID),
				slog.String("room", room),
				slog.String("type", event.Event),
			)
		}
	}
}
