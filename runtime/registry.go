package runtime

import (
	"sync"

	"devconnect/contract"
)

// Registry is the single source of truth for "who is attached to this
// process". It maintains both directions of the user/session mapping plus
// the live outbound sink of every session.
//
// All state is in-memory and instance-local: the registry knows nothing
// about sessions held by other deployments. It cannot fail, only return
// absence. Registry is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu            sync.RWMutex
	userToSession map[string]string               // user id -> session id
	sessionToUser map[string]string               // session id -> user id
	sinks         map[string]contract.SessionSink // session id -> outbound sink
}

func NewRegistry() *Registry {
	return &Registry{
		userToSession: make(map[string]string),
		sessionToUser: make(map[string]string),
		sinks:         make(map[string]contract.SessionSink),
	}
}

// Attach records a session's outbound sink as soon as the transport accepts
// the connection, before any user is bound to it. A session with no bound
// user still receives presence broadcasts.
func (r *Registry) Attach(sessionID string, sink contract.SessionSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[sessionID] = sink
}

// Bind maps a user to a session, last-register-wins: any previous session
// bound to the same user is silently orphaned and its reverse entry removed.
// Bind always succeeds. The orphaned session id is returned when there was one.
func (r *Registry) Bind(userID, sessionID string) (orphaned string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A session re-registering as a different user releases its previous
	// user, otherwise that user would stay resolvable through a session it
	// no longer owns.
	if previousUser, exists := r.sessionToUser[sessionID]; exists && previousUser != userID {
		if current, held := r.userToSession[previousUser]; held && current == sessionID {
			delete(r.userToSession, previousUser)
		}
	}

	if previous, exists := r.userToSession[userID]; exists && previous != sessionID {
		delete(r.sessionToUser, previous)
		orphaned, ok = previous, true
	}
	r.userToSession[userID] = sessionID
	r.sessionToUser[sessionID] = userID
	return orphaned, ok
}

// SessionFor looks up the live session bound to a user.
func (r *Registry) SessionFor(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.userToSession[userID]
	return sessionID, ok
}

// UserFor is the reverse lookup.
func (r *Registry) UserFor(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.sessionToUser[sessionID]
	return userID, ok
}

// SinkFor resolves the outbound sink of a user's live session, if any.
func (r *Registry) SinkFor(userID string) (contract.SessionSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.userToSession[userID]
	if !ok {
		return nil, false
	}
	sink, ok := r.sinks[sessionID]
	return sink, ok
}

// Unbind removes both directions of the mapping for a session and forgets
// its sink. It returns the user that was bound, so callers can emit the
// presence-offline transition exactly once. Unbinding an unknown session
// is a no-op, not an error.
func (r *Registry) Unbind(sessionID string) (userID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sinks, sessionID)

	userID, ok = r.sessionToUser[sessionID]
	if !ok {
		return "", false
	}
	delete(r.sessionToUser, sessionID)

	// Only drop the forward entry if it still points at this session;
	// a newer Bind may already have overwritten it.
	if current, exists := r.userToSession[userID]; exists && current == sessionID {
		delete(r.userToSession, userID)
	}
	return userID, true
}

// Sinks returns a snapshot of every attached session sink, for broadcasts.
func (r *Registry) Sinks() []contract.SessionSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]contract.SessionSink, 0, len(r.sinks))
	for _, sink := range r.sinks {
		snapshot = append(snapshot, sink)
	}
	return snapshot
}
