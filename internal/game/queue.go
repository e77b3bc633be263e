package game

import "sync"

// WaitingQueue is the FIFO set of sessions awaiting an opponent. One lock
// guards every structural mutation and is never held across a network send.
type WaitingQueue struct {
	mu       sync.Mutex
	sessions []*Session

	wake chan struct{}
}

func NewWaitingQueue() *WaitingQueue {
	return &WaitingQueue{
		wake: make(chan struct{}, 1),
	}
}

// Enqueue appends a session unless it is already queued. A successful append
// nudges the matchmaker through the wake channel.
func (that *WaitingQueue) Enqueue(session *Session) bool {
	that.mu.Lock()

	for _, queued := range that.sessions {
		if queued == session {
			that.mu.Unlock()
			return false
		}
	}

	that.sessions = append(that.sessions, session)
	that.mu.Unlock()

	select {
	case that.wake <- struct{}{}:
	default:
	}

	return true
}

// Remove takes a session out of the queue and reports whether it was present.
// Safe to call for sessions that were never queued or already paired.
func (that *WaitingQueue) Remove(session *Session) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, queued := range that.sessions {
		if queued == session {
			that.sessions = append(that.sessions[:i], that.sessions[i+1:]...)
			return true
		}
	}

	return false
}

// TakePair removes and returns the two longest-waiting sessions, strict FIFO.
func (that *WaitingQueue) TakePair() (*Session, *Session, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.sessions) < 2 {
		return nil, nil, false
	}

	first, second := that.sessions[0], that.sessions[1]
	that.sessions = that.sessions[2:]

	return first, second, true
}

func (that *WaitingQueue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()
	return len(that.sessions)
}

// Wake is signaled after every successful enqueue.
func (that *WaitingQueue) Wake() <-chan struct{} {
	return that.wake
}
