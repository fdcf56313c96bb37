package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/orgchat/orgchat-server/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// noEvent drains the channel for a short window and fails if an event of
// the given kind shows up.
func noEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// fakeMessageStore assigns sequential ids and counts appends. When the
// started/release channels are set, each append signals started and then
// parks until release is closed, so tests can act mid-append.
type fakeMessageStore struct {
	mu      sync.Mutex
	nextID  int64
	appends int
	fail    bool

	started chan struct{}
	release chan struct{}
}

func (f *fakeMessageStore) AppendMessage(_ context.Context, senderID, receiverID int64, body string, createdAt time.Time) (*store.Message, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("store unavailable")
	}
	f.appends++
	f.nextID++
	return &store.Message{
		ID:         f.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  createdAt,
	}, nil
}

func (f *fakeMessageStore) ListConversation(context.Context, int64, int64) ([]*store.Message, error) {
	return nil, nil
}

func (f *fakeMessageStore) appendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appends
}
