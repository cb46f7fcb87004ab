package sse

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startManager(t *testing.T) *Manager {
	t.Helper()

	m := NewManager(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	t.Cleanup(cancel)
	return m
}

func receive(t *testing.T, c <-chan Event) Event {
	t.Helper()

	select {
	case evt, ok := <-c:
		require.True(t, ok, "channel closed")
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_SubscribeReceivesCartChanged(t *testing.T) {
	m := startManager(t)

	a, err := m.Subscribe("")
	require.NoError(t, err)
	defer a.Close()
	b, err := m.Subscribe("")
	require.NoError(t, err)
	defer b.Close()

	m.Emit(NewCartChangedEvent("cart"))

	assert.Equal(t, EventCartChanged, receive(t, a.C).Type)
	assert.Equal(t, EventCartChanged, receive(t, b.C).Type)
}

func TestManager_ScopeFiltering(t *testing.T) {
	m := startManager(t)

	mine, err := m.Subscribe("cart-me@example.com")
	require.NoError(t, err)
	defer mine.Close()
	other, err := m.Subscribe("cart-other@example.com")
	require.NoError(t, err)
	defer other.Close()

	m.Emit(NewCartChangedEvent("cart-me@example.com"))
	assert.Equal(t, EventCartChanged, receive(t, mine.C).Type)

	select {
	case evt := <-other.C:
		t.Fatalf("unexpected event for other scope: %v", evt.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscription_CloseUnsubscribes(t *testing.T) {
	m := NewManager(testLogger())

	sub, err := m.Subscribe("")
	require.NoError(t, err)
	assert.Equal(t, 1, m.ClientCount())

	sub.Close()
	sub.Close() // idempotent
	assert.Equal(t, 0, m.ClientCount())

	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestManager_EmitIgnoresForeignTypes(t *testing.T) {
	m := NewManager(testLogger())
	m.Emit("not an event")
	assert.Empty(t, m.events)
}

func TestManager_ShutdownClosesSubscribers(t *testing.T) {
	m := NewManager(testLogger())

	sub, err := m.Subscribe("")
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))

	select {
	case <-sub.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed on shutdown")
	}

	// Emit after shutdown is dropped silently.
	m.Emit(NewCartChangedEvent("cart"))
	sub.Close()
}

func TestHandler_StreamsCartChanged(t *testing.T) {
	m := startManager(t)
	h := NewHandler(m, func(*http.Request) string { return "cart" }, testLogger())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event: "); ok {
				return name
			}
		}
	}

	assert.Equal(t, "connected", readEvent())

	require.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	m.Emit(NewCartChangedEvent("cart"))

	assert.Equal(t, string(EventCartChanged), readEvent())
}

func TestHandler_RejectsNonGet(t *testing.T) {
	h := NewHandler(NewManager(testLogger()), nil, testLogger())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
