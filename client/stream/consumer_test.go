package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"scholar-assist-api/core/domain"
)

// snapshotRecorder collects observer snapshots in order.
type snapshotRecorder struct {
	mu       sync.Mutex
	turns    []domain.AgentTurn
	sections [][]domain.MarkdownSection
}

func (r *snapshotRecorder) observe(turn domain.AgentTurn, sections []domain.MarkdownSection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, turn)
	r.sections = append(r.sections, sections)
}

func (r *snapshotRecorder) all() []domain.AgentTurn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AgentTurn(nil), r.turns...)
}

func (r *snapshotRecorder) last() (domain.AgentTurn, []domain.MarkdownSection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.turns) == 0 {
		return domain.AgentTurn{}, nil
	}
	return r.turns[len(r.turns)-1], r.sections[len(r.sections)-1]
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("turn did not finish in time")
	}
}

func TestConsumer_StreamsChunksInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		for _, chunk := range []string{"# Intro\n", "first part ", "second part\n", "## Details\nmore"} {
			w.Write([]byte(chunk))
			flusher.Flush()
			time.Sleep(5 * time.Millisecond)
		}
	}))
	defer srv.Close()

	rec := &snapshotRecorder{}
	consumer := NewConsumer(srv.URL, WithObserver(rec.observe))

	waitDone(t, consumer.Submit(context.Background(), "tell me"))

	turns := rec.all()
	if len(turns) < 3 {
		t.Fatalf("expected pending + chunk + done snapshots, got %d", len(turns))
	}
	if turns[0].Status != domain.TurnPending {
		t.Errorf("first snapshot status = %s, want pending", turns[0].Status)
	}
	if turns[1].Status != domain.TurnStreaming {
		t.Errorf("second snapshot status = %s, want streaming", turns[1].Status)
	}

	last, sections := rec.last()
	if last.Status != domain.TurnDone {
		t.Fatalf("final status = %s, want done", last.Status)
	}
	want := "# Intro\nfirst part second part\n## Details\nmore"
	if last.ResponseText != want {
		t.Errorf("response = %q, want %q", last.ResponseText, want)
	}

	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].Title == nil || *sections[0].Title != "Intro" {
		t.Errorf("first section title = %v", sections[0].Title)
	}
	if sections[1].Title == nil || *sections[1].Title != "Details" {
		t.Errorf("second section title = %v", sections[1].Title)
	}

	// Response text must grow monotonically across snapshots.
	prev := ""
	for _, turn := range turns {
		if len(turn.ResponseText) < len(prev) {
			t.Errorf("response shrank from %q to %q", prev, turn.ResponseText)
		}
		prev = turn.ResponseText
	}
}

func TestConsumer_ErrorUsesResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent runtime configuration is missing", http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := &snapshotRecorder{}
	consumer := NewConsumer(srv.URL, WithObserver(rec.observe))

	waitDone(t, consumer.Submit(context.Background(), "hi"))

	last, _ := rec.last()
	if last.Status != domain.TurnErrored {
		t.Fatalf("status = %s, want errored", last.Status)
	}
	if last.ErrorMessage != "agent runtime configuration is missing" {
		t.Errorf("error message = %q", last.ErrorMessage)
	}
}

func TestConsumer_ErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := &snapshotRecorder{}
	consumer := NewConsumer(srv.URL, WithObserver(rec.observe))

	waitDone(t, consumer.Submit(context.Background(), "hi"))

	last, _ := rec.last()
	if last.Status != domain.TurnErrored || last.ErrorMessage != "Agent request failed" {
		t.Errorf("turn = %+v", last)
	}
}

func TestConsumer_SubmitSupersedesInFlightTurn(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		flusher := w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
		if n == 1 {
			w.Write([]byte("stale chunk"))
			flusher.Flush()
			<-release
			return
		}
		w.Write([]byte("fresh answer"))
		flusher.Flush()
	}))
	defer srv.Close()
	defer close(release)

	rec := &snapshotRecorder{}
	consumer := NewConsumer(srv.URL, WithObserver(rec.observe))

	first := consumer.Submit(context.Background(), "old prompt")

	// Wait until the stale chunk arrived before superseding.
	deadline := time.After(5 * time.Second)
	for {
		last, _ := rec.last()
		if last.ResponseText == "stale chunk" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first chunk never arrived")
		case <-time.After(5 * time.Millisecond):
		}
	}

	waitDone(t, consumer.Submit(context.Background(), "new prompt"))
	waitDone(t, first)

	last, _ := rec.last()
	if last.PromptText != "new prompt" {
		t.Fatalf("final turn prompt = %q", last.PromptText)
	}
	if last.Status != domain.TurnDone || last.ResponseText != "fresh answer" {
		t.Errorf("final turn = %+v", last)
	}

	// The superseded turn must not surface an error or leak chunks into the
	// new turn's buffer.
	for _, turn := range rec.all() {
		if turn.PromptText == "new prompt" && turn.ResponseText == "stale chunk" {
			t.Error("stale chunk leaked into the new turn")
		}
		if turn.Status == domain.TurnErrored {
			t.Errorf("superseded turn surfaced an error: %+v", turn)
		}
	}
}

func TestConsumer_CancelIsSilent(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	rec := &snapshotRecorder{}
	consumer := NewConsumer(srv.URL, WithObserver(rec.observe))

	done := consumer.Submit(context.Background(), "hi")
	<-entered
	consumer.Cancel()
	waitDone(t, done)

	for _, turn := range rec.all() {
		if turn.Status == domain.TurnErrored {
			t.Errorf("cancellation surfaced as error: %+v", turn)
		}
	}
}

func TestConsumer_ReusesServerSessionID(t *testing.T) {
	var mu sync.Mutex
	var sessionIDs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"sessionId"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		sessionIDs = append(sessionIDs, req.SessionID)
		mu.Unlock()

		w.Header().Set("X-Session-Id", "session-assigned-by-server-0123456789")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	consumer := NewConsumer(srv.URL)

	waitDone(t, consumer.Submit(context.Background(), "first"))
	waitDone(t, consumer.Submit(context.Background(), "second"))

	mu.Lock()
	defer mu.Unlock()
	if len(sessionIDs) != 2 {
		t.Fatalf("requests = %d, want 2", len(sessionIDs))
	}
	if sessionIDs[0] != "" {
		t.Errorf("first request carried session id %q", sessionIDs[0])
	}
	if sessionIDs[1] != "session-assigned-by-server-0123456789" {
		t.Errorf("second request session id = %q", sessionIDs[1])
	}
	if consumer.SessionID() != "session-assigned-by-server-0123456789" {
		t.Errorf("SessionID() = %q", consumer.SessionID())
	}
}
