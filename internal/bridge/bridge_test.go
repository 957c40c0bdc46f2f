package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/atomicstack/accessible-autocomplete/internal/suggest"
	"github.com/atomicstack/accessible-autocomplete/internal/testutil"
	uistate "github.com/atomicstack/accessible-autocomplete/internal/ui/state"
)

// eventLog collects the events written by a running bridge.
type eventLog struct {
	mu     sync.Mutex
	events []OutEvent
}

func (l *eventLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range bytes.Split(bytes.TrimSpace(p), []byte("\n")) {
		var ev OutEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return 0, err
		}
		l.events = append(l.events, ev)
	}
	return len(p), nil
}

func (l *eventLog) snapshot() []OutEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]OutEvent, len(l.events))
	copy(out, l.events)
	return out
}

func (l *eventLog) last(kind string) (OutEvent, bool) {
	events := l.snapshot()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == kind {
			return events[i], true
		}
	}
	return OutEvent{}, false
}

type session struct {
	t      *testing.T
	in     *io.PipeWriter
	log    *eventLog
	done   chan error
	cancel context.CancelFunc
}

func startSession(t *testing.T, cfg Config) *session {
	t.Helper()
	if cfg.ID == "" {
		cfg.ID = "autocomplete"
	}
	b, err := New(cfg)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	s := &session{t: t, in: pw, log: &eventLog{}, done: make(chan error, 1), cancel: cancel}
	go func() {
		s.done <- b.Run(ctx, pr, s.log)
		_ = pr.Close()
	}()
	t.Cleanup(cancel)
	return s
}

func (s *session) send(line string) {
	s.t.Helper()
	_, err := io.WriteString(s.in, line+"\n")
	require.NoError(s.t, err)
}

func (s *session) waitRender(pred func(OutEvent) bool) OutEvent {
	s.t.Helper()
	var found OutEvent
	require.Eventually(s.t, func() bool {
		ev, ok := s.log.last("render")
		if ok && pred(ev) {
			found = ev
			return true
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
	return found
}

func (s *session) finish() error {
	s.t.Helper()
	require.NoError(s.t, s.in.Close())
	select {
	case err := <-s.done:
		return err
	case <-time.After(2 * time.Second):
		s.t.Fatalf("bridge did not finish")
		return nil
	}
}

func labelsOf(ev OutEvent) []string {
	out := make([]string, 0, len(ev.Options))
	for _, opt := range ev.Options {
		out = append(out, opt.Label)
	}
	return out
}

func countries() suggest.Source {
	return suggest.NewStatic(suggest.Labels("Italy", "Iceland", "Mauritania"), suggest.MatchContains, 0)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Source: countries()})
	require.ErrorIs(t, err, uistate.ErrNoID)
	_, err = New(Config{ID: "autocomplete"})
	require.ErrorIs(t, err, uistate.ErrNoSource)
}

func TestTypeHighlightConfirm(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := startSession(t, Config{Source: countries()})

	s.send(`{"type":"text","text":"ita"}`)
	ev := s.waitRender(func(ev OutEvent) bool { return len(ev.Options) == 2 })
	assert.Equal(t, []string{"Italy", "Mauritania"}, labelsOf(ev))
	require.NotNil(t, ev.Highlight)
	assert.Equal(t, -1, *ev.Highlight)

	s.send(`{"type":"key","key":"ArrowDown"}`)
	ev = s.waitRender(func(ev OutEvent) bool { return ev.Highlight != nil && *ev.Highlight == 0 })
	assert.True(t, ev.Options[0].Selected)
	assert.False(t, ev.Options[1].Selected)
	assert.Equal(t, "option", ev.Focus)

	s.send(`{"type":"key","key":"Enter"}`)
	require.NoError(t, s.finish())

	confirm, ok := s.log.last("confirm")
	require.True(t, ok)
	require.NotNil(t, confirm.Item)
	assert.Equal(t, "Italy", confirm.Item.Label)
	final, _ := s.log.last("render")
	assert.Equal(t, "Italy", final.Query)
	assert.Equal(t, "input", final.Focus)
	assert.False(t, final.Expanded)
}

func TestStatusAlternatesRegions(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := startSession(t, Config{Source: countries()})
	s.send(`{"type":"text","text":"ita"}`)
	s.waitRender(func(ev OutEvent) bool { return len(ev.Options) == 2 })
	s.send(`{"type":"key","key":"ArrowDown"}`)
	require.NoError(t, s.finish())

	var spoken []OutEvent
	for _, ev := range s.log.snapshot() {
		if ev.Type == "status" && ev.Text != "" {
			spoken = append(spoken, ev)
		}
	}
	require.NotEmpty(t, spoken)
	for i := 1; i < len(spoken); i++ {
		assert.NotEqual(t, spoken[i-1].Region, spoken[i].Region, "announcement %d reused a region", i)
	}
	assert.Equal(t, "2 results are available. Italy 1 of 2 is highlighted", spoken[len(spoken)-1].Text)
	assert.True(t, strings.HasPrefix(spoken[0].Region, "autocomplete__status--"))
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)
	source := testutil.NewDeferredSource()
	s := startSession(t, Config{Source: source})

	s.send(`{"type":"text","text":"a"}`)
	s.send(`{"type":"text","text":"b"}`)
	require.Eventually(t, func() bool { return len(source.Calls()) == 2 }, 2*time.Second, 5*time.Millisecond)

	source.Resolve("ab", suggest.Labels("abc"), nil)
	source.Resolve("a", suggest.Labels("axe"), nil)
	s.waitRender(func(ev OutEvent) bool { return len(ev.Options) == 1 })
	require.NoError(t, s.finish())

	for _, ev := range s.log.snapshot() {
		if ev.Type == "render" {
			assert.NotContains(t, labelsOf(ev), "axe")
		}
	}
	final, _ := s.log.last("render")
	assert.Equal(t, []string{"abc"}, labelsOf(final))
}

func TestRunDrainsInFlightLookups(t *testing.T) {
	defer goleak.VerifyNone(t)
	source := testutil.NewDeferredSource()
	s := startSession(t, Config{Source: source})

	s.send(`{"type":"text","text":"it"}`)
	require.Eventually(t, func() bool { return len(source.Calls()) == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.in.Close())

	select {
	case <-s.done:
		t.Fatalf("bridge returned with a lookup in flight")
	case <-time.After(20 * time.Millisecond):
	}
	source.Resolve("it", suggest.Labels("Italy"), nil)
	select {
	case err := <-s.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("bridge did not finish")
	}
	final, _ := s.log.last("render")
	assert.Equal(t, []string{"Italy"}, labelsOf(final))
}

func TestClickOnOptionConfirms(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := startSession(t, Config{Source: countries()})
	s.send(`{"type":"text","text":"ita"}`)
	s.waitRender(func(ev OutEvent) bool { return len(ev.Options) == 2 })
	s.send(`{"type":"hover","index":1}`)
	ev := s.waitRender(func(ev OutEvent) bool { return len(ev.Options) == 2 && ev.Options[1].Hovered })
	assert.Equal(t, -1, *ev.Highlight)
	s.send(`{"type":"click","index":1}`)
	require.NoError(t, s.finish())

	confirm, ok := s.log.last("confirm")
	require.True(t, ok)
	assert.Equal(t, "Mauritania", confirm.Query)
}

func TestFailingSourceReportsNoResults(t *testing.T) {
	defer goleak.VerifyNone(t)
	source := testutil.NewDeferredSource()
	s := startSession(t, Config{Source: source, Options: uistate.Options{ShowNoOptionsFound: true}})
	s.send(`{"type":"text","text":"ita"}`)
	require.Eventually(t, func() bool { return len(source.Calls()) == 1 }, 2*time.Second, 5*time.Millisecond)
	source.Resolve("ita", nil, io.ErrUnexpectedEOF)
	ev := s.waitRender(func(ev OutEvent) bool { return ev.NoOptions })
	assert.Empty(t, ev.Options)
	require.NoError(t, s.finish())

	status, ok := s.log.last("status")
	require.True(t, ok)
	assert.Equal(t, "", status.Text, "the last write clears the other region")
	var spoken string
	for _, ev := range s.log.snapshot() {
		if ev.Type == "status" && ev.Text != "" {
			spoken = ev.Text
		}
	}
	assert.Equal(t, "No search results", spoken)
}

func TestMalformedInputReportsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := startSession(t, Config{Source: countries()})
	s.send(`not json`)
	s.send(`{"type":"wave"}`)
	s.send(`{"type":"key","key":"F13"}`)
	s.send(`{"type":"click"}`)
	require.NoError(t, s.finish())

	var errs []string
	for _, ev := range s.log.snapshot() {
		if ev.Type == "error" {
			errs = append(errs, ev.Error)
		}
	}
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0], "decode event")
	assert.Contains(t, errs[1], `unknown event type "wave"`)
	assert.Contains(t, errs[2], `unknown key "F13"`)
	assert.Contains(t, errs[3], "requires an index")
}

func TestEnterOnClosedMenuSubmits(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := startSession(t, Config{Source: countries()})
	s.send(`{"type":"text","text":"zz"}`)
	s.waitRender(func(ev OutEvent) bool { return ev.Query == "zz" })
	s.send(`{"type":"key","key":"Enter"}`)
	require.NoError(t, s.finish())
	submit, ok := s.log.last("submit")
	require.True(t, ok)
	assert.Equal(t, "zz", submit.Query)
}

func TestContextCancelStopsRun(t *testing.T) {
	defer goleak.VerifyNone(t)
	source := testutil.NewDeferredSource()
	s := startSession(t, Config{Source: source})
	s.send(`{"type":"text","text":"it"}`)
	require.Eventually(t, func() bool { return len(source.Calls()) == 1 }, 2*time.Second, 5*time.Millisecond)

	s.cancel()
	select {
	case err := <-s.done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatalf("bridge ignored cancellation")
	}
	require.NoError(t, s.in.Close())
}

func TestStatusDebounce(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := startSession(t, Config{Source: countries(), StatusDelay: 30 * time.Millisecond})
	s.send(`{"type":"text","text":"i"}`)
	s.send(`{"type":"text","text":"t"}`)
	s.send(`{"type":"text","text":"a"}`)
	s.waitRender(func(ev OutEvent) bool { return ev.Query == "ita" && len(ev.Options) == 2 })
	require.NoError(t, s.finish())

	var spoken []string
	for _, ev := range s.log.snapshot() {
		if ev.Type == "status" && ev.Text != "" {
			spoken = append(spoken, ev.Text)
		}
	}
	require.NotEmpty(t, spoken)
	assert.Equal(t, "2 results are available.", spoken[len(spoken)-1])
}
