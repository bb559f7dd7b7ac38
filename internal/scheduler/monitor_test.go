package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimebot/internal/domain"
	"github.com/hamed0406/uptimebot/internal/notify"
	"github.com/hamed0406/uptimebot/internal/probe"
	"github.com/hamed0406/uptimebot/internal/repo/memory"
)

// --- fakes ---

// scriptedFetcher returns the next queued response per URL; the last one repeats.
type scriptedFetcher struct {
	mu      sync.Mutex
	script  map[string][]probe.Response
	calls   []string
	panicOn string
}

func (f *scriptedFetcher) Fetch(_ context.Context, url string) probe.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if url == f.panicOn {
		panic("fetcher exploded")
	}
	q := f.script[url]
	if len(q) == 0 {
		return probe.Response{Err: errors.New("no script")}
	}
	r := q[0]
	if len(q) > 1 {
		f.script[url] = q[1:]
	}
	return r
}

func (f *scriptedFetcher) push(url string, r probe.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script[url] = []probe.Response{r}
}

type sent struct {
	dest, text string
}

type memNotifier struct {
	mu   sync.Mutex
	msgs []sent
	err  error
}

func (m *memNotifier) Send(_ context.Context, dest, text string, _ notify.Format) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, sent{dest, text})
	return m.err
}

func (m *memNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

func (m *memNotifier) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.msgs) == 0 {
		return ""
	}
	return m.msgs[len(m.msgs)-1].text
}

// --- helpers ---

const primaryURL = "https://example.test/"

var primary = domain.Target{Name: "Primary", URL: primaryURL}

func healthy(n int) probe.Response {
	return probe.Response{StatusCode: 200, Body: "Betorspin" + strings.Repeat("x", n-len("Betorspin"))}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestMonitor(targets []domain.Target, f probe.Fetcher, n notify.Notifier) (*Monitor, *memory.Store, *clock) {
	store := memory.New(targets)
	c := &clock{t: time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)}
	m := NewMonitor(zap.NewNop(), targets, store, f, probe.NewClassifier(5000, "betorspin"), n, "chat-1", time.Minute, nil)
	m.Now = c.now
	return m, store, c
}

// --- tests ---

func TestMonitor_ExampleScenarios(t *testing.T) {
	f := &scriptedFetcher{script: map[string][]probe.Response{}}
	n := &memNotifier{}
	m, store, c := newTestMonitor([]domain.Target{primary}, f, n)
	ctx := context.Background()

	// 1) first cycle UP
	f.push(primaryURL, healthy(6000))
	t0 := c.t
	m.RunOnce(ctx)
	st, _ := store.Get(primaryURL)
	assert.Equal(t, domain.StatusUp, st.Status)
	assert.True(t, st.LastCheckedAt.Equal(t0))
	require.Equal(t, 1, n.count())
	assert.Contains(t, n.last(), "first check")
	assert.Contains(t, n.last(), "UP")
	assert.Equal(t, "chat-1", n.msgs[0].dest)

	// 2) 503 -> became unreachable
	c.t = c.t.Add(time.Minute)
	f.push(primaryURL, probe.Response{StatusCode: 503})
	m.RunOnce(ctx)
	st, _ = store.Get(primaryURL)
	assert.Equal(t, domain.StatusDown, st.Status)
	require.Equal(t, 2, n.count())
	assert.Contains(t, n.last(), "became unreachable")

	// 3) 200 but short body -> still DOWN, no notification, timestamp advances
	c.t = c.t.Add(time.Minute)
	t2 := c.t
	f.push(primaryURL, healthy(4000))
	m.RunOnce(ctx)
	st, _ = store.Get(primaryURL)
	assert.Equal(t, domain.StatusDown, st.Status)
	assert.True(t, st.LastCheckedAt.Equal(t2))
	assert.Equal(t, 2, n.count())

	// 4) healthy again -> reachable again
	c.t = c.t.Add(time.Minute)
	f.push(primaryURL, healthy(6000))
	m.RunOnce(ctx)
	st, _ = store.Get(primaryURL)
	assert.Equal(t, domain.StatusUp, st.Status)
	require.Equal(t, 3, n.count())
	assert.Contains(t, n.last(), "reachable again")
}

func TestMonitor_IdenticalCyclesNotifyOnce(t *testing.T) {
	for _, resp := range []probe.Response{healthy(6000), {StatusCode: 500}} {
		f := &scriptedFetcher{script: map[string][]probe.Response{primaryURL: {resp}}}
		n := &memNotifier{}
		m, _, _ := newTestMonitor([]domain.Target{primary}, f, n)

		m.RunOnce(context.Background())
		m.RunOnce(context.Background())
		assert.Equal(t, 1, n.count())
		assert.Contains(t, n.last(), "first check")
	}
}

func TestMonitor_FirstCheckDownNotifies(t *testing.T) {
	f := &scriptedFetcher{script: map[string][]probe.Response{
		primaryURL: {{Err: errors.New("dial tcp: connection refused")}},
	}}
	n := &memNotifier{}
	m, store, _ := newTestMonitor([]domain.Target{primary}, f, n)

	m.RunOnce(context.Background())
	st, _ := store.Get(primaryURL)
	assert.Equal(t, domain.StatusDown, st.Status)
	require.Equal(t, 1, n.count())
	assert.Contains(t, n.last(), "UNREACHABLE! (first check)")
}

func TestMonitor_FailuresDoNotAbortCycle(t *testing.T) {
	targets := []domain.Target{
		{Name: "Broken", URL: "https://broken.test/"},
		{Name: "Panics", URL: "https://panics.test/"},
		primary,
	}
	f := &scriptedFetcher{
		script: map[string][]probe.Response{
			"https://broken.test/": {{Err: errors.New("timeout")}},
			primaryURL:             {healthy(6000)},
		},
		panicOn: "https://panics.test/",
	}
	n := &memNotifier{err: errors.New("telegram down")}
	m, store, _ := newTestMonitor(targets, f, n)

	m.RunOnce(context.Background())

	assert.Equal(t, []string{"https://broken.test/", "https://panics.test/", primaryURL}, f.calls)
	st, _ := store.Get(primaryURL)
	assert.Equal(t, domain.StatusUp, st.Status, "state is updated even when delivery fails")
	broken, _ := store.Get("https://broken.test/")
	assert.Equal(t, domain.StatusDown, broken.Status)
	assert.Equal(t, 2, n.count())
}

func TestMonitor_DeliveryFailureIsNotRetried(t *testing.T) {
	f := &scriptedFetcher{script: map[string][]probe.Response{primaryURL: {healthy(6000)}}}
	n := &memNotifier{err: errors.New("boom")}
	m, _, _ := newTestMonitor([]domain.Target{primary}, f, n)

	m.RunOnce(context.Background())
	m.RunOnce(context.Background())
	assert.Equal(t, 1, n.count())
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	f := &scriptedFetcher{script: map[string][]probe.Response{primaryURL: {healthy(6000)}}}
	n := &memNotifier{}
	m, _, _ := newTestMonitor([]domain.Target{primary}, f, n)
	m.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.calls) >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, n.count())
}

func TestNewMonitor_Defaults(t *testing.T) {
	m := NewMonitor(zap.NewNop(), nil, memory.New(nil), &scriptedFetcher{}, probe.Classifier{}, nil, "", 0, nil)
	assert.Equal(t, 60*time.Second, m.Interval)
	assert.IsType(t, notify.Nop{}, m.Notifier)
}
