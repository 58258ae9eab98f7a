package pagination

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pagination/collection"
	"github.com/arloliu/pagination/types"
)

type record struct {
	ID    string
	Score int
}

func recordKey(r record) string { return r.ID }

// records returns n records with IDs r0..r(n-1).
func records(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{ID: fmt.Sprintf("r%d", i), Score: i}
	}

	return out
}

func newFull(t *testing.T, n int) *collection.Collection[record] {
	t.Helper()

	full, err := collection.New(recordKey, records(n))
	require.NoError(t, err)

	return full
}

func newPager(t *testing.T, n int, cfg Config, opts ...Option) *Pager[record] {
	t.Helper()

	p, err := New(newFull(t, n), append([]Option{WithConfig(cfg)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	return p
}

func ids(items []record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}

	return out
}

// requireConsistent checks that the window is exactly the committed page of
// the full collection and that the record count matches.
func requireConsistent(t *testing.T, p *Pager[record]) {
	t.Helper()

	s := p.State()
	require.Equal(t, p.Full().Len(), s.TotalRecords, "total records")

	start := (s.CurrentPage - s.FirstPage) * s.PageSize
	require.Equal(t, ids(p.Full().Slice(start, start+s.PageSize)), ids(p.Items()), "window is the current page")
	require.LessOrEqual(t, p.Len(), s.PageSize)
}

type loggedEntry struct {
	level string
	msg   string
}

// recordingLogger captures log messages for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []loggedEntry
}

var _ types.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, loggedEntry{level: level, msg: msg})
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any) { l.add("fatal", msg) }

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}

	return out
}

// countingMetrics records metric calls for assertions.
type countingMetrics struct {
	navigations        map[string]int
	validationFailures map[string]int
	syncs              map[string]int
	evictions          int
	refills            int
	windowSize         int
	totalRecords       int
}

var _ types.MetricsCollector = (*countingMetrics)(nil)

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		navigations:        map[string]int{},
		validationFailures: map[string]int{},
		syncs:              map[string]int{},
	}
}

func (m *countingMetrics) RecordNavigation(target string, success bool) {
	m.navigations[fmt.Sprintf("%s/%t", target, success)]++
}

func (m *countingMetrics) RecordValidationFailure(kind string) { m.validationFailures[kind]++ }
func (m *countingMetrics) RecordSync(kind, source string)      { m.syncs[kind+"/"+source]++ }
func (m *countingMetrics) RecordEviction()                     { m.evictions++ }
func (m *countingMetrics) RecordRefill()                       { m.refills++ }
func (m *countingMetrics) RecordWindowSize(n int)              { m.windowSize = n }
func (m *countingMetrics) RecordTotalRecords(n int)            { m.totalRecords = n }
