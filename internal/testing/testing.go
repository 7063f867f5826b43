// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// MockProvider is a test double for lyrics.Provider
type MockProvider struct {
	name   string
	lyrics string
	err    error

	mu    sync.Mutex
	calls [][2]string
}

func NewMockProvider(name, lyrics string, err error) *MockProvider {
	return &MockProvider{name: name, lyrics: lyrics, err: err}
}

func (m *MockProvider) Name() string { return m.name }

func (m *MockProvider) Attempt(ctx context.Context, artist, title string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, [2]string{artist, title})
	m.mu.Unlock()
	return m.lyrics, m.err
}

// Calls returns the (artist, title) pairs seen so far.
func (m *MockProvider) Calls() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][2]string(nil), m.calls...)
}

// MockLyricsSource is a test double for the engine's lyrics source, keyed by "artist|title".
//
// It tracks call counts and the peak number of concurrent lookups.
type MockLyricsSource struct {
	Lyrics map[string]string
	Err    error
	Delay  time.Duration
	Panic  bool

	calls    atomic.Int64
	inflight atomic.Int64
	peak     atomic.Int64
}

func NewMockLyricsSource(lyrics map[string]string) *MockLyricsSource {
	if lyrics == nil {
		lyrics = map[string]string{}
	}
	return &MockLyricsSource{Lyrics: lyrics}
}

func (m *MockLyricsSource) GetLyrics(ctx context.Context, artist, title string) (string, error) {
	m.calls.Add(1)
	n := m.inflight.Add(1)
	defer m.inflight.Add(-1)

	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if m.Panic {
		panic("mock lyrics source panic")
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	return m.Lyrics[artist+"|"+title], nil
}

// Calls returns how many lookups were made.
func (m *MockLyricsSource) Calls() int { return int(m.calls.Load()) }

// Peak returns the largest number of lookups observed in flight at once.
func (m *MockLyricsSource) Peak() int { return int(m.peak.Load()) }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
