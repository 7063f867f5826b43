package lyrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/cleanify/internal/shared"
	tu "github.com/desertthunder/cleanify/internal/testing"
)

func TestStripParenthetical(t *testing.T) {
	tc := []struct {
		in   string
		want string
	}{
		{"Cardi B (feat. Megan Thee Stallion)", "Cardi B"},
		{"Song (Remix) (Live)", "Song"},
		{"Intro (Skit) Outro", "Intro Outro"},
		{"  Plain Title  ", "Plain Title"},
		{"(Untitled)", ""},
		{"Unclosed (paren", "Unclosed (paren"},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			if got := StripParenthetical(tt.in); got != tt.want {
				t.Errorf("StripParenthetical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()
	unlimited := WithLimiter(rate.NewLimiter(rate.Inf, 1))

	t.Run("strips parentheticals before querying", func(t *testing.T) {
		p := tu.NewMockProvider("first", "lyrics", nil)
		svc := NewService([]Provider{p}, unlimited)

		got, err := svc.GetLyrics(ctx, "Cardi B (feat. Megan Thee Stallion)", "WAP (Clean)")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "lyrics" {
			t.Errorf("expected lyrics, got %q", got)
		}

		calls := p.Calls()
		if len(calls) != 1 || calls[0] != [2]string{"Cardi B", "WAP"} {
			t.Errorf("expected cleaned query, got %v", calls)
		}
	})

	t.Run("first non-empty result wins", func(t *testing.T) {
		first := tu.NewMockProvider("first", "from first", nil)
		second := tu.NewMockProvider("second", "from second", nil)
		svc := NewService([]Provider{first, second}, unlimited)

		got, _ := svc.GetLyrics(ctx, "a", "b")
		if got != "from first" {
			t.Errorf("expected first provider result, got %q", got)
		}
		if len(second.Calls()) != 0 {
			t.Error("expected second provider not to be called")
		}
	})

	t.Run("falls back on empty and failing providers", func(t *testing.T) {
		empty := tu.NewMockProvider("empty", "", nil)
		failing := tu.NewMockProvider("failing", "", errors.New("boom"))
		skipped := tu.NewMockProvider("skipped", "", shared.ErrProviderSkipped)
		last := tu.NewMockProvider("last", "found it", nil)
		svc := NewService([]Provider{empty, failing, skipped, last}, unlimited)

		got, err := svc.GetLyrics(ctx, "a", "b")
		if err != nil {
			t.Fatalf("expected provider errors to be swallowed, got %v", err)
		}
		if got != "found it" {
			t.Errorf("expected fallback result, got %q", got)
		}
	})

	t.Run("no provider has lyrics", func(t *testing.T) {
		svc := NewService([]Provider{tu.NewMockProvider("x", "", errors.New("down"))}, unlimited)
		got, err := svc.GetLyrics(ctx, "a", "b")
		if err != nil || got != "" {
			t.Errorf("expected empty result without error, got %q, %v", got, err)
		}
	})

	t.Run("cancelled context is returned", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		p := tu.NewMockProvider("p", "lyrics", nil)
		svc := NewService([]Provider{p}, unlimited)
		if _, err := svc.GetLyrics(cctx, "a", "b"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(p.Calls()) != 0 {
			t.Error("expected no provider calls after cancellation")
		}
	})

	t.Run("Providers", func(t *testing.T) {
		svc := NewServiceFromConfig(shared.DefaultConfig(), nil, nil)
		names := svc.Providers()
		if len(names) != 2 || names[0] != "lyrics.ovh" || names[1] != "genius" {
			t.Errorf("expected [lyrics.ovh genius], got %v", names)
		}
	})

	t.Run("attempt timeout", func(t *testing.T) {
		slow := &slowProvider{}
		svc := NewService([]Provider{slow}, unlimited, WithTimeout(10*time.Millisecond))

		got, err := svc.GetLyrics(ctx, "a", "b")
		if err != nil || got != "" {
			t.Errorf("expected timed out attempt to be a miss, got %q, %v", got, err)
		}
	})
}

type slowProvider struct{}

func (slowProvider) Name() string { return "slow" }

func (slowProvider) Attempt(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestLyricsOvh(t *testing.T) {
	ctx := context.Background()

	t.Run("NewLyricsOvh", func(t *testing.T) {
		if o := NewLyricsOvh("", nil); o.baseURL != defaultOvhBaseURL {
			t.Errorf("expected default base URL, got %s", o.baseURL)
		}
		if o := NewLyricsOvh("http://localhost:9000/", nil); o.baseURL != "http://localhost:9000" {
			t.Errorf("expected trailing slash trimmed, got %s", o.baseURL)
		}
	})

	t.Run("fetches lyrics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/AC/DC/Back In Black" && r.URL.EscapedPath() != "/v1/AC%2FDC/Back%20In%20Black" {
				t.Errorf("unexpected path %s", r.URL.EscapedPath())
			}
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"lyrics": "Back in black\nI hit the sack"}`)
		}))
		defer server.Close()

		o := NewLyricsOvh(server.URL, server.Client())
		got, err := o.Attempt(ctx, "AC/DC", "Back In Black")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(got, "Back in black") {
			t.Errorf("unexpected lyrics %q", got)
		}
	})

	t.Run("not found is a miss", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error": "No lyrics found"}`)
		}))
		defer server.Close()

		got, err := NewLyricsOvh(server.URL, server.Client()).Attempt(ctx, "a", "b")
		if err != nil || got != "" {
			t.Errorf("expected empty miss, got %q, %v", got, err)
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `not json`)
		}))
		defer server.Close()

		_, err := NewLyricsOvh(server.URL, server.Client()).Attempt(ctx, "a", "b")
		if !errors.Is(err, shared.ErrProviderResponse) {
			t.Errorf("expected ErrProviderResponse, got %v", err)
		}
	})

	t.Run("body read failure is an error", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Header: make(http.Header), Body: &tu.FCloser{}}
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
		_, err := NewLyricsOvh("http://lyrics.invalid", client).Attempt(ctx, "a", "b")
		if !errors.Is(err, shared.ErrProviderResponse) {
			t.Errorf("expected ErrProviderResponse, got %v", err)
		}
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		_, err := NewLyricsOvh("http://lyrics.invalid", client).Attempt(ctx, "a", "b")
		if !errors.Is(err, shared.ErrProviderRequest) {
			t.Errorf("expected ErrProviderRequest, got %v", err)
		}
	})
}

func TestGenius(t *testing.T) {
	ctx := context.Background()

	searchServer := func(t *testing.T, hits string) (*httptest.Server, *atomic.Int64) {
		var calls atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.URL.Path != "/search" {
				t.Errorf("expected /search, got %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("expected bearer token, got %q", got)
			}
			if q := r.URL.Query().Get("q"); q != "Adele Hello" {
				t.Errorf("expected query 'Adele Hello', got %q", q)
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"response": {"hits": `+hits+`}}`)
		}))
		t.Cleanup(server.Close)
		return server, &calls
	}

	t.Run("skipped without token", func(t *testing.T) {
		g := NewGenius(shared.GeniusConfig{}, nil, nil)
		_, err := g.Attempt(ctx, "a", "b")
		if !errors.Is(err, shared.ErrProviderSkipped) {
			t.Errorf("expected ErrProviderSkipped, got %v", err)
		}
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("search returns first hit", func(t *testing.T) {
		server, calls := searchServer(t, `[{"result": {"id": 42, "title": "Hello"}}, {"result": {"id": 7}}]`)
		g := NewGenius(shared.GeniusConfig{AccessToken: "secret", BaseURL: server.URL}, server.Client(), nil)

		id, err := g.Search(ctx, "Adele", "Hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != 42 {
			t.Errorf("expected id 42, got %d", id)
		}
		if calls.Load() != 1 {
			t.Errorf("expected one request, got %d", calls.Load())
		}
	})

	t.Run("default body fetcher yields nothing", func(t *testing.T) {
		server, _ := searchServer(t, `[{"result": {"id": 42}}]`)
		g := NewGenius(shared.GeniusConfig{AccessToken: "secret", BaseURL: server.URL}, server.Client(), nil)

		got, err := g.Attempt(ctx, "Adele", "Hello")
		if err != nil || got != "" {
			t.Errorf("expected empty body, got %q, %v", got, err)
		}
	})

	t.Run("pluggable body fetcher", func(t *testing.T) {
		server, _ := searchServer(t, `[{"result": {"id": 42}}]`)
		var seen int
		g := NewGenius(shared.GeniusConfig{AccessToken: "secret", BaseURL: server.URL}, server.Client(), nil).
			WithBodyFetcher(BodyFetcherFunc(func(_ context.Context, id int) (string, error) {
				seen = id
				return "Hello, it's me", nil
			}))

		got, err := g.Attempt(ctx, "Adele", "Hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "Hello, it's me" || seen != 42 {
			t.Errorf("expected fetched body for 42, got %q for %d", got, seen)
		}
	})

	t.Run("no hits", func(t *testing.T) {
		server, _ := searchServer(t, `[]`)
		g := NewGenius(shared.GeniusConfig{AccessToken: "secret", BaseURL: server.URL}, server.Client(), nil).
			WithBodyFetcher(BodyFetcherFunc(func(context.Context, int) (string, error) {
				t.Error("fetcher should not be called without hits")
				return "", nil
			}))

		got, err := g.Attempt(ctx, "Adele", "Hello")
		if err != nil || got != "" {
			t.Errorf("expected empty miss, got %q, %v", got, err)
		}
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		g := NewGenius(shared.GeniusConfig{AccessToken: "secret", BaseURL: server.URL}, server.Client(), nil)
		_, err := g.Search(ctx, "a", "b")

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401 StatusError, got %v", err)
		}
	})
}
