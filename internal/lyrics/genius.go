package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/desertthunder/cleanify/internal/shared"
)

const defaultGeniusBaseURL = "https://api.genius.com"

// BodyFetcher turns a Genius song id into lyrics text.
type BodyFetcher interface {
	FetchBody(ctx context.Context, songID int) (string, error)
}

// BodyFetcherFunc adapts a function to [BodyFetcher].
type BodyFetcherFunc func(ctx context.Context, songID int) (string, error)

func (f BodyFetcherFunc) FetchBody(ctx context.Context, songID int) (string, error) {
	return f(ctx, songID)
}

// noBody is the default fetcher. The Genius API exposes metadata only.
type noBody struct{}

func (noBody) FetchBody(context.Context, int) (string, error) { return "", nil }

// GeniusHit is a single search result.
type GeniusHit struct {
	Result struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		ArtistNames string `json:"artist_names"`
		URL         string `json:"url"`
		LyricsState string `json:"lyrics_state"`
	} `json:"result"`
}

type geniusSearchResponse struct {
	Response struct {
		Hits []GeniusHit `json:"hits"`
	} `json:"response"`
}

// Genius searches the Genius API for a song and delegates body retrieval to a [BodyFetcher].
type Genius struct {
	baseURL    string
	httpClient *http.Client
	fetcher    BodyFetcher
	hasToken   bool
}

// NewGenius creates a Genius provider. The access token is attached as a bearer credential through
// an [oauth2.StaticTokenSource] wrapped around base.
func NewGenius(cfg shared.GeniusConfig, base *http.Client, logger *log.Logger) *Genius {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeniusBaseURL
	}
	if base == nil {
		base = http.DefaultClient
	}

	g := &Genius{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: base,
		fetcher:    noBody{},
		hasToken:   cfg.AccessToken != "",
	}

	if !g.hasToken {
		shared.WithLogger(logger, "provider", g.Name()).
			Warn("Genius API token not found", "env", shared.GeniusTokenEnv)
		return g
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
	g.httpClient = oauth2.NewClient(ctx, ts)
	return g
}

// WithBodyFetcher sets the fetcher used after a successful search.
func (g *Genius) WithBodyFetcher(f BodyFetcher) *Genius {
	if f != nil {
		g.fetcher = f
	}
	return g
}

func (g *Genius) Name() string { return "genius" }

// Search returns the id of the first hit for "{artist} {title}", or 0 when there are none.
func (g *Genius) Search(ctx context.Context, artist, title string) (int, error) {
	if !g.hasToken {
		return 0, fmt.Errorf("%w: %w", shared.ErrProviderSkipped, shared.ErrMissingCredentials)
	}

	q := url.Values{"q": {strings.TrimSpace(artist + " " + title)}}
	var body geniusSearchResponse
	if err := getJSON(ctx, g.httpClient, g.baseURL+"/search?"+q.Encode(), &body); err != nil {
		return 0, err
	}

	if len(body.Response.Hits) == 0 {
		return 0, nil
	}
	return body.Response.Hits[0].Result.ID, nil
}

// Attempt searches for the track and fetches the body for the first hit.
func (g *Genius) Attempt(ctx context.Context, artist, title string) (string, error) {
	id, err := g.Search(ctx, artist, title)
	if err != nil || id == 0 {
		return "", err
	}
	return g.fetcher.FetchBody(ctx, id)
}
