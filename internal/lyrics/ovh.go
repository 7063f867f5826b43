package lyrics

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const defaultOvhBaseURL = "https://api.lyrics.ovh"

// LyricsOvh queries the lyrics.ovh API.
type LyricsOvh struct {
	baseURL    string
	httpClient *http.Client
}

// NewLyricsOvh creates a lyrics.ovh provider. Empty arguments fall back to the public endpoint and [http.DefaultClient].
func NewLyricsOvh(baseURL string, client *http.Client) *LyricsOvh {
	if baseURL == "" {
		baseURL = defaultOvhBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &LyricsOvh{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: client}
}

func (o *LyricsOvh) Name() string { return "lyrics.ovh" }

// Attempt fetches lyrics for the track. A non-2xx status is a miss, not an error.
func (o *LyricsOvh) Attempt(ctx context.Context, artist, title string) (string, error) {
	endpoint := o.baseURL + "/v1/" + url.PathEscape(artist) + "/" + url.PathEscape(title)

	var body struct {
		Lyrics string `json:"lyrics"`
	}

	if err := getJSON(ctx, o.httpClient, endpoint, &body); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return "", nil
		}
		return "", err
	}
	return body.Lyrics, nil
}
