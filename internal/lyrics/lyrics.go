package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/cleanify/internal/shared"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 5.0
	defaultBurst     = 5
)

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

// Provider is a single lyrics source.
//
// Attempt returns an empty string when the provider has nothing for the track.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, artist, title string) (string, error)
}

// Service queries providers in order until one returns lyrics.
type Service struct {
	providers []Provider
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    *log.Logger
}

// Option configures a [Service].
type Option func(*Service)

// WithLimiter replaces the default request limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithTimeout sets the per-attempt timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for provider failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = shared.WithLogger(l, "component", "lyrics") }
}

// NewService creates a [Service] that tries providers in the given order.
func NewService(providers []Provider, opts ...Option) *Service {
	s := &Service{
		providers: providers,
		limiter:   rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		timeout:   defaultTimeout,
		logger:    shared.WithLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromConfig wires lyrics.ovh then Genius from cfg.
func NewServiceFromConfig(cfg *shared.Config, client *http.Client, logger *log.Logger) *Service {
	limit := cfg.Lyrics.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := cfg.Lyrics.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	providers := []Provider{
		NewLyricsOvh(cfg.Credentials.LyricsOvh.BaseURL, client),
		NewGenius(cfg.Credentials.Genius, client, logger),
	}

	return NewService(providers,
		WithLimiter(rate.NewLimiter(rate.Limit(limit), burst)),
		WithTimeout(cfg.Lyrics.Timeout()),
		WithLogger(logger),
	)
}

// Providers returns the provider names in query order.
func (s *Service) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// GetLyrics returns lyrics for the track, or an empty string when no provider has them.
func (s *Service) GetLyrics(ctx context.Context, artist, title string) (string, error) {
	artist = StripParenthetical(artist)
	title = StripParenthetical(title)

	for _, p := range s.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := s.attempt(ctx, p, artist, title)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}

			if errors.Is(err, shared.ErrProviderSkipped) {
				s.logger.Debug("provider skipped", "provider", p.Name(), "reason", err)
			} else {
				s.logger.Warn("provider failed", "provider", p.Name(), "artist", artist, "title", title, "error", err)
			}
			continue
		}

		if text != "" {
			s.logger.Debug("lyrics found", "provider", p.Name(), "artist", artist, "title", title)
			return text, nil
		}
	}

	s.logger.Info("no lyrics found", "artist", artist, "title", title)
	return "", nil
}

func (s *Service) attempt(ctx context.Context, p Provider, artist, title string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return p.Attempt(ctx, artist, title)
}

// StripParenthetical removes every parenthesized group, along with the whitespace before it, and trims the result.
func StripParenthetical(s string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(s, ""))
}
