package models

import "strings"

const (
	UnknownTrack     = "Unknown Track"
	UnknownArtist    = "Unknown Artist"
	PlaceholderImage = "/placeholder-track.jpg"

	// ManualOverride stands in for the name and artist of overridden tracks.
	ManualOverride = "Manual Override"
)

// Track identifies a song handed to the filter engine.
type Track struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Duration int    `json:"duration,omitempty"` // seconds
	Explicit bool   `json:"explicit,omitempty"`
}

// NewTrack creates a [Track] with defaults applied.
func NewTrack(id, name, artist string) Track {
	return Track{ID: id, Name: name, Artist: artist}.WithDefaults()
}

// WithDefaults returns a copy with blank name, artist and image replaced by placeholders.
func (t Track) WithDefaults() Track {
	t.ID = strings.TrimSpace(t.ID)
	if strings.TrimSpace(t.Name) == "" {
		t.Name = UnknownTrack
	}
	if strings.TrimSpace(t.Artist) == "" {
		t.Artist = UnknownArtist
	}
	if strings.TrimSpace(t.ImageURL) == "" {
		t.ImageURL = PlaceholderImage
	}
	return t
}

// Label formats the track as "Artist - Name".
func (t Track) Label() string {
	return t.Artist + " - " + t.Name
}
