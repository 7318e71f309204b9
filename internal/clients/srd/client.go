// Package srd looks up reference content from the D&D 5e SRD API
package srd

//go:generate mockgen -destination=mock/mock_client.go -package=srdmock github.com/KirkDiggler/rpg-sheet/internal/clients/srd Client

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// DefaultBaseURL is the public SRD API
const DefaultBaseURL = "https://www.dnd5eapi.co/api/2014/"

var (
	slugPattern  = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRepeat = regexp.MustCompile(`-+`)
)

// Slug turns a display name into an API key: "Magic Missile" -> "magic-missile"
func Slug(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return hyphenRepeat.ReplaceAllString(slug, "-")
}

// Client fetches SRD reference data
type Client interface {
	// GetSpell fetches a spell by key or display name
	// Returns errors.InvalidArgument for an empty key
	// Returns errors.Unavailable when the API call fails
	GetSpell(ctx context.Context, key string) (*Spell, error)
}

// Spell is the part of an SRD spell a character sheet records
type Spell struct {
	Key           string
	Name          string
	Level         int
	School        string
	CastingTime   string
	Range         string
	Duration      string
	Ritual        bool
	Concentration bool
}

// Requirements summarizes casting time, duration and casting flags
func (s *Spell) Requirements() string {
	var parts []string
	if s.CastingTime != "" {
		parts = append(parts, s.CastingTime)
	}
	if s.Duration != "" {
		parts = append(parts, s.Duration)
	}
	if s.Ritual {
		parts = append(parts, "Ritual")
	}
	if s.Concentration {
		parts = append(parts, "Concentration")
	}
	return strings.Join(parts, ", ")
}

// spellSource is the slice of the dnd5e-api client used here
type spellSource interface {
	GetSpell(key string) (*entities.Spell, error)
}

type client struct {
	source spellSource
}

// Config contains configuration options for the SRD client.
type Config struct {
	// BaseURL for the SRD API (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// New creates a cached SRD client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create SRD API client")
	}

	return &client{source: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)}, nil
}

func (c *client) GetSpell(ctx context.Context, key string) (*Spell, error) {
	apiKey := Slug(key)
	if apiKey == "" {
		return nil, errors.InvalidArgument("spell key cannot be empty")
	}

	slog.DebugContext(ctx, "fetching spell from SRD", "spell_key", apiKey)

	spell, err := c.source.GetSpell(apiKey)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get spell %s", apiKey).
			WithMeta("spell_key", apiKey)
	}
	if spell == nil {
		return nil, errors.NotFoundf("spell %s not found", apiKey)
	}

	return convertSpell(spell), nil
}

func convertSpell(spell *entities.Spell) *Spell {
	out := &Spell{
		Key:           spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
	}
	if spell.SpellSchool != nil {
		out.School = spell.SpellSchool.Name
	}
	return out
}
