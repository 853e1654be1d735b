package teams

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/field-clock/internal/storage"
)

const (
	DefaultNameA  = "Home"
	DefaultNameB  = "Away"
	DefaultColorA = "#4caf50"
	DefaultColorB = "#8bc34a"
)

var ErrInvalidColor = errors.New("color must be #rrggbb")

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Team is one side of the match.
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Registry holds both teams. Unset fields fall back to the defaults when read.
type Registry struct {
	a, b  Team
	store storage.KeyValueStore
}

func New(store storage.KeyValueStore) *Registry {
	return &Registry{store: store}
}

// A returns the home side with defaults applied.
func (r *Registry) A() Team {
	return withDefaults(r.a, DefaultNameA, DefaultColorA)
}

// B returns the away side with defaults applied.
func (r *Registry) B() Team {
	return withDefaults(r.b, DefaultNameB, DefaultColorB)
}

// Set replaces both teams. Names are trimmed and empty colors mean the default.
func (r *Registry) Set(a, b Team) error {
	for _, t := range []Team{a, b} {
		if t.Color != "" && !hexColor.MatchString(t.Color) {
			return fmt.Errorf("%q: %w", t.Color, ErrInvalidColor)
		}
	}
	r.a = Team{Name: strings.TrimSpace(a.Name), Color: strings.ToLower(a.Color)}
	r.b = Team{Name: strings.TrimSpace(b.Name), Color: strings.ToLower(b.Color)}

	r.store.Set(storage.KeyTeamAName, r.a.Name)
	r.store.Set(storage.KeyTeamBName, r.b.Name)
	r.store.Set(storage.KeyTeamAColor, r.A().Color)
	r.store.Set(storage.KeyTeamBColor, r.B().Color)
	log.Info("Teams updated", "team_a", r.A().Name, "team_b", r.B().Name)
	return nil
}

// ColorOf returns the color of the team called name.
func (r *Registry) ColorOf(name string) (string, bool) {
	for _, t := range []Team{r.A(), r.B()} {
		if t.Name == name {
			return t.Color, true
		}
	}
	return "", false
}

// Load restores names and colors. It reports whether both names were present.
func (r *Registry) Load() bool {
	nameA, okA := r.store.Get(storage.KeyTeamAName)
	nameB, okB := r.store.Get(storage.KeyTeamBName)
	r.a.Name, r.b.Name = nameA, nameB
	if c, ok := r.store.Get(storage.KeyTeamAColor); ok && hexColor.MatchString(c) {
		r.a.Color = c
	}
	if c, ok := r.store.Get(storage.KeyTeamBColor); ok && hexColor.MatchString(c) {
		r.b.Color = c
	}
	return okA && okB && nameA != "" && nameB != ""
}

// RGBA renders a #rrggbb color as a css rgba() value.
func RGBA(hex string, alpha float64) (string, error) {
	if !hexColor.MatchString(hex) {
		return "", fmt.Errorf("%q: %w", hex, ErrInvalidColor)
	}
	var rgb [3]uint64
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return "", fmt.Errorf("%q: %w", hex, ErrInvalidColor)
		}
		rgb[i] = v
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", rgb[0], rgb[1], rgb[2], alpha), nil
}

func withDefaults(t Team, name, color string) Team {
	if t.Name == "" {
		t.Name = name
	}
	if t.Color == "" {
		t.Color = color
	}
	return t
}
