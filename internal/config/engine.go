// Package config loads engine reference data (palette, sentinel driver names,
// timezone) from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPalette is the driver color palette used when the file names none.
var DefaultPalette = []string{
	"#E6194B", "#3CB44B", "#4363D8", "#F58231", "#911EB4",
	"#42D4F4", "#F032E6", "#BFEF45", "#469990", "#9A6324",
}

// DefaultSentinelDriverNames names the placeholder driver that wins stop deduplication.
var DefaultSentinelDriverNames = []string{"Unassigned"}

const (
	// DefaultTimezone decides which calendar day is "today".
	DefaultTimezone = "UTC"
	// DefaultRunHistoryLimit bounds route run listings.
	DefaultRunHistoryLimit = 20
	// DefaultChannelPrefix prefixes Redis keys and channels.
	DefaultChannelPrefix = "routes"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Engine is the routing engine configuration.
type Engine struct {
	Palette             []string `yaml:"palette"`
	SentinelDriverNames []string `yaml:"sentinel_driver_names"`
	Timezone            string   `yaml:"timezone"`
	RunHistoryLimit     int      `yaml:"run_history_limit"`
	ChannelPrefix       string   `yaml:"channel_prefix"`

	location *time.Location
}

// DefaultEngine returns the configuration used without a file.
func DefaultEngine() *Engine {
	e := &Engine{}
	e.applyDefaults()
	e.location = time.UTC
	return e
}

// LoadEngine reads path. An empty path yields DefaultEngine.
func LoadEngine(path string) (*Engine, error) {
	if path == "" {
		return DefaultEngine(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseEngine(data)
}

// ParseEngine unmarshals YAML bytes into a validated Engine.
func ParseEngine(data []byte) (*Engine, error) {
	var e Engine
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	e.applyDefaults()
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Location returns the parsed timezone.
func (e *Engine) Location() *time.Location {
	if e.location == nil {
		return time.UTC
	}
	return e.location
}

// Now returns the current time in the engine timezone.
func (e *Engine) Now() time.Time {
	return time.Now().In(e.Location())
}

func (e *Engine) applyDefaults() {
	if len(e.Palette) == 0 {
		e.Palette = slices.Clone(DefaultPalette)
	}
	if len(e.SentinelDriverNames) == 0 {
		e.SentinelDriverNames = slices.Clone(DefaultSentinelDriverNames)
	}
	if e.Timezone == "" {
		e.Timezone = DefaultTimezone
	}
	if e.RunHistoryLimit == 0 {
		e.RunHistoryLimit = DefaultRunHistoryLimit
	}
	if e.ChannelPrefix == "" {
		e.ChannelPrefix = DefaultChannelPrefix
	}
}

func (e *Engine) validate() error {
	var problems []string
	for i, c := range e.Palette {
		if !colorPattern.MatchString(c) {
			problems = append(problems, fmt.Sprintf("palette[%d] %q is not a #RRGGBB color", i, c))
		}
	}
	for i, name := range e.SentinelDriverNames {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, fmt.Sprintf("sentinel_driver_names[%d] is empty", i))
		}
	}
	if e.RunHistoryLimit < 0 {
		problems = append(problems, "run_history_limit must not be negative")
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("timezone %q: %v", e.Timezone, err))
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(problems, "; "))
	}
	e.location = loc
	return nil
}
