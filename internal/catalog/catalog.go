// Package catalog loads the list of playable games from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vytor/mathsprint/internal/games"
	"github.com/vytor/mathsprint/internal/logger"
)

//go:embed default.yaml
var defaultCatalog []byte

// Entry is one game as written in the catalog file.
type Entry struct {
	ID                string     `yaml:"id"`
	Title             string     `yaml:"title"`
	Subtitle          string     `yaml:"subtitle,omitempty"`
	Kind              games.Kind `yaml:"kind"`
	InitialDifficulty int        `yaml:"initial_difficulty,omitempty"`
	Scoring           string     `yaml:"scoring,omitempty"`
}

var scoringNames = map[string]bool{"": true, "default": true, "difficulty": true}

// File mirrors the catalog document.
type File struct {
	Version string  `yaml:"version"`
	Games   []Entry `yaml:"games"`
}

// Catalog is the validated, generator-bound set of games.
type Catalog struct {
	defs []games.Definition
	byID map[string]int
}

// Parse decodes a catalog document without validating it.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse catalog: %w", err)
	}
	return f, nil
}

// Validate reports every problem in f.
func (f File) Validate() error {
	var errs []error
	if len(f.Games) == 0 {
		errs = append(errs, errors.New("catalog lists no games"))
	}
	seen := make(map[string]bool, len(f.Games))
	for i, e := range f.Games {
		switch {
		case e.ID == "":
			errs = append(errs, fmt.Errorf("games[%d]: id is required", i))
		case seen[e.ID]:
			errs = append(errs, fmt.Errorf("games[%d]: duplicate id %q", i, e.ID))
		}
		seen[e.ID] = true
		if e.Title == "" {
			errs = append(errs, fmt.Errorf("games[%d]: title is required", i))
		}
		if !games.KnownKind(e.Kind) {
			errs = append(errs, fmt.Errorf("games[%d]: unknown kind %q", i, e.Kind))
		}
		if e.InitialDifficulty < 0 {
			errs = append(errs, fmt.Errorf("games[%d]: initial_difficulty must be at least 1", i))
		}
		if !scoringNames[e.Scoring] {
			errs = append(errs, fmt.Errorf("games[%d]: unknown scoring %q", i, e.Scoring))
		}
	}
	return errors.Join(errs...)
}

// Default returns the built-in catalog.
func Default(log *logger.Logger) (*Catalog, error) {
	return FromBytes(defaultCatalog, log)
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string, log *logger.Logger) (*Catalog, error) {
	if path == "" {
		return Default(log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return FromBytes(data, log)
}

// FromBytes parses, validates and binds a catalog document.
func FromBytes(data []byte, log *logger.Logger) (*Catalog, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(f, log)
}

// Build validates f and creates a generator for each entry.
func Build(f File, log *logger.Logger) (*Catalog, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	c := &Catalog{byID: make(map[string]int, len(f.Games))}
	for _, e := range f.Games {
		gen, err := games.NewGenerator(e.Kind, log)
		if err != nil {
			return nil, err
		}
		level := e.InitialDifficulty
		if level == 0 {
			level = 1
		}
		c.byID[e.ID] = len(c.defs)
		c.defs = append(c.defs, games.Definition{
			ID:                e.ID,
			Title:             e.Title,
			Subtitle:          e.Subtitle,
			InitialDifficulty: level,
			Kind:              e.Kind,
			Scoring:           e.Scoring,
			Generator:         gen,
		})
	}
	return c, nil
}

// Get looks up a game by id.
func (c *Catalog) Get(id string) (games.Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return games.Definition{}, false
	}
	return c.defs[i], true
}

// List returns the games in catalog order.
func (c *Catalog) List() []games.Definition {
	out := make([]games.Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// IDs returns the sorted game ids.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
