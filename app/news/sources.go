package news

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source configuration types

type Source struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Kind     string         `yaml:"kind"` // "html" or "rss"
	Settings SourceSettings `yaml:"settings"`
}

type SourceSettings struct {
	Enabled bool `yaml:"enabled"`
	Timeout int  `yaml:"timeout"` // seconds
}

type SourceCache struct {
	sourcesDir string
	cache      map[string]*Source
	mu         sync.RWMutex
}

func NewSourceCache(sourcesDir string) *SourceCache {
	return &SourceCache{
		sourcesDir: sourcesDir,
		cache:      make(map[string]*Source),
	}
}

func (sc *SourceCache) Run() error {
	if _, err := os.Stat(sc.sourcesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(sc.sourcesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		sourceName := fileName[:len(fileName)-4] // Remove .yml extension

		source, err := sc.LoadSource(sourceName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Source configuration loaded", "source", sourceName, "kind", source.Kind, "enabled", source.Settings.Enabled)
	}

	return nil
}

func (sc *SourceCache) LoadSource(sourceName string) (*Source, error) {
	configFile := filepath.Join(sc.sourcesDir, sourceName+".yml")

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	source.Name = sourceName
	if source.Kind == "" {
		source.Kind = "html"
	}
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 30 // seconds
	}

	if err := sc.validateSource(&source); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache[source.Name] = &source

	return &source, nil
}

func (sc *SourceCache) validateSource(source *Source) error {
	if source.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if source.Kind != "html" && source.Kind != "rss" {
		return fmt.Errorf("unknown source kind: %s", source.Kind)
	}
	if source.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

func (sc *SourceCache) GetSources() []*Source {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	sources := make([]*Source, 0, len(sc.cache))
	for _, source := range sc.cache {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })

	return sources
}

func (sc *SourceCache) GetEnabledSources() []*Source {
	sources := sc.GetSources()

	enabled := make([]*Source, 0, len(sources))
	for _, source := range sources {
		if source.Settings.Enabled {
			enabled = append(enabled, source)
		}
	}

	return enabled
}
