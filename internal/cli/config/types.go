// Package config provides configuration management for the articlecheck CLI.
package config

import (
	"github.com/leapstack-labs/articlecheck/internal/loader"
	"github.com/leapstack-labs/articlecheck/internal/state"
	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

// Config holds all CLI configuration options.
type Config struct {
	Catalog      string           `koanf:"catalog"`
	StatePath    string           `koanf:"state_path"`
	Verbose      bool             `koanf:"verbose"`
	OutputFormat string           `koanf:"output"`
	Concurrency  int              `koanf:"concurrency"`
	Fit          FitConfig        `koanf:"fit"`
	Manuscript   ManuscriptConfig `koanf:"manuscript"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// FitConfig controls the guideline fit rules.
type FitConfig struct {
	Disabled []string                 `koanf:"disabled"`
	Severity map[string]core.Severity `koanf:"severity"`
}

// ManuscriptConfig holds per-project manuscript defaults.
type ManuscriptConfig struct {
	SectionsFile string `koanf:"sections_file"`
	Checklist    string `koanf:"checklist"`
	Journal      string `koanf:"journal"`
	ArticleType  string `koanf:"article_type"`
}

// Default configuration values.
const (
	DefaultCatalog     = guideline.DefaultCatalogFile
	DefaultStateFile   = state.DefaultPath
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultConcurrency = 4
	DefaultSections    = loader.DefaultSectionsFile
	DefaultChecklist   = "checklist.yaml"
)

// ConfigFileNames lists the file names searched for project configuration.
var ConfigFileNames = []string{"articlecheck.yaml", "articlecheck.yml"}
