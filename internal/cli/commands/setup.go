package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/config"
	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/internal/loader"
	"github.com/leapstack-labs/articlecheck/internal/state"
	"github.com/leapstack-labs/articlecheck/pkg/analysis"
	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

var errJournalRequired = errors.New("no journal given\nHint: pass --journal or set journal in the manuscript frontmatter")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the loaded config, the
// context logger and a renderer for the configured output mode.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(commandContext(cmd))

	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// WithFormat replaces the renderer when a command-local format flag is set.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) error {
	if format == "" {
		return nil
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return err
	}
	c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	return nil
}

// LoadCatalog reads the configured guideline catalog.
func (c *CommandContext) LoadCatalog() (*guideline.Catalog, error) {
	if err := c.Cfg.ValidateCatalog(); err != nil {
		return nil, err
	}
	cat, err := guideline.Load(c.Cfg.Catalog)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded guideline catalog", "path", c.Cfg.Catalog, "records", cat.Len())
	return cat, nil
}

// OpenStore opens the run history database.
func (c *CommandContext) OpenStore(ctx context.Context) (*state.Store, error) {
	store, err := state.Open(ctx, c.Cfg.StatePath, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	if version, err := store.MigrationVersion(ctx); err == nil {
		c.Logger.Debug("run history opened", "path", c.Cfg.StatePath, "schema_version", version)
	}
	return store, nil
}

// LoadManuscript reads a manuscript in any supported format.
func (c *CommandContext) LoadManuscript(ctx context.Context, path string) (core.Document, error) {
	doc, err := loader.Load(ctx, path)
	if err != nil {
		return core.Document{}, err
	}
	c.Logger.Debug("loaded manuscript", "name", doc.Name, "paragraphs", len(doc.Paragraphs))
	return doc, nil
}

// AnalysisOptions returns the analysis options from the config.
func (c *CommandContext) AnalysisOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithConcurrency(c.Cfg.Concurrency),
		analysis.WithFitConfig(c.Cfg.FitRules()),
	}
}

// FindGuideline looks up one catalog record, adding a hint with similarly
// named journals when nothing matches.
func FindGuideline(cat *guideline.Catalog, journal, articleType string) (core.Guideline, error) {
	g, err := cat.Find(journal, articleType)
	if err == nil {
		return g, nil
	}

	if similar := cat.Search(journal); len(similar) > 0 {
		names := make([]string, 0, len(similar))
		for _, s := range similar {
			names = append(names, s.String())
		}
		return core.Guideline{}, fmt.Errorf("%w\nHint: did you mean %s?", err, strings.Join(names, ", "))
	}
	return core.Guideline{}, err
}

// getConfig returns the current configuration, loading defaults when no
// command has loaded one yet.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	if cfg, err := config.LoadConfig("", nil); err == nil {
		return cfg
	}
	return &config.Config{
		Catalog:      config.DefaultCatalog,
		StatePath:    config.DefaultStateFile,
		OutputFormat: config.DefaultOutput,
		Concurrency:  config.DefaultConcurrency,
		Manuscript: config.ManuscriptConfig{
			SectionsFile: config.DefaultSections,
			Checklist:    config.DefaultChecklist,
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// completeManuscript completes manuscript arguments to files of a supported format.
func completeManuscript(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	exts := loader.Extensions()
	for i, ext := range exts {
		exts[i] = strings.TrimPrefix(ext, ".")
	}
	return exts, cobra.ShellCompDirectiveFilterFileExt
}
