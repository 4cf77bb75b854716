// Package cli provides the command-line interface for articlecheck.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/commands"
	"github.com/leapstack-labs/articlecheck/internal/cli/config"
	"github.com/leapstack-labs/articlecheck/internal/cli/output"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "articlecheck",
		Short: "articlecheck - manuscript structure and journal guideline checker",
		Long: `articlecheck splits a manuscript into sections, counts words per section
and checks it against a catalog of journal submission guidelines.

It reports which journals the manuscript already fits and, for every other
journal, the concrete changes required: missing sections, words over the
limit and an abstract that is too long.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = config.WithLogger(ctx, logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)

			mode, _ := output.ParseMode(cfg.OutputFormat)
			ctx = context.WithValue(ctx, rendererKey{}, output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode))
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			logger.Debug("configuration loaded",
				"catalog", cfg.Catalog,
				"state", cfg.StatePath,
				"output", cfg.OutputFormat,
				"concurrency", cfg.Concurrency)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./articlecheck.yaml, searched upward)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the journal guideline catalog (JSON)")
	rootCmd.PersistentFlags().String("state", "", "Path to the run history database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	rootCmd.PersistentFlags().Int("concurrency", 0, "Guidelines evaluated in parallel")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ValidModes(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("catalog", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewChangesCommand())
	rootCmd.AddCommand(commands.NewSectionsCommand())
	rootCmd.AddCommand(commands.NewJournalsCommand())
	rootCmd.AddCommand(commands.NewTemplateCommand())
	rootCmd.AddCommand(commands.NewProgressCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Catalog:      config.DefaultCatalog,
		StatePath:    config.DefaultStateFile,
		OutputFormat: config.DefaultOutput,
		Concurrency:  config.DefaultConcurrency,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	// Return default renderer if none in context
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for articlecheck.

To load completions:

Bash:
  $ source <(articlecheck completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ articlecheck completion bash > /etc/bash_completion.d/articlecheck
  # macOS:
  $ articlecheck completion bash > $(brew --prefix)/etc/bash_completion.d/articlecheck

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ articlecheck completion zsh > "${fpath[1]}/_articlecheck"

Fish:
  $ articlecheck completion fish | source

  # To load completions for each session, execute once:
  $ articlecheck completion fish > ~/.config/fish/completions/articlecheck.fish

PowerShell:
  PS> articlecheck completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
