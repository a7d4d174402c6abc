// Package commands provides CLI commands for folio.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/folio/internal/config"
	"github.com/diogo/folio/internal/contact"
	"github.com/diogo/folio/internal/navigation"
	"github.com/diogo/folio/internal/preview"
	"github.com/diogo/folio/internal/render"
	"github.com/diogo/folio/internal/tui"
)

var (
	// Global flags
	modelFlag   string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command, which opens the portfolio
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var viewFlag string

	cmd := &cobra.Command{
		Use:   "folio [view]",
		Short: "Terminal portfolio with a built-in AI assistant",
		Long: `folio is a terminal portfolio: browse the project library, read about
skills, send a message, and ask the AI assistant anything about the work.

Examples:
  folio                       Open on the last visited view
  folio library               Open on the project library
  folio ask "What is Nexus?"  Ask the assistant a single question
  folio projects --category AI
  folio config init`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "folio %s (built %s)\n", Version, BuildTime)
				return nil
			}

			token := viewFlag
			if len(args) > 0 {
				token = args[0]
			}
			return runTUI(cmd, deps, token)
		},
	}

	cmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (fast, flash, pro or an API model id)")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Debug logging to the configured log file")
	cmd.Flags().StringVar(&viewFlag, "view", "", "View to open (home, about, library, contact)")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewProjectsCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// runTUI opens the full-screen application
func runTUI(cmd *cobra.Command, deps *Dependencies, token string) error {
	a, err := loadApp(cmd.Context(), deps)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	render.SetTUITheme(a.cfg.TUITheme)
	tui.UpdateTheme()

	var location navigation.Location = navigation.NewMemoryLocation("")
	if path, err := config.GetLocationPath(); err == nil {
		location = navigation.FileLocation{Path: path}
	}
	if token != "" {
		if err := location.Write("#" + string(navigation.ParseView(token))); err != nil {
			a.logger.Warn("could not persist start view", zap.Error(err))
		}
	}

	opts := tui.Options{
		Registry:    a.registry,
		Assistant:   a.assistant,
		Location:    location,
		IdleTimeout: a.cfg.IdleTimeout(),
		Render:      render.OptionsFromConfig(a.cfg),
		Logger:      a.logger,
		ModelName:   a.assistant.Model().Name,
	}

	if fetcher, err := preview.NewFetcher(); err == nil {
		opts.Fetcher = fetcher
	} else {
		a.logger.Warn("live preview disabled", zap.Error(err))
	}
	if mailer, err := contact.NewEmailJS(a.cfg.Contact, a.logger); err == nil {
		opts.Mailer = mailer
	} else {
		a.logger.Warn("contact delivery disabled", zap.Error(err))
	}

	a.logger.Info("starting tui", zap.String("view", token))
	return deps.TUI.Run(opts)
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewDependencies()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}
