package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/calcform/internal/calculation"
	"github.com/rgehrsitz/calcform/internal/client"
	"github.com/rgehrsitz/calcform/internal/config"
	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/form"
	"github.com/rgehrsitz/calcform/internal/logging"
	"github.com/rgehrsitz/calcform/internal/output"
	"github.com/rgehrsitz/calcform/internal/tui"
	"github.com/rgehrsitz/calcform/internal/validation"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errNotReady is returned by submit when the form would keep the start
// button disabled
var errNotReady = errors.New("form is not ready: multiplier, divider and checked are required")

// options holds the persistent flags shared by every command
type options struct {
	configPath string
	baseURL    string
	logLevel   string
}

// load reads the config file and environment, then applies flag overrides
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// app is the wired form: one store, one runner talking to the backend
type app struct {
	store    *form.Store
	runner   *calculation.Runner
	logger   logging.Logger
	endpoint string
}

func newApp(cfg *config.Config, zl *zap.Logger, now time.Time) (*app, error) {
	logger := logging.NewZapLogger(zl)

	cl, err := client.New(cfg.BaseURL, cfg.Endpoint, client.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	catalog := domain.NewCatalog(now.Year())
	runner := calculation.NewRunner(cl, catalog)
	runner.SetLogger(logger)

	logger.Debugf("calculation endpoint %s, years %v", cl.Endpoint(), catalog.Years())
	return &app{
		store:    form.NewStore(catalog),
		runner:   runner,
		logger:   logger,
		endpoint: cl.Endpoint(),
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "calcform",
		Short:         "Monthly values calculation form",
		Long:          "Fill in a multiplier, a divider and monthly values for up to three years, then send them to the calculation backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (YAML)")
	pf.StringVar(&opts.baseURL, "base-url", "", "Backend base URL, overrides the config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(tuiCmd(opts))
	root.AddCommand(submitCmd(opts))
	root.AddCommand(configCmd(opts))
	root.AddCommand(versionCmd())
	return root
}

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func runTUI(ctx context.Context, opts *options) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	// The terminal belongs to the program; logs only go to a file
	zl, err := logging.NewForTUI(cfg.Logging, opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	a, err := newApp(cfg, zl, time.Now())
	if err != nil {
		return err
	}

	calculate := func(state domain.FormState) *domain.Message {
		return a.runner.Start(ctx, state)
	}
	model := tui.NewModel(a.store, calculate, a.logger)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func submitCmd(opts *options) *cobra.Command {
	var formPath, format string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a prepared form without the TUI",
		Long:  "Load a form from YAML, apply it with the same rules as interactive editing and print the calculation result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q", format)
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}

			zl, err := logging.New(cfg.Logging, opts.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			a, err := newApp(cfg, zl, time.Now())
			if err != nil {
				return err
			}

			input, err := config.NewInputParser(a.store.Catalog()).LoadFromFile(formPath)
			if err != nil {
				return err
			}
			input.Apply(a.store)

			state := a.store.State()
			if !validation.CanSubmit(state) {
				return errNotReady
			}

			msg, payload := a.runner.Run(cmd.Context(), state)
			result := output.NewResult(a.endpoint, state, payload, msg)

			// Plain text failures go to stderr only
			if result.Failed() && f.Name() == "text" {
				return errors.New(msg.Body)
			}
			data, err := f.Format(result)
			if err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			if result.Failed() {
				return errors.New(msg.Body)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formPath, "form", "f", "", "Path to form input file (YAML)")
	cmd.Flags().StringVarP(&format, "format", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func configCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "calcform %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
