// Package main provides the CLI entrypoint for sampler.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sampler/internal/config"
	"github.com/verte-zerg/sampler/internal/event"
	"github.com/verte-zerg/sampler/internal/sample"
	"github.com/verte-zerg/sampler/internal/session"
	"github.com/verte-zerg/sampler/internal/stats"
	"github.com/verte-zerg/sampler/internal/tui"
	"github.com/verte-zerg/sampler/internal/web"
)

const (
	defaultCount = 500
	defaultBins  = stats.DefaultBins
)

var (
	rootDBPath string
	rootCount  int
	rootBins   int

	serveDBPath string
	servePort   int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sampler",
		Short:         "Interactive normal-sample explorer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTUICmd,
	}

	rootCmd.Flags().StringVar(&rootDBPath, "db", config.DefaultDBPath(), "SQLite event log path")
	rootCmd.Flags().IntVar(&rootCount, "count", defaultCount, "default sample size")
	rootCmd.Flags().IntVar(&rootBins, "bins", defaultBins, "histogram bins")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &rootDBPath, fileCfg.App.DBPath)
	applyIntConfig(cmd, "count", &rootCount, fileCfg.App.SampleCount)
	applyIntConfig(cmd, "bins", &rootBins, fileCfg.App.Bins)

	if rootCount < sample.MinCount || rootCount > sample.MaxCount {
		return fmt.Errorf("--count must be between %d and %d", sample.MinCount, sample.MaxCount)
	}
	if rootBins < 1 {
		return fmt.Errorf("--bins must be >= 1")
	}

	ctx := context.Background()
	store := event.New(rootDBPath)
	if err := store.Initialize(ctx); err != nil {
		// The app stays usable without the event log; logging is
		// best-effort and the report view surfaces its own failure.
		logErrf("failed to initialize event log: %v\n", err)
	}

	sess := session.New(store, sample.New())
	sess.Start(ctx)
	defer sess.End(ctx)

	model := tui.NewModel(sess, rootCount, rootBins)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [port]",
		Short: "Serve the HTTP API",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveDBPath, "db", config.DefaultDBPath(), "SQLite event log path")
	cmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "fallback port")
	return cmd
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &serveDBPath, fileCfg.App.DBPath)
	applyIntConfig(cmd, "port", &servePort, fileCfg.App.Port)

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	port := config.ParsePort(arg, servePort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := event.New(serveDBPath)
	if err := store.Initialize(ctx); err != nil {
		logErrf("failed to initialize event log: %v\n", err)
	}

	server := web.NewServer(store, sample.New())
	logErrf("listening on :%d\n", port)
	if err := server.ListenAndServe(ctx, port); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sampler configuration
# Uncomment a value to enable it. CLI flags override config values.

[app]
# db-path = %q
# port = %d               # Port for sampler serve
# sample-count = %d       # Default sample size
# bins = %d               # Histogram bins
`,
		config.DefaultDBPath(),
		config.DefaultPort,
		defaultCount,
		defaultBins,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
