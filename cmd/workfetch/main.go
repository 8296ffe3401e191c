// Package main provides the CLI entrypoint for workfetch.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/workfetch/internal/bootinfo"
	"github.com/verte-zerg/workfetch/internal/clock"
	"github.com/verte-zerg/workfetch/internal/config"
	"github.com/verte-zerg/workfetch/internal/model"
	"github.com/verte-zerg/workfetch/internal/render"
	"github.com/verte-zerg/workfetch/internal/store"
	"github.com/verte-zerg/workfetch/internal/watch"
	"github.com/verte-zerg/workfetch/internal/workday"
)

var (
	statusWork    int
	statusBreak   int
	statusRound   int
	statusOutput  string
	statusWatch   bool
	statusNoLogo  bool
	statusBackend string
	verbose       bool

	resetBackend string
)

// Swapped in tests.
var (
	bootSource bootinfo.Source = bootinfo.System{}
	wallClock  clock.Clock     = clock.System{}
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workfetch",
		Short:         "Show when today's work day started and when it ends",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStatusCmd,
	}

	rootCmd.Flags().IntVar(&statusWork, "work", config.DefaultWorkMinutes, "planned work minutes")
	rootCmd.Flags().IntVar(&statusBreak, "break", config.DefaultBreakMinutes, "planned break minutes")
	rootCmd.Flags().IntVar(&statusRound, "round", config.DefaultRoundMinutes, "round the start to this many minutes (0 disables)")
	rootCmd.Flags().StringVarP(&statusOutput, "output", "o", render.FormatText, "output format: text, json or yaml")
	rootCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "keep the status on screen and refresh it")
	rootCmd.Flags().BoolVar(&statusNoLogo, "no-logo", false, "hide the logo")
	rootCmd.Flags().StringVar(&statusBackend, "backend", config.DefaultBackend, "session storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print session decisions to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newPathsCmd())

	return rootCmd
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	applyIntFlag(cmd, "work", &cfg.Schedule.WorkMinutes, statusWork)
	applyIntFlag(cmd, "break", &cfg.Schedule.BreakMinutes, statusBreak)
	applyIntFlag(cmd, "round", &cfg.RoundMinutes, statusRound)
	applyStringFlag(cmd, "backend", &cfg.Backend, statusBackend)

	if err := validateFlags(cfg); err != nil {
		return err
	}

	st, err := openStore(cfg.Backend)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close session store: %v\n", cerr)
		}
	}()

	svc := workday.New(cfg, st, bootSource, wallClock)
	status, err := svc.Status(context.Background())
	if err != nil {
		return err
	}
	for _, w := range status.Warnings {
		logErrf("warning: %v\n", w)
	}
	if status.PersistErr != nil {
		logErrf("warning: %v\n", status.PersistErr)
	}
	if verbose {
		logErrf("session: %s, boot %s, start %s, written %v (%s)\n",
			status.Reason,
			status.Boot.Format("2006-01-02 15:04:05"),
			status.Start.Format("2006-01-02 15:04:05"),
			status.Written,
			st.Location())
	}

	if statusWatch {
		program := tea.NewProgram(watch.NewModel(svc, status, watch.DefaultInterval), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run watch view: %w", err)
		}
		return nil
	}

	opts := render.Options{Logo: !statusNoLogo, Width: render.TerminalWidth()}
	if err := render.Write(cmd.OutOrStdout(), status, statusOutput, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadConfig never fails: problems with the config file are reported and
// the defaults are used instead.
func loadConfig() model.Config {
	path := config.DefaultConfigPath()
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		if config.IsConfigError(err) {
			logErrf("warning: %v (using defaults)\n", err)
		} else {
			logErrf("warning: failed to load config: %v (using defaults)\n", err)
		}
	}
	if created && verbose {
		logErrf("created default config at %s\n", path)
	}
	return cfg
}

func validateFlags(cfg model.Config) error {
	if err := config.ValidateRoundMinutes(cfg.RoundMinutes); err != nil {
		return fmt.Errorf("--round %w", err)
	}
	if err := config.ValidateBackend(cfg.Backend); err != nil {
		return fmt.Errorf("--backend: %w", err)
	}
	switch statusOutput {
	case render.FormatText, render.FormatJSON, render.FormatYAML:
	default:
		return fmt.Errorf("--output must be one of text, json, yaml")
	}
	if statusWatch && statusOutput != render.FormatText {
		return fmt.Errorf("--watch only supports text output")
	}
	return nil
}

func statePath(backend string) string {
	if backend == config.BackendSQLite {
		return config.DefaultDBPath()
	}
	return config.DefaultStatePath()
}

func openStore(backend string) (store.SessionStore, error) {
	path := statePath(backend)
	st, err := store.Open(backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store at %s: %w", path, err)
	}
	return st, nil
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
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
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

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget today's recorded start time",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().StringVar(&resetBackend, "backend", config.DefaultBackend, "session storage backend: json or sqlite")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	applyStringFlag(cmd, "backend", &cfg.Backend, resetBackend)
	if err := config.ValidateBackend(cfg.Backend); err != nil {
		return fmt.Errorf("--backend: %w", err)
	}
	st, err := openStore(cfg.Backend)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close session store: %v\n", cerr)
		}
	}()
	if err := st.Clear(context.Background()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared session state at %s\n", st.Location()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show config and state locations",
		Args:  cobra.NoArgs,
		RunE:  runPathsCmd,
	}
}

func runPathsCmd(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	rows := [][]string{
		{"config", config.DefaultConfigPath(), ""},
		{"state", config.DefaultStatePath(), activeMark(cfg.Backend == config.BackendJSON)},
		{"database", config.DefaultDBPath(), activeMark(cfg.Backend == config.BackendSQLite)},
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), render.Table([]string{"Item", "Path", "Backend"}, rows)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func activeMark(active bool) string {
	if active {
		return "active"
	}
	return ""
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
