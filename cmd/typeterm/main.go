// Package main provides the CLI entrypoint for typeterm.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/typeterm/typeterm/internal/config"
	"github.com/typeterm/typeterm/internal/generator"
	"github.com/typeterm/typeterm/internal/model"
	"github.com/typeterm/typeterm/internal/tui"
	"github.com/typeterm/typeterm/internal/wordlist"
)

const (
	defaultMode        = "time"
	defaultSeconds     = 60
	defaultWords       = 50
	defaultSampleCount = 20
)

type testFlags struct {
	mode     string
	seconds  int
	words    int
	seed     int64
	wordlist string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &testFlags{}
	rootCmd := &cobra.Command{
		Use:           "typeterm",
		Short:         "Terminal typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTestCmd(cmd, flags)
		},
	}
	addTestFlags(rootCmd, flags)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSampleCmd())
	return rootCmd
}

func addTestFlags(cmd *cobra.Command, flags *testFlags) {
	cmd.Flags().StringVar(&flags.mode, "mode", defaultMode, "test mode: time or words")
	cmd.Flags().IntVar(&flags.seconds, "seconds", defaultSeconds, "seconds for time mode")
	cmd.Flags().IntVar(&flags.words, "words", defaultWords, "word count for words mode")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "random seed for repeatable word sequences")
	cmd.Flags().StringVar(&flags.wordlist, "wordlist", "", "path to a custom word list (one word per line)")
}

func runTestCmd(cmd *cobra.Command, flags *testFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	pool, err := wordlist.Resolve(cfg.WordListPath)
	if err != nil {
		return wordListLoadError(cfg.WordListPath, err)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("typeterm requires a terminal; run it from an interactive shell")
	}

	m, err := tui.NewModel(cfg, pool, generator.New())
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return m.Err()
}

// resolveConfig merges the config file under the command-line flags.
func resolveConfig(cmd *cobra.Command, flags *testFlags) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return buildConfig(cmd, flags, fileCfg.Test)
}

func buildConfig(cmd *cobra.Command, flags *testFlags, file config.TestConfig) (model.Config, error) {
	applyStringConfig(cmd, "mode", &flags.mode, file.Mode)
	applyIntConfig(cmd, "seconds", &flags.seconds, file.Seconds)
	applyIntConfig(cmd, "words", &flags.words, file.Words)
	applyStringConfig(cmd, "wordlist", &flags.wordlist, file.WordList)

	mode, err := model.ParseMode(flags.mode)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --mode value: %w", err)
	}
	cfg := model.Config{
		Mode:         mode,
		Seconds:      flags.seconds,
		Words:        flags.words,
		WordListPath: strings.TrimSpace(flags.wordlist),
	}
	switch {
	case cmd.Flags().Changed("seed"):
		seed := flags.seed
		cfg.Seed = &seed
	case file.Seed != nil:
		seed := *file.Seed
		cfg.Seed = &seed
	}
	if err := cfg.Validate(); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
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
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
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
		logErrf("Wrote %s\n", path)
	}
	return nil
}

func newSampleCmd() *cobra.Command {
	flags := &testFlags{}
	var count int
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print generated words for the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSampleCmd(cmd, flags, count)
		},
	}
	addTestFlags(cmd, flags)
	cmd.Flags().IntVar(&count, "count", defaultSampleCount, "number of words to print")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, flags *testFlags, count int) error {
	if count <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	pool, err := wordlist.Resolve(cfg.WordListPath)
	if err != nil {
		return wordListLoadError(cfg.WordListPath, err)
	}
	return writeSample(cmd.OutOrStdout(), generator.New().Generate(count, cfg.Seed, pool))
}

func writeSample(w io.Writer, words []string) error {
	if _, err := fmt.Fprintln(w, strings.Join(words, " ")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
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
	return fmt.Sprintf(`# typeterm configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# mode = %q           # Test mode: "time" or "words"
# seconds = %d          # Seconds for time mode
# words = %d            # Word count for words mode
# seed = 42             # Random seed for repeatable word sequences
# wordlist = ""         # Path to a custom word list (one word per line)
`,
		defaultMode,
		defaultSeconds,
		defaultWords,
	)
}

func wordListLoadError(path string, err error) error {
	hint := strings.Join([]string{
		fmt.Sprintf("configured word list: %s", path),
		"Provide a readable file with one word per line (printable ASCII, no spaces).",
	}, "\n")
	return fmt.Errorf("%w\n%s", err, hint)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
