package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tandemhq/tandem/internal/backend/git"
	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/config"
	"github.com/tandemhq/tandem/internal/core/logging"
	"github.com/tandemhq/tandem/internal/core/styles"
	"github.com/tandemhq/tandem/internal/data/db"
	"github.com/tandemhq/tandem/internal/data/stores"
	"github.com/tandemhq/tandem/internal/tui"
	"github.com/tandemhq/tandem/pkg/executil"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tandem"
	}
	return filepath.Join(home, ".local", "share", "tandem")
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		flags     struct {
			LogLevel   string
			LogFile    string
			ConfigPath string
			DataDir    string
			Repo       string
		}
	)

	app := &cli.Command{
		Name:      "tandem",
		Usage:     "Side-by-side diff review in the terminal",
		UsageText: "tandem [global options] [before-ref] [after-ref]",
		Description: `Tandem shows two versions of each changed file as synchronized panes:
scrolling one pane keeps the corresponding region of the other in view,
with connectors drawn between changed blocks. Review comments anchor to
line ranges and persist across sessions.

With no arguments it compares HEAD against the working tree.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TANDEM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tandem.log)",
				Sources:     cli.EnvVars("TANDEM_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TANDEM_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TANDEM_DATA_DIR"),
				Value:       defaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "repo",
				Usage:       "path to the git repository",
				Value:       ".",
				Destination: &flags.Repo,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// The TUI owns stdout, so logs always go to a file.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "tandem.log")
			}

			logger, closer, err := logging.New(flags.LogLevel, logFile)
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.DataDir = flags.DataDir

			// Validation ensures the theme name is known.
			styles.Apply(cfg.Theme)

			before := c.Args().Get(0)
			if before == "" {
				before = "HEAD"
			}
			after := c.Args().Get(1)
			if after == "" {
				after = align.WorkingTreeRef
			}
			diffID := align.NewDiffID(before, after)

			database, err := db.Open(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				if err := database.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close database")
				}
			}()

			store := stores.NewReviewStore(database)
			provider := git.NewCLI(cfg.GitPath, flags.Repo, &executil.RealExecutor{})

			log.Info().
				Str("version", build()).
				Str("diff", diffID.String()).
				Str("repo", flags.Repo).
				Msg("starting tandem")

			model := tui.New(&cfg, provider, store, diffID)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}

			return nil
		},
	}

	err := app.Run(ctx, os.Args)
	if logCloser != nil {
		logCloser()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
