package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
)

type Config struct {
	titles         string
	store          string
	storePath      string
	session        string
	sessionTimeout time.Duration
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if c.titles == "" {
		return errors.New("--titles must not be empty")
	}
	if !slices.Contains([]string{store.BackendFile, store.BackendSQLite}, strings.ToLower(c.store)) {
		return fmt.Errorf("unknown store backend %q (expected %s or %s)", c.store, store.BackendFile, store.BackendSQLite)
	}
	if c.session != "" && len(c.session) < store.MinSessionIDLength {
		return fmt.Errorf("session name must be at least %d characters: %q", store.MinSessionIDLength, c.session)
	}
	return nil
}

// resolvedStorePath returns the configured store path or the backend's default.
func (c *Config) resolvedStorePath() string {
	if c.storePath != "" {
		return c.storePath
	}
	if strings.EqualFold(c.store, store.BackendSQLite) {
		return "data/quiz.db"
	}
	return "data/sessions"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TITLEQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quizcli",
		Short:         "Name every Splatoon title adjective and subject from the terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return play(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.titles, "titles", "t", "data/titles.json", "path to the title word lists (env: TITLEQUIZ_TITLES)")
	fs.StringVar(&cfg.store, "store", store.BackendFile, "snapshot backend, file or sqlite (env: TITLEQUIZ_STORE)")
	fs.StringVar(&cfg.storePath, "store-path", "", "snapshot directory or database file, defaults per backend (env: TITLEQUIZ_STORE_PATH)")
	fs.StringVarP(&cfg.session, "session", "s", "", "save and resume progress under this name (env: TITLEQUIZ_SESSION)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 30*24*time.Hour, "age after which a saved session is discarded (env: TITLEQUIZ_SESSION_TIMEOUT)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: TITLEQUIZ_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: TITLEQUIZ_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quizcli v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
