// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pls CLI, a client for the
// personal number lookup service.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pnum-lookup/internal/client"
	"github.com/pdiddy/pnum-lookup/internal/history"
	"github.com/pdiddy/pnum-lookup/internal/secrets"
	"github.com/pdiddy/pnum-lookup/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// app carries state shared by the root command and its subcommands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	root := &cobra.Command{
		Use:   "pls <action>",
		Short: "Personal number Lookup Service",
		Long: `Personal number Lookup Service. Access information concerning registered or
specific personal numbers.

Actions:
  isvalid        check whether a personal number is valid (requires -p)
  isregistered   check whether a personal number is in the data set (requires -p)
  gender         look up the gender of a personal number (requires -p)
  age            look up the age of a personal number (requires -p)
  listall        count all personal numbers in the data set
  listbygroups   count personal numbers by age group and gender

Contact abc@def.ijk for further help.`,
		Example: `  pls gender -p 199001011234 -v
  pls listall --save`,
		ValidArgs:         types.ActionNames(),
		Args:              actionArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runLookup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./pls.yaml or ~/.config/pls/pls.yaml)")
	pf.String("base-url", types.DefaultBaseURL, "registry base URL; the action is appended verbatim")
	pf.Duration("timeout", 0, "HTTP request timeout (0 = none)")
	pf.Int("retries", 0, "retries on HTTP 429/503 with exponential backoff")
	pf.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	pf.Bool("history", false, "record lookups in the local history database")
	pf.String("history-path", "", "history database path (default ~/.config/pls/history.db)")

	f := root.Flags()
	f.StringP("pnum", "p", "", "personal number for lookup")
	f.BoolP("save", "s", false, "save response to a file")
	f.BoolP("verbose", "v", false, "print detailed output")
	f.String("format", string(types.FormatJSON), "save format: json or yaml")
	f.String("save-dir", ".", "directory saved responses are written to")

	a.bindFlags(root)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newHistoryCmd(a))
	return root
}

// bindFlags connects flags to their viper keys and registers defaults.
func (a *app) bindFlags(root *cobra.Command) {
	bindings := map[string]string{
		"base_url":        "base-url",
		"timeout":         "timeout",
		"retries":         "retries",
		"log_level":       "log-level",
		"history.enabled": "history",
		"history.path":    "history-path",
		"save_format":     "format",
		"save_dir":        "save-dir",
	}
	for key, name := range bindings {
		flag := root.PersistentFlags().Lookup(name)
		if flag == nil {
			flag = root.Flags().Lookup(name)
		}
		a.v.BindPFlag(key, flag)
	}

	a.v.SetDefault("base_url", types.DefaultBaseURL)
	a.v.SetDefault("user_agent", "pls/"+version)
	a.v.SetDefault("secrets_dir", ".secrets/")
	a.v.SetDefault("save_dir", ".")
	a.v.SetDefault("save_format", string(types.FormatJSON))
	a.v.SetDefault("log_level", "warn")
}

// initConfig reads the config file and environment, then builds the logger.
func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName("pls")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "pls"))
		}
	}

	a.v.SetEnvPrefix("PLS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	readErr := a.v.ReadInConfig()
	if readErr != nil {
		if _, notFound := readErr.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			return fmt.Errorf("reading config: %w", readErr)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log_level"))); err != nil {
		return usageError(fmt.Errorf("invalid log level %q: use debug, info, warn or error", a.v.GetString("log_level")))
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if readErr == nil {
		a.logger.Debug("using config file", "path", a.v.ConfigFileUsed())
	}
	return nil
}

// config assembles the client configuration from viper and the secrets directory.
func (a *app) config() (types.Config, error) {
	s, err := secrets.Load(a.v.GetString("secrets_dir"), a.logger)
	if err != nil {
		return types.Config{}, err
	}

	format := types.SaveFormat(strings.ToLower(a.v.GetString("save_format")))
	if format != types.FormatJSON && format != types.FormatYAML {
		return types.Config{}, usageError(fmt.Errorf("unsupported save format %q: use json or yaml", format))
	}

	historyPath := a.v.GetString("history.path")
	if historyPath == "" {
		historyPath = history.DefaultPath()
	}

	return types.Config{
		HTTP: types.HTTPConfig{
			BaseURL:    a.v.GetString("base_url"),
			Timeout:    a.v.GetDuration("timeout"),
			UserAgent:  a.v.GetString("user_agent"),
			MaxRetries: a.v.GetInt("retries"),
			APIToken:   secrets.APIToken(s, a.v.GetString("api_token")),
		},
		Output: types.OutputConfig{
			SaveDir: a.v.GetString("save_dir"),
			Format:  format,
		},
		History: types.HistoryConfig{
			Enabled: a.v.GetBool("history.enabled"),
			Path:    historyPath,
		},
		LogLevel: a.v.GetString("log_level"),
	}, nil
}

// record stores resp in the history database. Failures are logged, never fatal.
func (a *app) record(ctx context.Context, cfg types.HistoryConfig, resp *client.Response) {
	if !cfg.Enabled {
		return
	}
	store, err := history.Open(cfg.Path)
	if err != nil {
		a.logger.Warn("could not open history", "path", cfg.Path, "error", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, history.EntryFromResponse(resp, time.Now())); err != nil {
		a.logger.Warn("could not record lookup", "error", err)
	}
}

// execute runs the CLI with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	return exitCode(cmd, err, stderr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
