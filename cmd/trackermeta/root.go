package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/trackermeta/internal/app"
)

var errUsage = errors.New("usage")

type rootOptions struct {
	configPath string
	envFiles   []string

	baseURL   string
	userAgent string
	timeout   time.Duration
	attempts  int
	rate      time.Duration
	offsets   string
	format    string
	verbose   bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd, _ := buildRoot(stdout)
	return cmd
}

// buildRoot assembles the command tree and returns the options its
// persistent flags bind to.
func buildRoot(stdout io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	defaults := app.DefaultConfig()

	root := &cobra.Command{
		Use:   "trackermeta",
		Short: "Look up tracker module metadata on The Mod Archive",
		Long: `trackermeta scrapes The Mod Archive (modarchive.org) for tracker module
metadata: title, format, channel count, download statistics and the
instrument text embedded in the module.

Examples:
  # Resolve a filename and print the module record
  trackermeta get noway.s3m

  # Fetch a module by id as JSON
  trackermeta info 61772 --format json

  # List filename search matches
  trackermeta search virtual-monotone`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			if len(args) > 0 {
				return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
			}
			return nil
		},
	}
	root.SetOut(stdout)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML or JSON config file")
	pf.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.StringVar(&opts.baseURL, "base-url", defaults.BaseURL, "Archive base URL")
	pf.StringVar(&opts.userAgent, "user-agent", defaults.UserAgent, "User-Agent header for archive requests")
	pf.DurationVar(&opts.timeout, "timeout", defaults.Timeout, "Per-request timeout")
	pf.IntVar(&opts.attempts, "attempts", defaults.Attempts, "Fetch attempts per page; -1 retries until interrupted")
	pf.DurationVar(&opts.rate, "rate", defaults.RequestInterval, "Minimum interval between archive requests (0 disables)")
	pf.StringVar(&opts.offsets, "offsets", "", "YAML or JSON file overriding layout offsets")
	pf.StringVarP(&opts.format, "format", "f", defaults.Format, "Output format: "+strings.Join(app.Formats, ", "))
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	root.AddCommand(
		newGetCmd(opts),
		newInfoCmd(opts),
		newSearchCmd(opts),
		newLinkCmd(),
		newOffsetsCmd(opts),
	)
	return root, opts
}

// config resolves the effective configuration. Precedence is flags, then
// environment, then config file, then defaults.
func (o *rootOptions) config(cmd *cobra.Command) (app.Config, error) {
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return app.Config{}, fmt.Errorf("load env files: %w", err)
	}
	cfg := app.Config{
		BaseURL:         o.baseURL,
		UserAgent:       o.userAgent,
		Timeout:         o.timeout,
		Attempts:        o.attempts,
		RequestInterval: o.rate,
		OffsetsPath:     o.offsets,
		Format:          strings.ToLower(o.format),
		Verbose:         o.verbose,
	}
	if o.configPath != "" {
		fc, err := app.LoadConfigFile(o.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	// Explicit flags win over env and file values.
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = o.userAgent
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("attempts") {
		cfg.Attempts = o.attempts
	}
	if flags.Changed("rate") {
		cfg.RequestInterval = o.rate
	}
	if flags.Changed("offsets") {
		cfg.OffsetsPath = o.offsets
	}
	if flags.Changed("format") {
		cfg.Format = strings.ToLower(o.format)
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, app.ValidateConfig(cfg)
}

func (o *rootOptions) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return a, nil
}
