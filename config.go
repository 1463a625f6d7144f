package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind    string
	port    int
	prefix  string
	profile bool
	tlsCert string
	tlsKey  string
	verbose bool

	server       string
	pollInterval time.Duration
}

func (c *Config) validateServe() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

func (c *Config) validatePlay() error {
	u, err := url.Parse(c.server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server address: %q", c.server)
	}
	if c.pollInterval < time.Second {
		return fmt.Errorf("poll interval too short (minimum 1s): %s", c.pollInterval)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CZARDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "czardeck",
		Short:   "A fill-in-the-blank party card game with a terminal client.",
		Version: releaseVersion,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the authoritative game server.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validateServe(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Join a game from your terminal.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validatePlay(); err != nil {
				return err
			}
			return RunClient(cmd.Context(), cfg)
		},
	}

	sfs := serveCmd.Flags()
	sfs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CZARDECK_BIND)")
	sfs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CZARDECK_PORT)")
	sfs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CZARDECK_PREFIX)")
	sfs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CZARDECK_PROFILE)")
	sfs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CZARDECK_TLS_CERT)")
	sfs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CZARDECK_TLS_KEY)")

	pfs := playCmd.Flags()
	pfs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "base URL of the game server (env: CZARDECK_SERVER)")
	pfs.DurationVar(&cfg.pollInterval, "poll-interval", 5*time.Second, "how often to poll the server for game state (env: CZARDECK_POLL_INTERVAL)")

	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CZARDECK_VERBOSE)")

	cmd.AddCommand(serveCmd, playCmd)

	for _, sub := range []*cobra.Command{serveCmd, playCmd} {
		fs := sub.Flags()
		fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
			return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
		})
		fs.VisitAll(func(f *pflag.Flag) {
			_ = v.BindPFlag(f.Name, f)
			_ = v.BindEnv(f.Name)
			if !f.Changed && v.IsSet(f.Name) {
				_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
			}
		})
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("czardeck v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
