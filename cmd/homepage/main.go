// Command homepage runs the personal-site content server: a TLS listener
// for content and a plaintext listener that redirects to it.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riceco/homepage"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(viper.New())
}

// newRootCommandWith builds the root command with every flag bound into v.
// Precedence is flag, then HOMEPAGE_* environment, then config file.
func newRootCommandWith(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "homepage",
		Short:         "Serve the personal site over HTTPS",
		Long:          "Serve posts, assets and the QR page over TLS, redirecting plaintext HTTP to HTTPS.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.Uint16P("http-port", "p", 8080, "plaintext port that redirects to HTTPS")
	flags.Uint16P("https-port", "s", 4343, "TLS port serving content")
	flags.String("root", ".", "directory containing posts/, assets/ and static/")
	flags.String("cert", "certs/cert.pem", "PEM certificate file")
	flags.String("key", "certs/key.pem", "PEM private key file")
	flags.String("log-level", "info", "log level: debug, info, warn, error or off")
	flags.Bool("metrics", false, "expose Prometheus metrics at /metrics")
	cmd.PersistentFlags().String("config", "", "optional config file (toml, yaml or json)")

	_ = v.BindPFlags(flags)
	_ = v.BindPFlags(cmd.PersistentFlags())
	v.SetEnvPrefix("HOMEPAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the homepage version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "homepage %s\n", version)
		},
	}
}

func readConfigFile(v *viper.Viper) error {
	file := v.GetString("config")
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", file, err)
	}
	return nil
}

// siteConfig builds the immutable configuration shared by both listeners.
func siteConfig(v *viper.Viper) (homepage.SiteConfig, error) {
	httpPort, err := port(v, "http-port")
	if err != nil {
		return homepage.SiteConfig{}, err
	}
	httpsPort, err := port(v, "https-port")
	if err != nil {
		return homepage.SiteConfig{}, err
	}
	return homepage.SiteConfig{
		HTTPPort:       httpPort,
		HTTPSPort:      httpsPort,
		Root:           v.GetString("root"),
		CertFile:       v.GetString("cert"),
		KeyFile:        v.GetString("key"),
		MetricsEnabled: v.GetBool("metrics"),
	}, nil
}

// port reads key as a TCP port. Values from the environment or a config
// file bypass pflag's range check; a non-numeric value reads as 0.
func port(v *viper.Viper, key string) (uint16, error) {
	n := v.GetInt(key)
	if n < 1 || n > math.MaxUint16 {
		return 0, fmt.Errorf("%s: %d is outside 1..65535", key, n)
	}
	return uint16(n), nil
}

func run(ctx context.Context, v *viper.Viper) error {
	logger, err := homepage.NewLogger(v.GetString("log-level"), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	cfg, err := siteConfig(v)
	if err != nil {
		logger.Errorf("%v", err)
		return err
	}
	app := homepage.New(cfg, homepage.WithLogger(logger))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		logger.Errorf("%v", err)
		return err
	}
	return nil
}
