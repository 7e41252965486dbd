package cmd

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/nhlapi/config"
	"github.com/s0up4200/nhlapi/nhl"
	"github.com/s0up4200/nhlapi/nhl/metrics"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *nhl.Client
	registry *prometheus.Registry

	// Command flags
	debug        bool
	outputFormat string
	filterExpr   string
	preset       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nhlapi",
	Short: "Query the public NHL web, stats and search APIs",
	Long: `nhlapi is a CLI for the public NHL APIs. It can show standings, schedules,
teams, rosters and game center data, and filter standings and schedules
with expressions such as:

  nhlapi standings --filter 'division:A and points:>=90'
  nhlapi schedule --filter 'IsLive or involves("TOR")'`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: finishCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging of API requests")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table/json)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the command runs (e.g. :9090)")
}

// initializeApp loads configuration and creates the NHL client
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputFormat != "table" && outputFormat != "json" {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if debug {
		cfg.Logging.Level = "debug"
		cfg.Client.Debug = true
	}

	logger = setupLogger(cfg.Logging)

	registry = prometheus.NewRegistry()
	opts := append(cfg.ClientOptions(), nhl.WithObserver(metrics.NewCollector(registry)))

	client, err = nhl.NewClient(logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create NHL client: %w", err)
	}

	if metricsAddr != "" {
		var addr net.Addr
		metricsServer, addr, err = serveMetrics(metricsAddr, registry)
		if err != nil {
			return err
		}
		logger.Info().Str("addr", addr.String()).Msg("Serving metrics on /metrics")
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Colors only make sense on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// finishCommand stops the metrics endpoint and prints the request summary
func finishCommand(cmd *cobra.Command, args []string) error {
	stopMetricsServer()
	return printMetricsSummary()
}
