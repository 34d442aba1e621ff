// Package main is the entry point for ariclassify, a command line tool
// that classifies ARI request paths and extracts their correlation ids.
//
// Each path argument, or each non-blank stdin line when no argument is
// given, produces one JSON line on stdout:
//
//	$ ariclassify -body '{"channelId":"new-1"}' /ari/channels/create
//	{"path":"/channels/create","type":"CHANNEL_CREATION","creation":true,...}
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vyrodovalexey/ariproxy/internal/command"
	"github.com/vyrodovalexey/ariproxy/internal/config"
	"github.com/vyrodovalexey/ariproxy/internal/observability"
	"github.com/vyrodovalexey/ariproxy/internal/util"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath   string
	logLevel     string
	logFormat    string
	body         string
	bodySet      bool
	bodyFile     string
	check        bool
	printMetrics bool
	showVersion  bool
	paths        []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the tool and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if flags.showVersion {
		printVersion(stdout)
		return 0
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := initLogger(cfg, flags)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	registry := prometheus.NewRegistry()
	opts := []command.Option{command.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		opts = append(opts, command.WithMetrics(command.NewMetrics(cfg.Metrics.Namespace, registry)))
	} else if flags.printMetrics {
		logger.Warn("metrics are disabled in the configuration, nothing will be printed")
	}

	classifier, err := command.New(command.DefaultEntries(), opts...)
	if err != nil {
		logger.Error("invalid pattern table", observability.Error(err))
		return 1
	}

	if flags.check {
		if err := printTable(stdout, classifier); err != nil {
			logger.Error("failed to print table", observability.Error(err))
			return 1
		}
		return 0
	}

	body, err := readBody(flags)
	if err != nil {
		logger.Error("failed to read body", observability.Error(err))
		return 1
	}

	if err := classifyAll(stdout, stdin, classifier, cfg.Correlation.PathPrefix, flags.paths, body); err != nil {
		logger.Error("classification failed", observability.Error(err))
		return 1
	}

	if flags.printMetrics {
		if err := writeMetrics(stderr, registry); err != nil {
			logger.Error("failed to write metrics", observability.Error(err))
			return 1
		}
	}
	return 0
}

// parseFlags parses command line flags.
func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var flags cliFlags

	fs := flag.NewFlagSet("ariclassify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.configPath, "config", getEnvOrDefault(config.EnvConfigPath, ""),
		"Path to configuration file")
	fs.StringVar(&flags.logLevel, "log-level", getEnvOrDefault("ARIPROXY_LOG_LEVEL", ""),
		"Log level (debug, info, warn, error); overrides the configuration")
	fs.StringVar(&flags.logFormat, "log-format", getEnvOrDefault("ARIPROXY_LOG_FORMAT", ""),
		"Log format (json, console); overrides the configuration")
	fs.StringVar(&flags.body, "body", "", "JSON request body used for every path")
	fs.StringVar(&flags.bodyFile, "body-file", "", "File holding the JSON request body")
	fs.BoolVar(&flags.check, "check", false, "Validate the pattern table and print it")
	fs.BoolVar(&flags.printMetrics, "metrics", getEnvBool("ARIPROXY_PRINT_METRICS", false),
		"Print classifier metrics to stderr when done (requires metrics.enabled)")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return flags, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "body" {
			flags.bodySet = true
		}
	})
	if flags.bodySet && flags.bodyFile != "" {
		fmt.Fprintln(stderr, "-body and -body-file are mutually exclusive")
		return flags, errors.New("conflicting body flags")
	}

	flags.paths = fs.Args()
	return flags, nil
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "ariclassify version %s\n", version)
	fmt.Fprintf(w, "  Build time: %s\n", buildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", gitCommit)
}

// loadConfig loads the configuration file, or returns the defaults when
// no file is configured.
func loadConfig(path string) (*config.Config, error) {
	resolved, err := config.ResolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(resolved)
}

// initLogger initializes the logger. Logs never go to stdout, which
// carries the JSON output.
func initLogger(cfg *config.Config, flags cliFlags) (observability.Logger, error) {
	logCfg := cfg.Logging.LogConfig()
	if flags.logLevel != "" {
		logCfg.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		logCfg.Format = flags.logFormat
	}
	if logCfg.Output == "" || logCfg.Output == "stdout" {
		logCfg.Output = "stderr"
	}

	logger, err := observability.NewLogger(logCfg)
	if err != nil {
		return nil, err
	}
	observability.SetGlobalLogger(logger)
	return logger, nil
}

// readBody returns the body given on the command line, or nil when none
// was given.
func readBody(flags cliFlags) (*string, error) {
	switch {
	case flags.bodySet:
		body := flags.body
		return &body, nil
	case flags.bodyFile != "":
		data, err := os.ReadFile(flags.bodyFile)
		if err != nil {
			return nil, fmt.Errorf("read body file %s: %w", flags.bodyFile, err)
		}
		body := string(data)
		return &body, nil
	default:
		return nil, nil
	}
}

// classifyAll writes one JSON line per path. Paths come from args, or
// from stdin lines when args is empty.
func classifyAll(
	w io.Writer,
	stdin io.Reader,
	classifier *command.Classifier,
	prefix string,
	args []string,
	body *string,
) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	emit := func(raw string) error {
		path := strings.TrimSpace(raw)
		if path == "" {
			return nil
		}
		if stripped, ok := util.StripPathPrefix(path, prefix); ok {
			path = stripped
		}
		return enc.Encode(classify(classifier, path, body))
	}

	if len(args) > 0 {
		for _, arg := range args {
			if err := emit(arg); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// printTable prints the pattern table in match order.
func printTable(w io.Writer, classifier *command.Classifier) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEMPLATE\tTYPE\tURI\tBODY")
	for _, e := range classifier.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Template, e.Type, e.Type.URIStrategy(), e.Type.BodyStrategy())
	}
	return tw.Flush()
}

// writeMetrics writes the gathered metrics in the Prometheus text format.
func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
