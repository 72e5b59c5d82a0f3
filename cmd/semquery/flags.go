package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Query       string
	QueryFile   string
	Data        string
	Endpoint    string
	Accept      string
	Limit       int64
	Offset      int64
	OrderBy     string
	Descending  bool
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.Query, "query", "", "Query text")
	flag.StringVar(&cfg.Query, "q", "", "Query text")
	flag.StringVar(&cfg.QueryFile, "query-file",
		getEnv("SEMQUERY_QUERY_FILE", ""),
		"Path to a file holding the query (env: SEMQUERY_QUERY_FILE)")

	flag.StringVar(&cfg.Data, "data",
		getEnv("SEMQUERY_DATA", ""),
		"Path to an N-Triples data file (env: SEMQUERY_DATA)")
	flag.StringVar(&cfg.Endpoint, "endpoint",
		getEnv("SEMQUERY_ENDPOINT", ""),
		"SPARQL endpoint URL; overrides -data (env: SEMQUERY_ENDPOINT)")

	flag.StringVar(&cfg.Accept, "accept",
		getEnv("SEMQUERY_ACCEPT", ""),
		"Output media type: application/rdf+xml, text/turtle, application/n-triples (env: SEMQUERY_ACCEPT)")

	flag.Int64Var(&cfg.Limit, "limit", -1, "Override LIMIT on SELECT queries, -1 leaves the query unchanged")
	flag.Int64Var(&cfg.Offset, "offset", -1, "Override OFFSET on SELECT queries, -1 leaves the query unchanged")
	flag.StringVar(&cfg.OrderBy, "order-by", "", "Override ORDER BY variable on SELECT queries")
	flag.BoolVar(&cfg.Descending, "desc", false, "Sort the -order-by variable descending")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("SEMQUERY_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: SEMQUERY_LOG_LEVEL)")
	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("SEMQUERY_LOG_FORMAT", "text"),
		"Log format: json, text (env: SEMQUERY_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	flag.Usage = printDetailedHelp
	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.Query == "" && cfg.QueryFile == "" {
		return fmt.Errorf("one of -query or -query-file is required")
	}
	if cfg.Endpoint == "" && cfg.Data == "" {
		return fmt.Errorf("one of -data or -endpoint is required")
	}
	if cfg.Data != "" && cfg.Endpoint == "" {
		if _, err := os.Stat(cfg.Data); err != nil {
			return fmt.Errorf("data file not found: %s", cfg.Data)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - query graph data and SPARQL endpoints

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Describe a resource in a local data file, as Turtle
  %s -q 'DESCRIBE <http://example.org/alice>' -data people.nt -accept text/turtle

  # Run a SELECT against a remote endpoint with a result cap
  %s -q 'SELECT ?s WHERE { ?s ?p ?o }' -endpoint http://localhost:3030/ds/sparql -limit 100

Version: %s
Build: %s
`, os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
