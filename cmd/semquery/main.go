// Package main implements the semquery command line tool: it parses a
// query, optionally reshapes it with the select builder, executes it against
// a local N-Triples file or a remote SPARQL endpoint, and writes the result
// in the requested media type.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/c360/semquery/datamanager"
	"github.com/c360/semquery/linkeddata"
	"github.com/c360/semquery/querybuilder"
	"github.com/c360/semquery/rdf"
	"github.com/c360/semquery/sparql"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semquery"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Query failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	query, err := loadQuery(cliCfg)
	if err != nil {
		return err
	}
	query, err = applyModifierFlags(cliCfg, query)
	if err != nil {
		return err
	}

	manager, err := datamanager.NewManager(datamanager.Deps{Logger: logger})
	if err != nil {
		return fmt.Errorf("create manager: %w", err)
	}

	resource, err := buildResource(cliCfg, manager, query)
	if err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := resource.Response(ctx)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	if tag, ok, err := resource.EntityTag(ctx); err == nil && ok {
		slog.Info("Result ready", "entity_tag", tag, "triples", resp.Model.Len())
	} else {
		slog.Info("Result ready", "triples", resp.Model.Len())
	}

	return resp.Write(os.Stdout)
}

// loadQuery reads the query text from the -query flag or -query-file.
func loadQuery(cliCfg *CLIConfig) (*sparql.Query, error) {
	text := cliCfg.Query
	if text == "" {
		data, err := os.ReadFile(cliCfg.QueryFile)
		if err != nil {
			return nil, fmt.Errorf("read query file: %w", err)
		}
		text = string(data)
	}
	query, err := sparql.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	return query, nil
}

// applyModifierFlags rewrites a SELECT query through the builder when limit,
// offset, or ordering overrides were given on the command line.
func applyModifierFlags(cliCfg *CLIConfig, query *sparql.Query) (*sparql.Query, error) {
	if !query.IsSelect() || (cliCfg.Limit < 0 && cliCfg.Offset < 0 && cliCfg.OrderBy == "") {
		return query, nil
	}

	b, err := querybuilder.FromQuery(query, rdf.NewGraph(), "")
	if err != nil {
		return nil, fmt.Errorf("wrap query: %w", err)
	}
	if cliCfg.Limit >= 0 {
		b.Limit(cliCfg.Limit)
	}
	if cliCfg.Offset >= 0 {
		b.Offset(cliCfg.Offset)
	}
	if cliCfg.OrderBy != "" {
		b.OrderBy(cliCfg.OrderBy, cliCfg.Descending)
	}

	rebuilt, err := b.Compile()
	if err != nil {
		return nil, fmt.Errorf("apply modifiers: %w", err)
	}
	return rebuilt, nil
}

// buildResource picks the resource kind for the configured data source.
func buildResource(cliCfg *CLIConfig, manager *datamanager.Manager, query *sparql.Query) (linkeddata.ModelResource, error) {
	if cliCfg.Endpoint != "" {
		return linkeddata.NewEndpointResource(manager, cliCfg.Endpoint, query, cliCfg.Accept)
	}

	f, err := os.Open(cliCfg.Data)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	source, err := rdf.ParseNTriples(f)
	if err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	slog.Debug("Loaded data file", "path", cliCfg.Data, "triples", source.Len())

	return linkeddata.NewQueryResource(manager, source, query, cliCfg.Accept)
}
