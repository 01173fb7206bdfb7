package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	xmlvalidate "github.com/agentflare-ai/go-xmlvalidate"
)

type config struct {
	Format   string        `env:"VALIDATE_FORMAT" envDefault:"text"`
	CacheTTL time.Duration `env:"VALIDATE_CACHE_TTL" envDefault:"1h"`
	Output   string        `env:"VALIDATE_OUTPUT"`
	LogLevel slog.Level    `env:"VALIDATE_LOG_LEVEL" envDefault:"info"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: validate <schema.xsd> <doc.xml|dir>...")
		os.Exit(2)
	}
	schemaPath := os.Args[1]

	docs, err := collectDocuments(os.Args[2:])
	if err != nil {
		slog.Error("failed to enumerate documents", "error", err)
		os.Exit(2)
	}
	if len(docs) == 0 {
		slog.Error("no XML documents to validate")
		os.Exit(2)
	}

	out := io.Writer(os.Stdout)
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			slog.Error("failed to open output file", "path", cfg.Output, "error", err)
			os.Exit(2)
		}
		defer f.Close()
		out = f
	}

	orchestrator := xmlvalidate.NewOrchestrator(xmlvalidate.NewModelCache(cfg.CacheTTL))

	failed := false
	for _, doc := range docs {
		outcome, err := orchestrator.ValidateFile(doc, schemaPath)
		if err != nil {
			// Schema-level failures doom every remaining document,
			// per-file failures only this one.
			var malformed *xmlvalidate.SchemaMalformedError
			if errors.As(err, &malformed) {
				slog.Error("schema cannot be modeled", "schema", schemaPath, "error", err)
				os.Exit(1)
			}
			slog.Error("skipping document", "document", doc, "error", err)
			failed = true
			continue
		}

		if outcome.Passed() {
			fmt.Fprintf(out, "%s: valid\n", doc)
			continue
		}
		failed = true

		fmt.Fprintf(out, "%s: invalid\n", doc)
		report := xmlvalidate.Aggregate(outcome)
		var renderErr error
		switch cfg.Format {
		case "json":
			renderErr = report.WriteJSON(out)
		case "text":
			renderErr = report.WriteText(out)
		default:
			slog.Warn("unsupported output format, falling back to text", "format", cfg.Format)
			renderErr = report.WriteText(out)
		}
		if renderErr != nil {
			slog.Error("failed to write report", "error", renderErr)
			os.Exit(2)
		}
	}

	if failed {
		os.Exit(1)
	}
}

// collectDocuments expands each argument into XML files: directories
// contribute their .xml entries, everything else is taken as a file.
func collectDocuments(args []string) ([]string, error) {
	var docs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			xmlFiles, _, err := xmlvalidate.ListFiles(arg)
			if err != nil {
				return nil, err
			}
			docs = append(docs, xmlFiles...)
			continue
		}
		docs = append(docs, arg)
	}
	return docs, nil
}
