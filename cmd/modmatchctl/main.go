// Command modmatchctl runs modmatch workflows locally on JSON input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/modmatch/internal/version"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "modmatchctl",
		Usage:     "Match job postings and curriculum topics to course modules",
		Version:   version.String(),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "embedding-base-url",
				Usage:   "OpenAI-compatible embeddings API base URL",
				EnvVars: []string{"EMBEDDING_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "embedding-api-key",
				Usage:   "Embeddings API key",
				EnvVars: []string{"EMBEDDING_API_KEY", "OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:  "instruction",
				Usage: "Text prepended to every embedded text (e.g. \"query: \")",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent single embed calls for providers without batching",
			},
			&cli.StringFlag{
				Name:    "cache-addr",
				Usage:   "Valkey/Redis address for the embedding cache",
				EnvVars: []string{"CACHE_ADDR"},
			},
			&cli.StringFlag{
				Name:    "cache-password",
				Usage:   "Valkey/Redis password",
				EnvVars: []string{"CACHE_PASSWORD"},
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "Embedding cache entry TTL (0 keeps entries forever)",
			},
			&cli.StringFlag{
				Name:  "lemmatizer",
				Usage: "Lemmatizer (snowball, identity)",
				Value: "snowball",
			},
			&cli.StringSliceFlag{
				Name:  "stop-word",
				Usage: "Extra stop word (repeatable)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "match-query",
				Usage:  "Rank catalog items against one query",
				Action: matchQueryCommand,
				Flags: []cli.Flag{
					inputFlag(`{"query": {...}, "catalog": [...]}`),
					backendFlag(),
					&cli.IntFlag{Name: "limit", Usage: "Maximum recommendations (0 means default)"},
					&cli.BoolFlag{Name: "title-only", Usage: "Match on the query title only"},
				},
			},
			{
				Name:   "match-topics",
				Usage:  "Aggregate catalog matches over many sources",
				Action: matchTopicsCommand,
				Flags: []cli.Flag{
					inputFlag(`{"topics": [...], "catalog": [...]}`),
					backendFlag(),
					&cli.BoolFlag{Name: "title-only", Usage: "Match on source titles only"},
				},
			},
			{
				Name:   "match-vectors",
				Usage:  "Aggregate matches over precomputed embeddings",
				Action: matchVectorsCommand,
				Flags: []cli.Flag{
					inputFlag(`{"topics": [...], "items": [...]}`),
				},
			},
			{
				Name:   "sections",
				Usage:  "Filter job posting text by section relevance",
				Action: sectionsCommand,
				Flags: []cli.Flag{
					inputFlag("plain text"),
					&cli.StringFlag{Name: "mode", Usage: "important, unimportant or all", Value: "all"},
					&cli.BoolFlag{Name: "highlight", Usage: "Wrap matched headings in asterisks"},
				},
			},
			{
				Name:   "keywords",
				Usage:  "Extract keywords from a job posting (requires embeddings)",
				Action: keywordsCommand,
				Flags: []cli.Flag{
					inputFlag(`{"title": "...", "description": "..."}`),
					&cli.IntFlag{Name: "top-n", Usage: "Keywords per sentence", Value: 1},
				},
			},
			{
				Name:   "embed-topics",
				Usage:  "Embed curriculum topics for later vector matching",
				Action: embedTopicsCommand,
				Flags: []cli.Flag{
					inputFlag(`[{"name": "...", "description": "..."}]`),
				},
			},
			{
				Name:   "normalize",
				Usage:  "Print the lemma tokens of a text",
				Action: normalizeCommand,
				Flags: []cli.Flag{
					inputFlag("plain text"),
					&cli.StringFlag{Name: "lang", Usage: "auto, de or en", Value: "auto"},
				},
			},
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, version.String())
					return err
				},
			},
		},
	}
}

func inputFlag(format string) cli.Flag {
	return &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Input file, " + format + " (- reads stdin)",
		Value:   "-",
	}
}

func backendFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "backend",
		Aliases: []string{"b"},
		Usage:   "Similarity backend (lexical, dense); empty uses the default",
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
