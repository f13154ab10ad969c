package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	modmatch "github.com/kailas-cloud/modmatch/pkg/sdk"
)

type queryInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Language string `json:"language"`
}

type sourceInput struct {
	ID string `json:"id"`
	queryInput
}

type itemInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Skills  string `json:"skills"`
	Chair   string `json:"chair"`
}

type vectorInput struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
}

type recommendationOutput struct {
	ItemID    string             `json:"item_id"`
	Score     float64            `json:"score"`
	Frequency int                `json:"frequency"`
	Sources   map[string]float64 `json:"sources"`
}

func newClient(c *cli.Context, extra ...modmatch.Option) (*modmatch.Client, error) {
	opts := []modmatch.Option{
		modmatch.WithLogger(slog.Default()),
		modmatch.WithLemmatizer(c.String("lemmatizer")),
		modmatch.WithExtraStopWords(c.StringSlice("stop-word")...),
		modmatch.WithWorkers(c.Int("workers")),
	}
	if c.String("embedding-base-url") != "" || c.String("embedding-api-key") != "" {
		if c.String("embedding-model") == "" {
			return nil, fmt.Errorf("embedding-model is required when an embedding provider is configured")
		}
		opts = append(opts, modmatch.WithOpenAI(modmatch.OpenAIConfig{
			BaseURL:     c.String("embedding-base-url"),
			APIKey:      c.String("embedding-api-key"),
			Model:       c.String("embedding-model"),
			Instruction: c.String("instruction"),
		}))
		if addr := c.String("cache-addr"); addr != "" {
			opts = append(opts, modmatch.WithValkeyCache(addr, c.String("cache-password"), c.Duration("cache-ttl")))
		}
	}

	client, err := modmatch.New(c.Context, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func matchQueryCommand(c *cli.Context) error {
	var in struct {
		Query   queryInput  `json:"query"`
		Catalog []itemInput `json:"catalog"`
	}
	if err := readJSON(c, &in); err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	q := toQuery(in.Query)
	q.TitleOnly = c.Bool("title-only")
	recs, err := client.MatchQuery(c.Context, q, toItems(in.Catalog),
		modmatch.Backend(c.String("backend")), c.Int("limit"))
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the client
	}
	return writeJSON(c, toOutput(recs))
}

func matchTopicsCommand(c *cli.Context) error {
	var in struct {
		Topics  []sourceInput `json:"topics"`
		Catalog []itemInput   `json:"catalog"`
	}
	if err := readJSON(c, &in); err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	sources := make([]modmatch.Source, len(in.Topics))
	for i, s := range in.Topics {
		sources[i] = modmatch.Source{ID: s.ID, Query: toQuery(s.queryInput)}
		sources[i].TitleOnly = c.Bool("title-only")
	}
	recs, err := client.MatchTopics(c.Context, sources, toItems(in.Catalog), modmatch.Backend(c.String("backend")))
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the client
	}
	return writeJSON(c, toOutput(recs))
}

func matchVectorsCommand(c *cli.Context) error {
	var in struct {
		Topics []vectorInput `json:"topics"`
		Items  []vectorInput `json:"items"`
	}
	if err := readJSON(c, &in); err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	recs, err := client.MatchVectors(c.Context, toVectors(in.Topics), toVectors(in.Items))
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the client
	}
	return writeJSON(c, toOutput(recs))
}

func sectionsCommand(c *cli.Context) error {
	text, err := readInput(c)
	if err != nil {
		return err
	}

	var extra []modmatch.Option
	if c.Bool("highlight") {
		extra = append(extra, modmatch.WithHighlight())
	}
	client, err := newClient(c, extra...)
	if err != nil {
		return err
	}
	defer client.Close()

	out, err := client.ClassifySections(string(text), modmatch.Mode(c.String("mode")))
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the client
	}
	_, err = fmt.Fprintln(c.App.Writer, out)
	return err
}

func keywordsCommand(c *cli.Context) error {
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(c, &in); err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	kw, err := client.ExtractKeywords(c.Context, in.Title, in.Description, c.Int("top-n"))
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the client
	}
	return writeJSON(c, map[string]any{
		"title":       kw.Title,
		"description": kw.Description,
		"keywords":    kw.Keywords,
	})
}

func embedTopicsCommand(c *cli.Context) error {
	var in []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := readJSON(c, &in); err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	topics := make([]modmatch.Topic, len(in))
	for i, t := range in {
		topics[i] = modmatch.Topic{Name: t.Name, Description: t.Description}
	}
	out, err := client.EmbedTopics(c.Context, topics)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by the client
	}

	res := make([]map[string]any, len(out))
	for i, t := range out {
		res[i] = map[string]any{"name": t.Name, "embedding": t.Embedding}
	}
	return writeJSON(c, res)
}

func normalizeCommand(c *cli.Context) error {
	text, err := readInput(c)
	if err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	tokens, lang := client.Normalize(string(text), modmatch.Language(c.String("lang")))
	return writeJSON(c, map[string]any{"language": lang, "tokens": tokens})
}

func readInput(c *cli.Context) ([]byte, error) {
	path := c.String("input")
	if path == "" || path == "-" {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func readJSON(c *cli.Context, dst any) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func toQuery(q queryInput) modmatch.Query {
	return modmatch.Query{Title: q.Title, Body: q.Body, Language: modmatch.Language(q.Language)}
}

func toItems(items []itemInput) []modmatch.Item {
	out := make([]modmatch.Item, len(items))
	for i, it := range items {
		out[i] = modmatch.Item{ID: it.ID, Name: it.Name, Content: it.Content, Skills: it.Skills, Chair: it.Chair}
	}
	return out
}

func toVectors(vv []vectorInput) []modmatch.LabeledVector {
	out := make([]modmatch.LabeledVector, len(vv))
	for i, v := range vv {
		out[i] = modmatch.LabeledVector{ID: v.ID, Vector: v.Vector}
	}
	return out
}

func toOutput(recs []modmatch.Recommendation) []recommendationOutput {
	out := make([]recommendationOutput, len(recs))
	for i, r := range recs {
		srcs := make(map[string]float64, len(r.Sources))
		for _, s := range r.Sources {
			srcs[s.SourceID] = s.Score
		}
		out[i] = recommendationOutput{ItemID: r.ItemID, Score: r.Score, Frequency: r.Frequency, Sources: srcs}
	}
	return out
}
