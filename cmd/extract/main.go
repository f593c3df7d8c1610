// Command extract runs location extraction against the configured LLM provider for
// one or more job postings and prints the results.
// Usage: go run ./cmd/extract [-country US] [-model gpt-4o-mini] [-format json|csv] [-out path] posting.txt ...
// Without arguments the posting is read from stdin. When -out names a directory the
// CSV report gets a dated file name inside it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"joblocator/internal/config"
	"joblocator/internal/csvexport"
	"joblocator/internal/domain"
	"joblocator/internal/handler"
	"joblocator/internal/llm"
	_ "joblocator/internal/llm/claude"
	_ "joblocator/internal/llm/gemini"
	_ "joblocator/internal/llm/openai"
	"joblocator/internal/logger"
	"joblocator/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type posting struct {
	name string
	text string
}

func run() error {
	file := flag.String("file", "", "path to a job posting (same as a positional argument)")
	country := flag.String("country", "", "region hint (default from config)")
	model := flag.String("model", "", "model override (default from config)")
	format := flag.String("format", "json", "output format: json or csv")
	out := flag.String("out", "", "output file or directory (default: stdout)")
	timeout := flag.Duration("timeout", 90*time.Second, "deadline for each model call")
	flag.Parse()

	if *format != "json" && *format != "csv" {
		return fmt.Errorf("unsupported format %q (want json or csv)", *format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr so stdout stays machine-readable.
	zl, err := logger.New(cfg.Log.Level, "json")
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	paths := flag.Args()
	if *file != "" {
		paths = append([]string{*file}, paths...)
	}
	postings, err := readPostings(paths)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}
	svc, err := service.NewExtractionService(client, cfg.Extractor, zl)
	if err != nil {
		return fmt.Errorf("initializing extraction service: %w", err)
	}

	rows := make([]csvexport.Row, 0, len(postings))
	for _, p := range postings {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		result, err := svc.Extract(ctx, domain.ExtractionRequest{
			Text:    p.text,
			Country: *country,
			Model:   *model,
		})
		cancel()
		if err != nil {
			if len(postings) == 1 {
				return fmt.Errorf("extracting location: %w", err)
			}
			zl.Warn("skipping posting", zap.String("posting", p.name), zap.Error(err))
		}
		rows = append(rows, csvexport.Row{Posting: p.name, Result: result})
	}

	w, closeOut, err := openOutput(*out, *format, postings[0].name)
	if err != nil {
		return err
	}
	defer closeOut()

	if *format == "csv" {
		return writeCSV(w, rows, *out != "")
	}
	return writeJSON(w, rows)
}

func readPostings(paths []string) ([]posting, error) {
	if len(paths) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []posting{{name: "stdin", text: string(b)}}, nil
	}
	postings := make([]posting, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		postings = append(postings, posting{name: filepath.Base(path), text: string(b)})
	}
	return postings, nil
}

func openOutput(out, format, firstPosting string) (io.Writer, func(), error) {
	if out == "" {
		return os.Stdout, func() {}, nil
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		batch := strings.TrimSuffix(firstPosting, filepath.Ext(firstPosting))
		name := csvexport.BuildFilename(batch, time.Now())
		if format == "json" {
			name = strings.TrimSuffix(name, ".csv") + ".json"
		}
		out = filepath.Join(out, name)
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", out, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeCSV(w io.Writer, rows []csvexport.Row, toFile bool) error {
	if toFile {
		if _, err := w.Write(csvexport.BOM); err != nil {
			return err
		}
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteRows(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, rows []csvexport.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	responses := make([]interface{}, 0, len(rows))
	for _, r := range rows {
		if r.Result == nil {
			responses = append(responses, handler.ErrorResponse{
				Error: &handler.APIError{Code: "VALIDATION_ERROR", Message: r.Posting + ": job description is empty"},
			})
			continue
		}
		responses = append(responses, handler.NewExtractResponse(r.Result))
	}
	if len(responses) == 1 {
		return enc.Encode(responses[0])
	}
	return enc.Encode(responses)
}
