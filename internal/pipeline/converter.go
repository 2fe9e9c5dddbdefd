package pipeline

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dgallion1/qbexport/internal/export"
	"github.com/dgallion1/qbexport/internal/latex"
	"github.com/dgallion1/qbexport/internal/outputs"
	"github.com/dgallion1/qbexport/internal/question"
)

// ErrEmptyResult means the input contained no question blocks.
var ErrEmptyResult = errors.New("no questions found in input")

// Request is a single conversion.
type Request struct {
	LaTeX  string
	Format string // export format name; "" means xlsx
	Source string // where the text came from, for logs only
}

// Result describes a stored conversion output. Body is the stored file
// opened for reading; the caller closes it.
type Result struct {
	File        outputs.File
	Body        *os.File
	ContentType string
	Extension   string
	Records     int
	Issues      []question.Issue
	ContentHash string
}

// Converter runs extract -> serialize -> store for each request.
type Converter struct {
	extractor *latex.Extractor
	store     *outputs.Store
	stats     *Stats
	log       *slog.Logger
}

func NewConverter(store *outputs.Store, stats *Stats, log *slog.Logger) *Converter {
	if stats == nil {
		stats = NewStats(time.Hour)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Converter{
		extractor: latex.NewExtractor(log),
		store:     store,
		stats:     stats,
		log:       log,
	}
}

// Convert extracts records from req.LaTeX and stores them in the requested
// format. It returns ErrEmptyResult when nothing was extracted and
// export.ErrUnknownFormat for unsupported formats.
func (c *Converter) Convert(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	hash := ContentHashHex([]byte(req.LaTeX))
	log := c.log.With("content_hash", hash[:16], "format", req.Format, "source", req.Source)

	w, err := export.ForFormat(req.Format)
	if err != nil {
		return Result{}, err
	}

	records := c.extractor.Process(req.LaTeX)
	if len(records) == 0 {
		c.stats.Record(time.Since(start).Milliseconds(), 0)
		log.Info("no questions extracted", "input_bytes", len(req.LaTeX))
		return Result{}, ErrEmptyResult
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	issues := question.ValidateAll(records)
	if len(issues) > 0 {
		log.Warn("records with issues", "issues", len(issues), "first_seq", issues[0].Seq, "first", issues[0].Message)
	}

	body, file, err := c.store.Create(w.Extension(), func(out io.Writer) error {
		return w.Write(out, records)
	})
	if err != nil {
		log.Error("store output failed", "error", err)
		return Result{}, fmt.Errorf("store %s output: %w", w.Extension(), err)
	}

	elapsed := time.Since(start)
	c.stats.Record(elapsed.Milliseconds(), len(records))
	log.Info("conversion complete",
		"records", len(records),
		"file", file.Name,
		"bytes", file.Size,
		"duration_ms", elapsed.Milliseconds(),
	)

	return Result{
		File:        file,
		Body:        body,
		ContentType: w.ContentType(),
		Extension:   w.Extension(),
		Records:     len(records),
		Issues:      issues,
		ContentHash: hash,
	}, nil
}

// Preview extracts and validates records without writing anything.
func (c *Converter) Preview(text string) ([]question.Record, []question.Issue) {
	records := c.extractor.Process(text)
	return records, question.ValidateAll(records)
}

// Stats returns the converter's rolling statistics.
func (c *Converter) Stats() *Stats {
	return c.stats
}

// Store returns the output store for direct use by API handlers.
func (c *Converter) Store() *outputs.Store {
	return c.store
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
