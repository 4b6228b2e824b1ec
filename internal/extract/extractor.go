// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls score identifiers out of status-checked documents
// and writes them to an export file.
//
// A run opens the document store, streams every document whose nested
// status equals 1, dumps each raw document to the output writer, collects
// the top-level score_id of each one that has it, writes the table, and
// closes the store on every exit path. Problems with a single document are
// logged and never abort the run.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/scoreid-export/internal/docstore"
	"github.com/pdiddy/scoreid-export/internal/export"
	"github.com/pdiddy/scoreid-export/internal/logging"
	"github.com/pdiddy/scoreid-export/pkg/types"
)

// StatusFilter selects documents whose status check succeeded.
var StatusFilter = docstore.Filter{
	Path:  types.FieldStatusResponse + ".result.status",
	Value: 1,
}

// openSource is replaced in tests.
var openSource = docstore.Open

// Finder runs a filter query against a document collection.
type Finder interface {
	Find(ctx context.Context, f docstore.Filter) (docstore.Cursor, error)
}

// Summary holds counts from one export run.
type Summary struct {
	// Matched is the number of documents decoded from the query results.
	Matched int

	// Written is the number of rows in the output table.
	Written int

	// Skipped counts matched documents without a score_id.
	Skipped int

	// Malformed counts documents whose string status_response_json was not
	// valid JSON. They are still exported when they carry a score_id.
	Malformed int

	// Failed counts results the cursor could not decode.
	Failed int
}

// Extractor turns query results into an export table.
type Extractor struct {
	finder Finder
	log    *zap.SugaredLogger
	out    io.Writer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for per-document errors.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Extractor) { e.log = l }
}

// WithOutput sets the writer for the raw document dump and the summary line.
func WithOutput(w io.Writer) Option {
	return func(e *Extractor) { e.out = w }
}

// New creates an Extractor reading from f. Output defaults to stdout and
// logging to a no-op logger.
func New(f Finder, opts ...Option) *Extractor {
	e := &Extractor{
		finder: f,
		log:    logging.Nop(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export performs one complete run against the store described by cfg.
// The store is closed before Export returns, whether or not the run failed.
func Export(ctx context.Context, cfg types.Config, opts ...Option) (Summary, error) {
	cfg = cfg.WithDefaults()
	format, err := export.ParseFormat(string(cfg.Export.Format))
	if err != nil {
		return Summary{}, err
	}
	cfg.Export.Format = format

	e := New(nil, opts...)

	src, err := openSource(ctx, cfg.Store)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if err := src.Close(context.WithoutCancel(ctx)); err != nil {
			e.log.Errorw("Closing store", "error", err)
		}
	}()
	e.finder = src

	e.log.Infow("Querying store",
		"driver", cfg.Store.Driver,
		"filter", StatusFilter.String(),
	)
	return e.Run(ctx, cfg.Export)
}

// Run collects matching records and writes them to cfg.Path.
func (e *Extractor) Run(ctx context.Context, cfg types.ExportConfig) (Summary, error) {
	tbl, summary, err := e.Collect(ctx)
	if err != nil {
		return summary, err
	}

	path := cfg.Path
	if path == "" {
		path = types.DefaultOutputPath
	}
	if err := tbl.WriteFile(path, cfg.Format); err != nil {
		return summary, err
	}

	fmt.Fprintf(e.out, "%d records written to %s\n", summary.Written, path)
	return summary, nil
}

// Collect streams the query results into a single-column score_id table
// in the order the store returns them.
func (e *Extractor) Collect(ctx context.Context) (*export.Table, Summary, error) {
	var summary Summary

	cur, err := e.finder.Find(ctx, StatusFilter)
	if err != nil {
		return nil, summary, err
	}
	defer cur.Close(context.WithoutCancel(ctx))

	tbl := export.NewTable(types.FieldScoreID)
	for cur.Next(ctx) {
		doc, err := cur.Decode()
		if err != nil {
			e.log.Errorw("Error processing document", "error", err)
			summary.Failed++
			continue
		}
		summary.Matched++
		e.dump(doc)

		if err := CheckStatusResponse(doc); err != nil {
			e.log.Warnw("Error processing document",
				"score_id", doc[types.FieldScoreID],
				"error", err,
			)
			summary.Malformed++
		}

		rec, ok := Extract(doc)
		if !ok {
			summary.Skipped++
			continue
		}
		tbl.Append(rec.ScoreID)
	}
	if err := cur.Err(); err != nil {
		return nil, summary, fmt.Errorf("reading query results: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, summary, err
	}

	summary.Written = tbl.Len()
	return tbl, summary, nil
}

// dump prints one raw document as a JSON line.
func (e *Extractor) dump(doc types.Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		fmt.Fprintln(e.out, map[string]any(doc))
		return
	}
	fmt.Fprintln(e.out, string(data))
}

// Extract returns the record for doc, or false if doc has no score_id.
func Extract(doc types.Document) (types.ExtractedRecord, bool) {
	v, ok := doc[types.FieldScoreID]
	if !ok {
		return types.ExtractedRecord{}, false
	}
	return types.ExtractedRecord{ScoreID: v}, true
}

// CheckStatusResponse parses status_response_json when it is stored as
// text. Structured or absent values are accepted as they are.
func CheckStatusResponse(doc types.Document) error {
	text, ok := doc[types.FieldStatusResponse].(string)
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return fmt.Errorf("parsing %s: %w", types.FieldStatusResponse, err)
	}
	return nil
}
