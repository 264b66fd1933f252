// Package batch scores delimited files of CVSS vectors or threat
// descriptions.
//
// The input is CSV, optionally gzip or zstd compressed. The column holding
// the vector or the description is detected from the header row, every data
// row is scored independently, and the output is the input with result
// columns appended. A row that cannot be scored is recorded in the error
// column and never aborts the run.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/quay/cvsscalc/cvss"
	"github.com/quay/cvsscalc/internal/log"
	"github.com/quay/cvsscalc/internal/zreader"
)

// ErrNoColumn is reported when no header matches a vector or description
// column and no override is configured.
var ErrNoColumn = errors.New("batch: unable to identify vector or description column")

// Generator infers a CVSS vector from a threat description. The second
// return is false when no vector could be inferred.
type Generator interface {
	Generate(desc string) (vector string, ok bool)
}

// Config controls a [Processor].
type Config struct {
	// Workers bounds the number of rows scored concurrently. Zero means
	// [runtime.GOMAXPROCS].
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
	// VectorColumn names the header of the column holding vectors,
	// overriding keyword detection.
	VectorColumn string `json:"vector_column,omitempty" yaml:"vector_column,omitempty"`
	// DescriptionColumn names the header of the column holding threat
	// descriptions, overriding keyword detection.
	DescriptionColumn string `json:"description_column,omitempty" yaml:"description_column,omitempty"`
}

// Processor runs batch scoring jobs.
type Processor struct {
	cfg Config
	gen Generator
}

// New returns a Processor. The Generator may be nil, in which case rows
// without a vector fail instead of falling back to inference.
func New(cfg Config, gen Generator) *Processor {
	return &Processor{cfg: cfg, gen: gen}
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Job       uuid.UUID `json:"job"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// Headers appended to the output, in order.
var resultHeaders = []string{
	"CVSS Vector", "Base Score", "Severity",
	"Temporal Score", "Environmental Score", "Error",
}

// Keywords identifying the interesting columns, matched against lowercased
// headers.
var (
	vectorKeywords = []string{"cvss vector", "vector"}
	descKeywords   = []string{
		"threat description", "threat", "description", "vulnerability",
		"risk description", "risk", "finding", "scenario",
	}
)

// Run reads CSV rows from in and writes them to out with result columns
// appended. Row order is preserved. The returned error covers input that
// cannot be handled at all; per-row scoring failures land in the error
// column and the Summary.
func (p *Processor) Run(ctx context.Context, in io.Reader, out io.Writer) (*Summary, error) {
	job := uuid.New()
	ctx = log.With(ctx, "component", "batch/Processor.Run", "job", job.String())
	timer := prometheus.NewTimer(runDuration)
	defer timer.ObserveDuration()

	zr, err := zreader.Reader(in)
	if err != nil {
		return nil, fmt.Errorf("batch: opening input: %w", err)
	}
	defer zr.Close()

	r := csv.NewReader(zr)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	switch {
	case errors.Is(err, nil):
	case errors.Is(err, io.EOF):
		return nil, fmt.Errorf("batch: empty input")
	default:
		return nil, fmt.Errorf("batch: reading header: %w", err)
	}

	vecCol, descCol := p.findColumns(header)
	if vecCol == -1 && descCol == -1 {
		return nil, fmt.Errorf("%w; headers: %q", ErrNoColumn, header)
	}
	slog.InfoContext(ctx, "columns identified",
		"vector", colName(header, vecCol), "description", colName(header, descCol))

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("batch: reading row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	results := make([][]string, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)
	for i := range rows {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.score(log.With(gctx, "row", i+2), rows[i], vecCol, descCol)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	w := csv.NewWriter(out)
	if err := w.Write(append(header, resultHeaders...)); err != nil {
		return nil, fmt.Errorf("batch: writing header: %w", err)
	}
	s := Summary{Job: job, Total: len(rows)}
	for i, rec := range rows {
		res := results[i]
		if res[len(res)-1] == "" {
			s.Succeeded++
			rowCounter.WithLabelValues("succeeded").Inc()
		} else {
			s.Failed++
			rowCounter.WithLabelValues("failed").Inc()
		}
		if err := w.Write(append(rec, res...)); err != nil {
			return nil, fmt.Errorf("batch: writing row %d: %w", i+2, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("batch: flushing output: %w", err)
	}
	slog.InfoContext(ctx, "batch done",
		"total", s.Total, "succeeded", s.Succeeded, "failed", s.Failed)
	return &s, nil
}

// Score produces the result columns for one row.
func (p *Processor) score(ctx context.Context, row []string, vecCol, descCol int) []string {
	fail := func(msg string) []string {
		slog.DebugContext(ctx, "row failed", "reason", msg)
		return []string{"", "", "", "", "", msg}
	}

	vec := strings.TrimSpace(cell(row, vecCol))
	if vec == "" {
		desc := strings.TrimSpace(cell(row, descCol))
		switch {
		case desc == "":
			return fail("no vector or description")
		case p.gen == nil:
			return fail("no vector and inference not enabled")
		}
		v, ok := p.gen.Generate(desc)
		if !ok {
			return fail("could not infer a vector")
		}
		vec = v
	}

	m, err := cvss.Parse(vec)
	if err != nil {
		return fail(err.Error())
	}
	r := cvss.Score(m)

	num := func(f *float64) string {
		if f == nil {
			return ""
		}
		return strconv.FormatFloat(*f, 'f', 1, 64)
	}
	temporal := r.TemporalScore
	if temporal == nil {
		temporal = r.ThreatScore
	}
	return []string{
		r.Vector,
		strconv.FormatFloat(r.BaseScore, 'f', 1, 64),
		r.BaseSeverity.String(),
		num(temporal),
		num(r.EnvironmentalScore),
		"",
	}
}

// FindColumns returns the vector and description column indexes, -1 when
// absent. Explicit configuration matches headers case-insensitively and
// wins over keyword detection.
func (p *Processor) findColumns(header []string) (vecCol, descCol int) {
	vecCol, descCol = -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case p.cfg.VectorColumn != "" && h == strings.ToLower(p.cfg.VectorColumn):
			vecCol = i
		case p.cfg.DescriptionColumn != "" && h == strings.ToLower(p.cfg.DescriptionColumn):
			descCol = i
		case p.cfg.VectorColumn == "" && vecCol == -1 && matchAny(h, vectorKeywords):
			vecCol = i
		case p.cfg.DescriptionColumn == "" && descCol == -1 && matchAny(h, descKeywords):
			descCol = i
		}
	}
	return vecCol, descCol
}

func matchAny(header string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func colName(header []string, i int) string {
	if i < 0 {
		return "(none)"
	}
	return header[i]
}
