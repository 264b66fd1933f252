// Package feed re-scores NVD 1.1 JSON vulnerability feeds.
//
// A feed file (plain, gzip, or zstd compressed) is read in full and iterated
// CVE by CVE. Each entry's primary v3.1 vector is parsed and scored with the
// engine; rejected entries, entries without a vector, and entries whose
// vector does not parse are counted and skipped.
package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/quay/cvsscalc/cvss"
	"github.com/quay/cvsscalc/internal/zreader"
)

// Entry is one scored feed item.
type Entry struct {
	ID     string            `json:"id"`
	Result *cvss.ScoreResult `json:"result"`
}

// Loader is an iterator over a feed's scorable entries.
//
// Users should call Next until it reports false, then check for errors via
// Err.
type Loader struct {
	ctx     context.Context
	items   []gjson.Result
	e       *Entry
	skipped int
}

// NewLoader reads the whole feed out of r.
func NewLoader(ctx context.Context, r io.Reader) (*Loader, error) {
	zr, err := zreader.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("feed: opening input: %w", err)
	}
	defer zr.Close()
	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("feed: reading input: %w", err)
	}
	doc := gjson.ParseBytes(b)
	items := doc.Get("CVE_Items")
	if !items.Exists() || !items.IsArray() {
		return nil, fmt.Errorf("feed: not an NVD 1.1 feed: missing CVE_Items")
	}
	return &Loader{ctx: ctx, items: items.Array()}, nil
}

// Next reports whether there's an Entry to be processed.
func (l *Loader) Next() bool {
	for len(l.items) > 0 {
		item := l.items[0]
		l.items = l.items[1:]

		id := item.Get("cve.CVE_data_meta.ID").String()
		if id == "" {
			l.skip("", "no CVE ID")
			continue
		}
		desc := item.Get(`cve.description.description_data.#(lang=="en").value`).String()
		if strings.HasPrefix(desc, "** REJECT **") {
			l.skip(id, "rejected")
			continue
		}
		vec := item.Get("impact.baseMetricV3.cvssV3.vectorString").String()
		if vec == "" {
			l.skip(id, "no v3 vector")
			continue
		}
		m, err := cvss.Parse(vec)
		if err != nil {
			l.skip(id, err.Error())
			continue
		}
		l.e = &Entry{ID: id, Result: cvss.Score(m)}
		return true
	}
	l.e = nil
	return false
}

// Entry returns the latest loaded Entry.
func (l *Loader) Entry() *Entry {
	return l.e
}

// Skipped reports the number of items passed over so far.
func (l *Loader) Skipped() int {
	return l.skipped
}

// Err is the latest encountered error.
//
// The whole feed is read and validated by [NewLoader], and problems with
// individual items are skips, so iteration itself cannot fail; Err is kept
// for the iterate-then-check shape and always reports nil.
func (l *Loader) Err() error {
	return nil
}

func (l *Loader) skip(id, reason string) {
	l.skipped++
	slog.DebugContext(l.ctx, "skipping item", "cve", id, "reason", reason)
}
