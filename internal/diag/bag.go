package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics up to a cap. It grows monotonically: items are
// only ever appended, never removed, for the lifetime of one run.
//
// The cap bounds storage only. Severity counts are recorded for every Add,
// so HasErrors stays true even when the error itself arrived after the cap
// was reached; an over-cap diagnostic can be dropped from display, never
// suppressed from the run's outcome.
type Bag struct {
	items   []Diagnostic
	max     uint16
	errs    int
	warns   int
	dropped int
}

func NewBag(maxItems int) *Bag {
	capped, err := safecast.Conv[uint16](maxItems)
	if err != nil {
		panic(fmt.Errorf("bag cap overflow: %w", err))
	}
	return &Bag{
		items: make([]Diagnostic, 0, maxItems),
		max:   capped,
	}
}

// Add records a diagnostic. Severity is counted unconditionally; the item
// itself is stored only while under the cap. Returns false if the item was
// not stored.
func (b *Bag) Add(d Diagnostic) bool {
	switch {
	case d.Severity.Fatal():
		b.errs++
	case d.Severity == SevWarning:
		b.warns++
	}
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll records every diagnostic in order. Items past the cap are dropped
// from storage but still counted.
func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		b.Add(d)
	}
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any diagnostic with Severity >= Error was ever
// added, stored or not.
func (b *Bag) HasErrors() bool {
	return b.errs > 0
}

// HasWarnings reports whether any diagnostic with Severity >= Warning was
// ever added, stored or not.
func (b *Bag) HasWarnings() bool {
	return b.warns > 0 || b.errs > 0
}

// ErrorCount returns the number of error-severity diagnostics added.
func (b *Bag) ErrorCount() int {
	return b.errs
}

// WarningCount returns the number of warning-severity diagnostics added.
func (b *Bag) WarningCount() int {
	return b.warns
}

// Dropped returns how many diagnostics were not stored due to the cap.
func (b *Bag) Dropped() int {
	return b.dropped
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the stored diagnostics.
// Do not modify the returned slice; it aliases the Bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from another Bag, growing max if needed and
// carrying over its severity and drop counts.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	total, err := safecast.Conv[uint16](newTotal)
	if err != nil {
		panic(fmt.Errorf("bag merge overflow: %w", err))
	}
	if total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
	b.errs += other.errs
	b.warns += other.warns
	b.dropped += other.dropped
}

// Sort orders diagnostics by file, line, column, severity (desc), code (asc)
// for stable, deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Pos.Line != dj.Pos.Line {
			return di.Pos.Line < dj.Pos.Line
		}
		if di.Pos.Col != dj.Pos.Col {
			return di.Pos.Col < dj.Pos.Col
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
