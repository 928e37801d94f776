package expand

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/micron-ops/optexpand/internal/ctxlog"
)

// Option is a named domain. Names are taken verbatim; callers strip any flag
// prefix before building options.
type Option struct {
	Name   string
	Domain Domain
}

// Expander produces the records for a fixed set of options and a template.
type Expander struct {
	options []Option
	tmpl    *Template
	// slotOption maps template slot i to the option index feeding it.
	slotOption []int
}

// New validates options and template. All validation happens here, so an
// Expander that was created successfully can only fail while tokenizing
// substituted values or writing.
func New(options []Option, template string) (*Expander, error) {
	names := make([]string, 0, len(options))
	index := make(map[string]int, len(options))
	for i, opt := range options {
		if _, dup := index[opt.Name]; dup {
			return nil, &DuplicateOptionError{Name: opt.Name}
		}
		index[opt.Name] = i
		names = append(names, opt.Name)
	}

	tmpl, err := CompileTemplate(template, names)
	if err != nil {
		return nil, err
	}

	slotOption := make([]int, len(tmpl.Slots()))
	for i, name := range tmpl.Slots() {
		slotOption[i] = index[name]
	}

	return &Expander{
		options:    append([]Option(nil), options...),
		tmpl:       tmpl,
		slotOption: slotOption,
	}, nil
}

// Options returns the declared options in declaration order.
func (e *Expander) Options() []Option { return e.options }

// Template returns the compiled template.
func (e *Expander) Template() *Template { return e.tmpl }

// sizes returns the dimensions of the product. A template without any
// placeholder renders the same record for every combination, so it is
// emitted once, or not at all when some domain is empty.
func (e *Expander) sizes() []int {
	if !e.tmpl.HasPlaceholders() {
		for _, opt := range e.options {
			if opt.Domain.Len() == 0 {
				return []int{0}
			}
		}
		return []int{1}
	}
	sizes := make([]int, len(e.options))
	for i, opt := range e.options {
		sizes[i] = opt.Domain.Len()
	}
	return sizes
}

// Count returns the number of records Each will produce, saturating at
// math.MaxUint64.
func (e *Expander) Count() uint64 {
	total := uint64(1)
	for _, s := range e.sizes() {
		hi, lo := bits.Mul64(total, uint64(s))
		if hi != 0 {
			return math.MaxUint64
		}
		total = lo
	}
	return total
}

// Each renders every combination in odometer order and calls fn with the
// resulting record. It stops at the first error returned by fn, by
// tokenizing, or by ctx.
func (e *Expander) Each(ctx context.Context, fn func(Record) error) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Expanding combinations.", "options", len(e.options), "slots", e.tmpl.Slots(), "records", e.Count())

	odo := NewOdometer(e.sizes())
	values := make([]string, len(e.slotOption))
	n := 0
	for odo.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx := odo.Indices()
		for slot, opt := range e.slotOption {
			values[slot] = e.options[opt].Domain.Values()[idx[opt]]
		}

		rec, err := newRecord(n, e.tmpl.Render(values))
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
		n++
	}

	logger.Debug("Expansion finished.", "records", n)
	return nil
}

// Records collects every record. Convenient for tests and small products.
func (e *Expander) Records(ctx context.Context) ([]Record, error) {
	var out []Record
	err := e.Each(ctx, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WriteAll encodes the whole product into memory and writes it to w only if
// every record was produced, so a failure never leaves partial output behind.
func (e *Expander) WriteAll(ctx context.Context, w io.Writer, enc Encoder) error {
	var buf bytes.Buffer
	err := e.Each(ctx, func(r Record) error {
		return enc.Encode(&buf, r)
	})
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
