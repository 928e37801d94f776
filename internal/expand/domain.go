package expand

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tells how a domain was declared.
type Kind int

const (
	KindSingleton Kind = iota
	KindEnumerated
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindSingleton:
		return "singleton"
	case KindEnumerated:
		return "enumerated"
	case KindRange:
		return "range"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Delimiter separates the alternatives of an enumerated domain spec.
const Delimiter = "|"

// rangeRegex matches `start:end` and `start:step:end` with unsigned decimal
// literals such as `3`, `1.5`, `.5` or `2.`.
var rangeRegex = regexp.MustCompile(`^(\d+\.?\d*|\.\d+):(\d+\.?\d*|\.\d+)(?::(\d+\.?\d*|\.\d+))?$`)

// Domain is the ordered set of values one option can take.
type Domain struct {
	kind   Kind
	values []string
}

// Kind reports how the domain was declared.
func (d Domain) Kind() Kind { return d.kind }

// Values returns the domain values in enumeration order. The caller must not
// modify the returned slice.
func (d Domain) Values() []string { return d.values }

// Len returns the number of values in the domain.
func (d Domain) Len() int { return len(d.values) }

// String renders a short description for logs.
func (d Domain) String() string {
	const preview = 5
	if len(d.values) <= preview {
		return fmt.Sprintf("%s%q", d.kind, d.values)
	}
	return fmt.Sprintf("%s%q...(%d values)", d.kind, d.values[:preview], len(d.values))
}

// Singleton returns a domain holding exactly value.
func Singleton(value string) Domain {
	return Domain{kind: KindSingleton, values: []string{value}}
}

// Enumerated returns a domain holding values in the given order. The values
// are taken literally; no delimiter splitting happens here.
func Enumerated(values ...string) Domain {
	return Domain{kind: KindEnumerated, values: append([]string(nil), values...)}
}

// NewRange returns the domain start, start+step, start+2*step, ... up to and
// including end. Each value is computed as start + i*step so no rounding error
// accumulates. A start greater than end yields an empty domain.
func NewRange(start, step, end decimal.Decimal) (Domain, error) {
	if step.IsZero() {
		return Domain{}, ErrZeroStep
	}
	if step.IsNegative() {
		return Domain{}, fmt.Errorf("range step %s must be positive", step)
	}

	var values []string
	for i := int64(0); ; i++ {
		v := start.Add(step.Mul(decimal.NewFromInt(i)))
		if v.GreaterThan(end) {
			break
		}
		values = append(values, v.String())
	}
	return Domain{kind: KindRange, values: values}, nil
}

// ParseRange parses `start:end` or `start:step:end`. The boolean result is
// false when raw is not a numeric range at all.
func ParseRange(raw string) (Domain, bool, error) {
	m := rangeRegex.FindStringSubmatch(raw)
	if m == nil {
		return Domain{}, false, nil
	}

	nums := []string{m[1], m[2]}
	if m[3] != "" {
		nums = append(nums, m[3])
	}
	parsed := make([]decimal.Decimal, len(nums))
	for i, n := range nums {
		d, err := decimal.NewFromString(n)
		if err != nil {
			// Unreachable for anything the regex accepts.
			return Domain{}, true, fmt.Errorf("invalid number %q in range %q: %w", n, raw, err)
		}
		parsed[i] = d
	}

	start, step, end := parsed[0], decimal.NewFromInt(1), parsed[1]
	if len(parsed) == 3 {
		step, end = parsed[1], parsed[2]
	}

	d, err := NewRange(start, step, end)
	if err != nil {
		return Domain{}, true, fmt.Errorf("range %q: %w", raw, err)
	}
	return d, true, nil
}

// ParseDomain classifies a raw domain spec. A numeric range wins over the
// delimiter, which wins over a plain literal. There is no escape for a
// literal delimiter.
func ParseDomain(raw string) (Domain, error) {
	d, ok, err := ParseRange(raw)
	if err != nil {
		return Domain{}, err
	}
	if ok {
		return d, nil
	}

	if strings.Contains(raw, Delimiter) {
		return Enumerated(strings.Split(raw, Delimiter)...), nil
	}
	return Singleton(raw), nil
}
