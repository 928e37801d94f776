package expand

// Odometer walks the Cartesian product of dimensions with the given sizes.
// The last dimension changes fastest, like the rightmost wheel of an
// odometer.
type Odometer struct {
	sizes   []int
	indices []int
	started bool
	done    bool
}

// NewOdometer returns an odometer positioned before the first combination.
// A zero-sized dimension makes the product empty; no dimensions at all give
// exactly one empty combination.
func NewOdometer(sizes []int) *Odometer {
	o := &Odometer{
		sizes:   append([]int(nil), sizes...),
		indices: make([]int, len(sizes)),
	}
	for _, s := range sizes {
		if s <= 0 {
			o.done = true
		}
	}
	return o
}

// Next advances to the next combination and reports whether there is one.
func (o *Odometer) Next() bool {
	if o.done {
		return false
	}
	if !o.started {
		o.started = true
		return true
	}

	for i := len(o.indices) - 1; i >= 0; i-- {
		o.indices[i]++
		if o.indices[i] < o.sizes[i] {
			return true
		}
		o.indices[i] = 0
	}
	o.done = true
	return false
}

// Indices returns the current combination. It is only valid after Next
// returned true and is overwritten by the following call to Next.
func (o *Odometer) Indices() []int {
	return o.indices
}
