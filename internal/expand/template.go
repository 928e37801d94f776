package expand

import (
	"regexp"
	"strings"
)

// placeholderRegex matches `${name}` where name is a word.
var placeholderRegex = regexp.MustCompile(`\$\{(\w+)\}`)

// segment is either literal text or a reference to a slot.
type segment struct {
	text string
	slot int // -1 for literal text
}

// Template is a compiled template. Slots are numbered in the order their
// placeholder first appears in the text; repeated placeholders share a slot.
type Template struct {
	source   string
	segments []segment
	slots    []string
}

// CompileTemplate scans text for placeholders and checks each one against the
// declared option names. The first unknown name fails the whole template.
func CompileTemplate(text string, declared []string) (*Template, error) {
	known := make(map[string]struct{}, len(declared))
	for _, name := range declared {
		known[name] = struct{}{}
	}

	t := &Template{source: text}
	slotOf := make(map[string]int)
	last := 0
	for _, loc := range placeholderRegex.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		if _, ok := known[name]; !ok {
			return nil, &UnknownPlaceholderError{Name: name}
		}

		slot, seen := slotOf[name]
		if !seen {
			slot = len(t.slots)
			slotOf[name] = slot
			t.slots = append(t.slots, name)
		}

		if loc[0] > last {
			t.segments = append(t.segments, segment{text: text[last:loc[0]], slot: -1})
		}
		t.segments = append(t.segments, segment{slot: slot})
		last = loc[1]
	}
	if last < len(text) {
		t.segments = append(t.segments, segment{text: text[last:], slot: -1})
	}
	return t, nil
}

// Source returns the template text as given.
func (t *Template) Source() string { return t.source }

// Slots returns the referenced option names in first-seen order.
func (t *Template) Slots() []string { return t.slots }

// HasPlaceholders reports whether the template references any option.
func (t *Template) HasPlaceholders() bool { return len(t.slots) > 0 }

// Render substitutes values[i] for every placeholder of slot i.
func (t *Template) Render(values []string) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.slot < 0 {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(values[seg.slot])
	}
	return b.String()
}
