package expand

import (
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
)

// Record is one rendered combination split into shell words.
type Record struct {
	// Index is the zero-based position of the record in odometer order.
	Index int
	// Line is the template text after substitution, before tokenizing.
	Line   string
	Tokens []string
}

// newRecord tokenizes line with shell word splitting: single quotes, double
// quotes and backslash escapes are honored, so a value containing a space
// stays one word only when the template quotes it.
func newRecord(index int, line string) (Record, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return Record{}, fmt.Errorf("record %d %q: %w", index, line, err)
	}
	return Record{Index: index, Line: line, Tokens: tokens}, nil
}

// Encoder writes records to a stream.
type Encoder interface {
	Encode(w io.Writer, r Record) error
}

// NullEncoder joins the tokens of a record with NUL and terminates the record
// with NUL, the format `xargs -0` reads.
type NullEncoder struct{}

func (NullEncoder) Encode(w io.Writer, r Record) error {
	buf := make([]byte, 0, len(r.Line)+len(r.Tokens)+1)
	for i, tok := range r.Tokens {
		if i > 0 {
			buf = append(buf, 0)
		}
		buf = append(buf, tok...)
	}
	buf = append(buf, 0)
	_, err := w.Write(buf)
	return err
}

// LineEncoder writes each record on its own line with the tokens quoted for
// a POSIX shell. Meant for eyeballing a sweep before running it.
type LineEncoder struct{}

func (LineEncoder) Encode(w io.Writer, r Record) error {
	_, err := io.WriteString(w, shellquote.Join(r.Tokens...)+"\n")
	return err
}
