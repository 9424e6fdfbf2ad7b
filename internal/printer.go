package internal

import (
	"encoding/json"
	"fmt"
	"io"
)

// JsonPrinter writes one JSON document per line and keeps the first error.
type JsonPrinter struct {
	W        io.Writer
	Indent   bool
	AccError error
	count    int
}

func (p *JsonPrinter) Print(data any, show bool) {
	if !show || p.AccError != nil {
		return
	}
	var out []byte
	var err error
	if p.Indent {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		p.AccError = fmt.Errorf("marshaling %T: %w", data, err)
		return
	}
	_, p.AccError = fmt.Fprintln(p.W, string(out))
	p.count++
}

// Printed returns the number of documents written.
func (p *JsonPrinter) Printed() int {
	return p.count
}

func (p *JsonPrinter) Error() error {
	return p.AccError
}
