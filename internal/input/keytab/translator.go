package keytab

import (
	"fmt"
	"io"

	"github.com/dshills/keytab/internal/input/key"
)

// Translator is a fully read keyboard translator.
type Translator struct {
	// Name identifies the translator, usually the file name without extension.
	Name string

	// Description is the title line text.
	Description string

	// Path is the file the translator was loaded from, if any.
	Path string

	// Entries holds the decoded key lines in file order.
	Entries []Entry
}

// ReadTranslator reads every entry from r.
func ReadTranslator(name string, r io.Reader, opts ...Option) (*Translator, error) {
	reader := NewReader(r, opts...)
	t := &Translator{
		Name:        name,
		Description: reader.Description(),
		Entries:     reader.Entries(),
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reading keyboard translator %q: %w", name, err)
	}
	return t, nil
}

// IsEmpty returns true if the translator has no entries.
func (t *Translator) IsEmpty() bool {
	return len(t.Entries) == 0
}

// EntriesForKey returns the entries bound to a key, in file order.
func (t *Translator) EntriesForKey(code key.Code) []Entry {
	var entries []Entry
	for _, e := range t.Entries {
		if e.KeyCode == code {
			entries = append(entries, e)
		}
	}
	return entries
}

// WriteTo writes the translator in keyboard translator syntax.
func (t *Translator) WriteTo(w io.Writer) (int64, error) {
	tw := NewWriter(w)
	if err := tw.WriteHeader(t.Description); err != nil {
		return tw.Written(), err
	}
	for _, e := range t.Entries {
		if err := tw.WriteEntry(e); err != nil {
			return tw.Written(), err
		}
	}
	return tw.Written(), nil
}
