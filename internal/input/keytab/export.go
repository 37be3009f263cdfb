package keytab

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an export format.
type Format string

// Export formats.
const (
	FormatKeytab Format = "keytab"
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatKeytab, FormatText, FormatJSON, FormatYAML, FormatTOML}

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatKeytab, FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// TranslatorRecord is the serialized form of a Translator.
type TranslatorRecord struct {
	Name        string        `json:"name" yaml:"name" toml:"name"`
	Description string        `json:"description" yaml:"description" toml:"description"`
	Path        string        `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Entries     []EntryRecord `json:"entries" yaml:"entries" toml:"entries"`
}

// EntryRecord is the serialized form of an Entry.
type EntryRecord struct {
	Condition    string `json:"condition" yaml:"condition" toml:"condition"`
	Key          string `json:"key" yaml:"key" toml:"key"`
	KeyCode      int32  `json:"keyCode" yaml:"keyCode" toml:"keyCode"`
	Modifiers    string `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
	ModifierMask string `json:"modifierMask,omitempty" yaml:"modifierMask,omitempty" toml:"modifierMask,omitempty"`
	State        string `json:"state,omitempty" yaml:"state,omitempty" toml:"state,omitempty"`
	StateMask    string `json:"stateMask,omitempty" yaml:"stateMask,omitempty" toml:"stateMask,omitempty"`
	Command      string `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Text         string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
}

// Record converts a translator to its serialized form.
func (t *Translator) Record() TranslatorRecord {
	rec := TranslatorRecord{
		Name:        t.Name,
		Description: t.Description,
		Path:        t.Path,
		Entries:     make([]EntryRecord, 0, len(t.Entries)),
	}
	for _, e := range t.Entries {
		rec.Entries = append(rec.Entries, e.Record())
	}
	return rec
}

// Record converts an entry to its serialized form. Text is escaped.
func (e Entry) Record() EntryRecord {
	rec := EntryRecord{
		Condition:    e.ConditionString(),
		Key:          e.KeyCode.String(),
		KeyCode:      int32(e.KeyCode),
		Modifiers:    e.Modifiers.String(),
		ModifierMask: e.ModifierMask.String(),
		State:        e.State.String(),
		StateMask:    e.StateMask.String(),
		Command:      e.Command.String(),
	}
	if e.Command == NoCommand {
		rec.Text = e.EscapedText()
	}
	return rec
}

// Export writes t to w in the given format.
func Export(w io.Writer, t *Translator, format Format) error {
	switch format {
	case FormatKeytab:
		_, err := t.WriteTo(w)
		return err
	case FormatText:
		return exportText(w, t)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Record())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.Record()); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(t.Record())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// exportText writes an aligned two-column listing.
func exportText(w io.Writer, t *Translator) error {
	width := 0
	for _, e := range t.Entries {
		if n := runewidth.StringWidth(e.ConditionString()); n > width {
			width = n
		}
	}

	if _, err := fmt.Fprintf(w, "%s: %s (%d entries)\n", t.Name, t.Description, len(t.Entries)); err != nil {
		return err
	}
	for _, e := range t.Entries {
		cond := runewidth.FillRight(e.ConditionString(), width)
		if _, err := fmt.Fprintf(w, "  %s  %s\n", cond, e.ResultString()); err != nil {
			return err
		}
	}
	return nil
}
