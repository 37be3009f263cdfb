package keytab

import "fmt"

// DiagnosticKind categorizes a diagnostic.
type DiagnosticKind int

const (
	// DiagUnparseableLine reports a non-blank line that is neither a title
	// nor a key line.
	DiagUnparseableLine DiagnosticKind = iota

	// DiagUnknownItem reports a sequence item that is not a modifier, a state
	// flag, or a key name.
	DiagUnknownItem

	// DiagUnknownCommand reports a command name that is not recognized.
	DiagUnknownCommand

	// DiagExtraKeyCodes reports a key name that resolved to several keys;
	// only the first is kept.
	DiagExtraKeyCodes

	// DiagDuplicateKey reports a sequence naming more than one key; the
	// last one is kept.
	DiagDuplicateKey
)

// String returns the kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnparseableLine:
		return "unparseable-line"
	case DiagUnknownItem:
		return "unknown-item"
	case DiagUnknownCommand:
		return "unknown-command"
	case DiagExtraKeyCodes:
		return "extra-key-codes"
	case DiagDuplicateKey:
		return "duplicate-key"
	default:
		return "unknown"
	}
}

// Diagnostic describes a data-quality problem found while reading.
type Diagnostic struct {
	// Kind categorizes the problem.
	Kind DiagnosticKind

	// Line is the 1-based line number, or 0 when not read from a source.
	Line int

	// Text is the offending line, item, or command.
	Text string

	// Message is a human-readable description.
	Message string
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", d.Line, d.Message, d.Text)
	}
	return fmt.Sprintf("%s: %q", d.Message, d.Text)
}

// DiagnosticSink receives diagnostics. A nil sink discards them.
type DiagnosticSink func(Diagnostic)

// DiscardDiagnostics is a sink that drops every diagnostic.
func DiscardDiagnostics(Diagnostic) {}

// CollectDiagnostics returns a sink that appends to the returned slice.
func CollectDiagnostics() (DiagnosticSink, *[]Diagnostic) {
	var diags []Diagnostic
	return func(d Diagnostic) {
		diags = append(diags, d)
	}, &diags
}

func (s DiagnosticSink) emit(kind DiagnosticKind, text, message string) {
	if s == nil {
		return
	}
	s(Diagnostic{Kind: kind, Text: text, Message: message})
}

// atLine returns a sink that stamps diagnostics with a line number.
func (s DiagnosticSink) atLine(line int) DiagnosticSink {
	if s == nil {
		return nil
	}
	return func(d Diagnostic) {
		if d.Line == 0 {
			d.Line = line
		}
		s(d)
	}
}
