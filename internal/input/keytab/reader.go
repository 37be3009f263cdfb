package keytab

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/dshills/keytab/internal/input/key"
)

// ErrNoEntry is the panic value of NextEntry when no entry is available.
var ErrNoEntry = errors.New("keytab: no entry available")

// Option configures a Reader.
type Option func(*options)

type options struct {
	sink     DiagnosticSink
	resolver key.Resolver
	localize func(string) string
}

// WithDiagnostics sets the sink that receives diagnostics.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithResolver sets the key-name resolver.
func WithResolver(r key.Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}

// WithLocalizer sets the function applied once to the captured title.
func WithLocalizer(fn func(string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.localize = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		resolver: key.DefaultResolver(),
		localize: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type readerState int

const (
	seekingTitle readerState = iota
	hasEntry
	exhausted
)

// Reader reads entries from a keyboard translator source.
//
// The reader decodes one entry ahead so HasNextEntry has no side effects.
// A Reader is not safe for concurrent use.
type Reader struct {
	src  *bufio.Reader
	opts options

	description string
	next        Entry
	state       readerState

	line  int
	atEOF bool
	err   error
}

// NewReader creates a reader over src. It consumes lines up to and including
// the first title line, then decodes the first entry. Lines before the title
// are skipped.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		src:   bufio.NewReader(src),
		opts:  buildOptions(opts),
		state: seekingTitle,
	}

	for {
		line, ok := r.readLine()
		if !ok {
			break
		}
		tokens := Tokenize(line, r.opts.sink.atLine(r.line))
		if len(tokens) > 0 && tokens[0].Kind == TitleKeyword {
			r.description = r.opts.localize(tokens[1].Text)
			break
		}
	}

	r.readNext()
	return r
}

// Description returns the translator title, or "" if none was found.
func (r *Reader) Description() string {
	return r.description
}

// HasNextEntry returns true if NextEntry will return an entry.
func (r *Reader) HasNextEntry() bool {
	return r.state == hasEntry
}

// NextEntry returns the next entry and decodes the one after it.
// It panics with ErrNoEntry if HasNextEntry is false.
func (r *Reader) NextEntry() Entry {
	if r.state != hasEntry {
		panic(ErrNoEntry)
	}
	entry := r.next
	r.readNext()
	return entry
}

// Entries drains the reader and returns the remaining entries.
func (r *Reader) Entries() []Entry {
	var entries []Entry
	for r.HasNextEntry() {
		entries = append(entries, r.NextEntry())
	}
	return entries
}

// Err returns the first non-EOF error from the source. A read error ends
// the entry stream.
func (r *Reader) Err() error {
	return r.err
}

// readNext scans for the next key line and buffers its entry.
func (r *Reader) readNext() {
	for {
		line, ok := r.readLine()
		if !ok {
			break
		}
		sink := r.opts.sink.atLine(r.line)
		tokens := Tokenize(line, sink)
		if len(tokens) > 0 && tokens[0].Kind == KeyKeyword {
			r.next = decodeTokens(tokens, r.opts.resolver, sink)
			r.state = hasEntry
			return
		}
	}

	r.next = Entry{}
	r.state = exhausted
}

func (r *Reader) readLine() (string, bool) {
	if r.atEOF {
		return "", false
	}

	line, err := r.src.ReadString('\n')
	if err != nil {
		r.atEOF = true
		if !errors.Is(err, io.EOF) {
			r.err = err
		}
		if line == "" {
			return "", false
		}
	}

	r.line++
	return line, true
}

// decodeTokens builds an entry from the tokens of a key line.
func decodeTokens(tokens []Token, resolver key.Resolver, sink DiagnosticSink) Entry {
	sequence := tokens[1].Text
	entry := Entry{
		Condition: NewDecoder(resolver, sink).Decode(strings.ToLower(sequence), Condition{}),
	}

	switch payload := tokens[2]; payload.Kind {
	case OutputText:
		entry.Text = Unescape(payload.Text)
	case CommandToken:
		cmd, ok := ParseCommand(payload.Text)
		if !ok {
			sink.emit(DiagUnknownCommand, payload.Text, "command for key "+sequence+" not understood")
		}
		entry.Command = cmd
	}

	return entry
}

// ParseEntry tokenizes and decodes a single key line. It returns false if
// the line is not a key line.
func ParseEntry(line string, opts ...Option) (Entry, bool) {
	o := buildOptions(opts)
	tokens := Tokenize(line, o.sink)
	if len(tokens) == 0 || tokens[0].Kind != KeyKeyword {
		return Entry{}, false
	}
	return decodeTokens(tokens, o.resolver, o.sink), true
}

// CreateEntry builds an entry from a condition such as "Up+Shift" and a
// result. If result names a command the entry runs that command, otherwise
// result is the output text (escape sequences allowed).
func CreateEntry(condition, result string, opts ...Option) Entry {
	var b strings.Builder
	b.WriteString("keyboard \"temporary\"\nkey ")
	b.WriteString(condition)
	b.WriteString(" : ")

	if _, ok := ParseCommand(result); ok {
		b.WriteString(result)
	} else {
		b.WriteString(`"` + result + `"`)
	}

	r := NewReader(strings.NewReader(b.String()), opts...)
	if r.HasNextEntry() {
		return r.NextEntry()
	}
	return Entry{}
}
