package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keytab/internal/app"
	"github.com/dshills/keytab/internal/input/key"
	"github.com/dshills/keytab/internal/input/keytab"
)

// newProbeCmd creates the probe subcommand.
func newProbeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe [name|path]",
		Short: "Show the bindings for each key pressed",
		Long: `Open a full-screen view that decodes each key press and lists the
translator entries bound to that key. Entries whose modifiers match the
pressed ones are marked with '*'. Press Ctrl+C to quit.

Without an argument on a terminal, the translator is picked from a list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			} else if term.IsTerminal(int(os.Stdin.Fd())) {
				name, err = pickTranslator(application)
				if err != nil {
					return err
				}
			}

			t, err := application.Translator(name)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			return newProbe(screen, t).run()
		},
	}

	return cmd
}

// pickTranslator asks for one of the translators in the search paths.
func pickTranslator(application *app.Application) (string, error) {
	names := application.Loader().Names()
	if len(names) == 0 {
		return "", nil
	}

	prompt := promptui.Select{
		Label: "Select a keyboard translator",
		Items: names,
		Size:  10,
	}
	for i, name := range names {
		if name == application.Config().Translators.Default {
			prompt.CursorPos = i
		}
	}

	_, result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return "", errors.New("cancelled")
		}
		return "", err
	}
	return result, nil
}

// probe renders the bindings of the last key pressed.
type probe struct {
	screen     tcell.Screen
	translator *keytab.Translator
	lines      []string
}

func newProbe(screen tcell.Screen, t *keytab.Translator) *probe {
	return &probe{
		screen:     screen,
		translator: t,
		lines:      []string{"press a key"},
	}
}

// run handles screen events until Ctrl+C or the screen is finalized.
func (p *probe) run() error {
	p.draw()
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
			p.draw()
		case *tcell.EventKey:
			kev := key.EventFromTcell(ev)
			if kev.Code == 'C' && kev.Modifiers == key.ModCtrl {
				return nil
			}
			p.lines = describe(p.translator, kev)
			p.draw()
		}
	}
}

func (p *probe) draw() {
	p.screen.Clear()

	header := fmt.Sprintf("%s: %s  (Ctrl+C to quit)", p.translator.Name, p.translator.Description)
	p.put(0, 0, header, tcell.StyleDefault.Bold(true))

	_, height := p.screen.Size()
	for i, line := range p.lines {
		y := i + 2
		if y >= height {
			break
		}
		p.put(0, y, line, tcell.StyleDefault)
	}
	p.screen.Show()
}

// put writes s at (x, y), advancing by display width.
func (p *probe) put(x, y int, s string, style tcell.Style) {
	width, _ := p.screen.Size()
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			return
		}
		p.screen.SetContent(x, y, r, nil, style)
		x += w
	}
}

// describe lists the entries bound to a key press. Entries whose
// modifier condition holds for the pressed modifiers are marked.
func describe(t *keytab.Translator, ev key.Event) []string {
	lines := []string{"pressed: " + ev.String(), ""}

	entries := t.EntriesForKey(ev.Code)
	if len(entries) == 0 {
		return append(lines, "no entries for "+ev.Code.String())
	}

	for _, e := range entries {
		mark := " "
		if modifiersMatch(e.Condition, ev.Modifiers) {
			mark = "*"
		}
		line := mark + " " + e.String()
		if e.Command == keytab.NoCommand {
			line += "  => " + keytab.Escape(e.Output(ev.Modifiers))
		}
		lines = append(lines, line)
	}
	return lines
}

// modifiersMatch checks the mentioned modifiers and the AnyModifier flag.
// Other state flags depend on the terminal and are not checked.
func modifiersMatch(c keytab.Condition, active key.Modifier) bool {
	if active&c.ModifierMask != c.Modifiers&c.ModifierMask {
		return false
	}
	if c.StateMask.Has(keytab.StateAnyModifier) {
		anyPressed := active.Without(key.ModKeypad) != key.ModNone
		return anyPressed == c.State.Has(keytab.StateAnyModifier)
	}
	return true
}
