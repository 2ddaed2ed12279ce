// Package linear runs a scripted, line-by-line overlay session for pipes and CI.
package linear

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/margin/internal/adapters/dom"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/engine/overlay"
	"go.trai.ch/margin/internal/ui/output"
	"go.trai.ch/margin/internal/ui/style"
	"go.trai.ch/zerr"
)

// ErrUnknownCommand is returned for script lines that are not session commands.
var ErrUnknownCommand = zerr.New("unknown command")

var errNoMarker = zerr.New("no such marker")

// Loop is the event loop the session drains between commands.
type Loop interface {
	RunPending() int
	Wait(ctx context.Context) error
}

// Session reads commands, applies them to the page and prints what the page shows.
type Session struct {
	doc    *dom.Document
	engine *overlay.Engine
	loop   Loop
	w      io.Writer
	out    *termenv.Output

	notices int
}

// NewSession creates a Session printing to w.
func NewSession(doc *dom.Document, engine *overlay.Engine, loop Loop, w io.Writer) *Session {
	return &Session{
		doc:    doc,
		engine: engine,
		loop:   loop,
		w:      w,
		out:    output.NewWithProfile(w, output.ColorProfileANSI),
	}
}

// Run starts the overlay, executes every command read from r and closes the overlay.
// Failing commands are reported and the script goes on.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	s.engine.Start(ctx)
	if err := s.settle(ctx); err != nil {
		return err
	}
	defer s.engine.Close()

	title := s.doc.Title()
	if title == "" {
		title = s.engine.Page()
	}
	s.printf("%s %s\n", s.out.String(style.Pencil+" "+title).Bold(), s.faint(s.engine.Page()))
	s.report()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s.printf("%s %s\n", s.faint(style.Cursor), line)
		quit, err := s.exec(line)
		if err != nil {
			s.printf("%s %s\n", s.out.String(style.Cross).Foreground(termenv.ANSIRed), err.Error())
		}
		if err := s.settle(ctx); err != nil {
			return err
		}
		s.report()
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return zerr.Wrap(err, "failed to read commands")
	}
	return nil
}

func (s *Session) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "toggle":
		toggle, _, _ := s.doc.Toolbar()
		s.doc.Click(toggle, 0, 0)
	case "list":
		_, list, _ := s.doc.Toolbar()
		s.doc.Click(list, 0, 0)
	case "click":
		return false, s.click(args)
	case "type":
		if len(args) < 1 {
			return false, zerr.New("usage: type <field> <text>")
		}
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(line, cmd)), args[0]))
		return false, s.doc.Type(args[0], text)
	case "save":
		return false, s.doc.Press(domain.ActionConfirm)
	case "cancel", "close":
		return false, s.doc.Press(domain.ActionCancel)
	case "backdrop":
		return false, s.doc.ClickBackdrop()
	case "escape":
		s.doc.KeyDown(domain.KeyEscape)
	case "marker":
		return false, s.marker(args)
	case "show":
		s.show()
	case "quit", "exit":
		return true, nil
	default:
		return false, zerr.Wrap(ErrUnknownCommand, cmd)
	}
	return false, nil
}

func (s *Session) click(args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return zerr.New("usage: click <locator> [x y]")
	}
	el, ok := s.doc.Find(args[0])
	if !ok {
		return zerr.Wrap(domain.ErrNoElementMatch, args[0])
	}

	pos := s.doc.Offset(el)
	if len(args) == 3 {
		x, errX := strconv.ParseFloat(args[1], 64)
		y, errY := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil {
			return zerr.New("coordinates must be numbers")
		}
		pos = domain.Position{X: x, Y: y}
	}
	s.doc.Click(el, pos.X, pos.Y)
	return nil
}

func (s *Session) marker(args []string) error {
	markers := s.doc.Markers()
	if len(args) != 1 {
		return zerr.New("usage: marker <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(markers) {
		return zerr.Wrap(errNoMarker, args[0])
	}
	m := markers[n-1]
	s.doc.Click(m.Element, m.Position.X, m.Position.Y)
	return nil
}

func (s *Session) show() {
	markers := s.doc.Markers()
	if len(markers) == 0 {
		s.printf("  %s\n", s.faint("no markers"))
		return
	}
	for i, m := range markers {
		s.printf("  %d. %s (%g, %g) %s\n", i+1, style.Bubble, m.Position.X, m.Position.Y, m.Preview)
	}
}

// settle drains the loop until no storage call is outstanding.
func (s *Session) settle(ctx context.Context) error {
	for s.loop.RunPending(); s.engine.InFlight() > 0; s.loop.RunPending() {
		if err := s.loop.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) report() {
	notices := s.doc.Notices()
	for _, n := range notices[s.notices:] {
		s.printf("%s %s\n", s.out.String(style.Warning).Foreground(termenv.ANSIYellow).Bold(), n)
	}
	s.notices = len(notices)

	if dlg, values, ok := s.doc.Dialog(); ok {
		s.printDialog(dlg, values)
	}

	state, _ := s.doc.ToolbarState()
	mode := s.faint("browsing")
	if state.Active {
		mode = s.out.String("annotating").Foreground(termenv.ANSIGreen).String()
	}
	s.printf("  [%s] %s %s\n", mode, style.Bubble, s.doc.Counter())
}

func (s *Session) printDialog(dlg domain.Dialog, values domain.FormValues) {
	bar := s.faint("│")
	s.printf("  %s %s\n", s.faint("┌"), s.out.String(dlg.Title).Bold())

	switch {
	case dlg.Kind == domain.DialogList && len(dlg.Body) == 0:
		s.printf("  %s %s\n", bar, s.faint(dlg.Empty))
	case dlg.Kind == domain.DialogList:
		for i, item := range dlg.Body {
			s.printf("  %s %d. %s\n", bar, i+1, item)
		}
	default:
		for _, p := range dlg.Body {
			s.printf("  %s %s\n", bar, p)
		}
	}

	for _, f := range dlg.Fields {
		v := values[f.Name]
		if v == "" {
			v = s.faint(f.Placeholder)
		}
		s.printf("  %s %s: %s\n", bar, f.Name, v)
	}

	labels := make([]string, 0, len(dlg.Actions))
	for _, a := range dlg.Actions {
		labels = append(labels, "["+a.Label+"]")
	}
	s.printf("  %s %s\n", s.faint("└"), strings.Join(labels, " "))
}

func (s *Session) faint(text string) string {
	return s.out.String(text).Faint().String()
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.w, format, args...)
}
