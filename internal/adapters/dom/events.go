package dom

import (
	"strings"

	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
)

var (
	// ErrNoDialog is returned by form input operations when no dialog is open.
	ErrNoDialog = zerr.New("no dialog is open")
	// ErrUnknownField is returned when typing into a field the dialog does not have.
	ErrUnknownField = zerr.New("dialog has no such field")
	// ErrNoAction is returned when pressing a button the dialog does not have.
	ErrNoAction = zerr.New("dialog has no such action")
)

// Click dispatches a click on target at page coordinates x, y. Capture listeners
// run first; unless one of them suppresses the event, the click reaches the
// handler of the target or its nearest ancestor that has one.
func (d *Document) Click(target Element, x, y float64) *domain.ClickEvent {
	ev := &domain.ClickEvent{Target: target, X: x, Y: y}
	for _, l := range d.snapshotListeners() {
		if l.ClickCapture != nil {
			l.ClickCapture(ev)
		}
	}
	if ev.Suppressed() || target.n == nil {
		return ev
	}

	if fn, ok := d.backdrops[target.n]; ok {
		fn()
		return ev
	}
	for n := target.n; n != nil; n = n.Parent {
		if fn, ok := d.clicks[n]; ok {
			fn()
			break
		}
	}
	return ev
}

// KeyDown dispatches a key press to the listeners.
func (d *Document) KeyDown(key string) {
	for _, l := range d.snapshotListeners() {
		if l.KeyDown != nil {
			l.KeyDown(domain.KeyEvent{Key: key})
		}
	}
}

// Dialog returns the open dialog and its current input.
func (d *Document) Dialog() (domain.Dialog, domain.FormValues, bool) {
	if d.dialog == nil {
		return domain.Dialog{}, nil, false
	}
	return d.dialog.dialog, d.dialog.snapshot(), true
}

// DialogElement returns the root node of the open dialog.
func (d *Document) DialogElement() (Element, bool) {
	if d.dialog == nil {
		return Element{}, false
	}
	return Element{n: d.dialog.node}, true
}

// Type replaces the input of a field of the open dialog.
func (d *Document) Type(field, text string) error {
	if d.dialog == nil {
		return ErrNoDialog
	}
	in, ok := d.dialog.inputs[field]
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnknownField, field), "field", field)
	}
	d.dialog.values[field] = text
	writeValue(in, text)
	return nil
}

// Focused returns the name of the focused field of the open dialog.
func (d *Document) Focused() (string, bool) {
	if d.dialog == nil || len(d.dialog.dialog.Fields) == 0 {
		return "", false
	}
	return d.dialog.dialog.Fields[d.dialog.focus].Name, true
}

// FocusNext moves the focus to the next field, wrapping around.
func (d *Document) FocusNext() {
	if d.dialog == nil || len(d.dialog.dialog.Fields) == 0 {
		return
	}
	d.dialog.focus = (d.dialog.focus + 1) % len(d.dialog.dialog.Fields)
}

// Input appends text to the focused field.
func (d *Document) Input(text string) {
	if field, ok := d.Focused(); ok {
		_ = d.Type(field, d.dialog.values[field]+text)
	}
}

// Backspace deletes the last character of the focused field.
func (d *Document) Backspace() {
	field, ok := d.Focused()
	if !ok {
		return
	}
	r := []rune(d.dialog.values[field])
	if len(r) > 0 {
		_ = d.Type(field, string(r[:len(r)-1]))
	}
}

// Press clicks the first button of the open dialog with the given kind.
func (d *Document) Press(kind domain.ActionKind) error {
	if d.dialog == nil {
		return ErrNoDialog
	}
	for i, a := range d.dialog.dialog.Actions {
		if a.Kind == kind {
			d.Click(Element{n: d.dialog.buttons[i]}, 0, 0)
			return nil
		}
	}
	return ErrNoAction
}

// ClickBackdrop clicks the open dialog's backdrop.
func (d *Document) ClickBackdrop() error {
	if d.dialog == nil {
		return ErrNoDialog
	}
	d.Click(Element{n: d.dialog.node}, 0, 0)
	return nil
}

// ToolbarState returns what the toolbar shows, if it is mounted.
func (d *Document) ToolbarState() (domain.ToolbarState, bool) {
	return d.state, d.toolbar != nil
}

// Toolbar returns the toolbar controls: the mode toggle and the list trigger.
func (d *Document) Toolbar() (toggle, list Element, ok bool) {
	if d.toolbar == nil {
		return Element{}, Element{}, false
	}
	return Element{n: d.toggle}, Element{n: d.counter.Parent}, true
}

// Counter returns the text of the count display.
func (d *Document) Counter() string {
	if d.counter == nil {
		return ""
	}
	return strings.TrimSpace(textContent(d.counter))
}

// MarkerView is a mounted marker.
type MarkerView struct {
	Element  Element
	Position domain.Position
	Preview  string
}

// Markers returns the mounted markers in mount order.
func (d *Document) Markers() []MarkerView {
	out := make([]MarkerView, 0, len(d.markers))
	for _, m := range d.markers {
		out = append(out, MarkerView{Element: Element{n: m.node}, Position: m.marker.Position, Preview: m.marker.Preview})
	}
	return out
}

// Notices returns every notice shown so far.
func (d *Document) Notices() []string {
	out := make([]string, len(d.notices))
	copy(out, d.notices)
	return out
}

func (d *Document) snapshotListeners() []domain.Listeners {
	out := make([]domain.Listeners, 0, len(d.listeners))
	for _, l := range d.listeners {
		out = append(out, *l)
	}
	return out
}

func writeValue(in *html.Node, text string) {
	if in.Data == "textarea" {
		setText(in, text)
		return
	}
	setAttr(in, "value", text)
}
