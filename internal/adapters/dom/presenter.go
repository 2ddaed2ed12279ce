package dom

import (
	"fmt"
	"strconv"

	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"golang.org/x/net/html"
)

// Ids and classes of overlay nodes.
const (
	ToolbarID     = "annotation-toolbar"
	ToggleID      = "toggle-annotation-mode"
	ListID        = "show-annotations"
	CounterID     = "annotation-count"
	DialogID      = "annotation-form-modal"
	MarkerClass   = "annotation-marker"
	FormClass     = "annotation-form"
	ConfirmClass  = "btn-confirm"
	CancelClass   = "btn-cancel"
	ActiveClass   = "active"
	markerGlyph   = "💬"
	listLabelText = "💬 "
)

type mountedMarker struct {
	node   *html.Node
	marker domain.Marker
}

type openDialog struct {
	node    *html.Node
	dialog  domain.Dialog
	values  domain.FormValues
	inputs  map[string]*html.Node
	buttons []*html.Node
	focus   int
}

// MountToolbar appends the toolbar to the body.
func (d *Document) MountToolbar(t domain.Toolbar) domain.Element {
	bar := newElement("div", "id", ToolbarID, overlayAttr, "toolbar")
	toggle := newElement("button", "id", ToggleID, "class", "annotation-btn")
	list := newElement("button", "id", ListID, "class", "annotation-btn")
	counter := newElement("span", "id", CounterID)

	list.AppendChild(&html.Node{Type: html.TextNode, Data: listLabelText})
	list.AppendChild(counter)
	bar.AppendChild(toggle)
	bar.AppendChild(list)
	d.body.AppendChild(bar)

	d.toolbar, d.toggle, d.counter = bar, toggle, counter
	d.on(toggle, t.OnToggle)
	d.on(list, t.OnList)
	d.UpdateToolbar(t.State)

	return Element{n: bar}
}

// UpdateToolbar redraws the toggle label and the counter.
func (d *Document) UpdateToolbar(s domain.ToolbarState) {
	d.state = s
	if d.toolbar == nil {
		return
	}
	setText(d.toggle, s.ToggleLabel())
	class := "annotation-btn"
	if s.Active {
		class += " " + ActiveClass
	}
	setAttr(d.toggle, "class", class)
	setText(d.counter, strconv.Itoa(s.Count))
}

// MountMarker appends a marker positioned at the annotation's page coordinates.
func (d *Document) MountMarker(m domain.Marker) domain.Element {
	n := newElement("div",
		"class", MarkerClass,
		overlayAttr, "marker",
		"style", fmt.Sprintf("left: %gpx; top: %gpx;", m.Position.X, m.Position.Y),
		"title", m.Preview,
	)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: markerGlyph})
	d.body.AppendChild(n)

	d.markers = append(d.markers, mountedMarker{node: n, marker: m})
	d.on(n, m.OnActivate)
	return Element{n: n}
}

// MountDialog appends a modal dialog. Clicking the modal root outside the form
// runs the dialog's backdrop handler.
func (d *Document) MountDialog(dlg domain.Dialog) domain.Element {
	modal := newElement("div", "id", DialogID, "class", "annotation-modal", overlayAttr, "dialog",
		"data-kind", dlg.Kind.String())
	form := newElement("div", "class", FormClass)
	modal.AppendChild(form)

	title := newElement("h3")
	setText(title, dlg.Title)
	form.AppendChild(title)

	switch {
	case dlg.Kind == domain.DialogList && len(dlg.Body) == 0:
		p := newElement("p", "class", "annotation-empty")
		setText(p, dlg.Empty)
		form.AppendChild(p)
	case dlg.Kind == domain.DialogList:
		ul := newElement("ul", "class", "annotation-list")
		for _, item := range dlg.Body {
			li := newElement("li")
			setText(li, item)
			ul.AppendChild(li)
		}
		form.AppendChild(ul)
	default:
		for _, para := range dlg.Body {
			p := newElement("p")
			setText(p, para)
			form.AppendChild(p)
		}
	}

	od := &openDialog{
		node:   modal,
		dialog: dlg,
		values: make(domain.FormValues, len(dlg.Fields)),
		inputs: make(map[string]*html.Node, len(dlg.Fields)),
	}
	for i, f := range dlg.Fields {
		var in *html.Node
		if f.Multiline {
			in = newElement("textarea", "name", f.Name, "placeholder", f.Placeholder)
		} else {
			in = newElement("input", "type", "text", "name", f.Name, "placeholder", f.Placeholder)
		}
		if f.Focus {
			setAttr(in, "autofocus", "")
			od.focus = i
		}
		od.values[f.Name] = ""
		od.inputs[f.Name] = in
		form.AppendChild(in)
	}

	if len(dlg.Actions) > 0 {
		row := newElement("div", "class", "form-actions")
		for _, a := range dlg.Actions {
			class := ConfirmClass
			if a.Kind == domain.ActionCancel {
				class = CancelClass
			}
			btn := newElement("button", "class", class)
			setText(btn, a.Label)
			row.AppendChild(btn)
			od.buttons = append(od.buttons, btn)

			run := a.Run
			d.on(btn, func() {
				if run != nil {
					run(od.snapshot())
				}
			})
		}
		form.AppendChild(row)
	}

	d.body.AppendChild(modal)
	d.dialog = od
	if dlg.OnBackdrop != nil {
		d.backdrops[modal] = dlg.OnBackdrop
	}
	return Element{n: modal}
}

// Remove detaches an overlay node and drops its handlers.
func (d *Document) Remove(el domain.Element) {
	e, ok := el.(Element)
	if !ok || e.n == nil || e.n.Parent == nil {
		return
	}
	e.n.Parent.RemoveChild(e.n)
	d.forget(e.n)

	switch {
	case d.dialog != nil && d.dialog.node == e.n:
		d.dialog = nil
	case d.toolbar == e.n:
		d.toolbar, d.toggle, d.counter = nil, nil, nil
	default:
		for i, m := range d.markers {
			if m.node == e.n {
				d.markers = append(d.markers[:i], d.markers[i+1:]...)
				break
			}
		}
	}
}

// Notify records a user-visible notice.
func (d *Document) Notify(msg string) {
	d.notices = append(d.notices, msg)
}

// Listen registers page-level listeners until the returned function is called.
func (d *Document) Listen(l domain.Listeners) func() {
	reg := &l
	d.listeners = append(d.listeners, reg)
	return func() {
		for i, r := range d.listeners {
			if r == reg {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) on(n *html.Node, fn func()) {
	if fn != nil {
		d.clicks[n] = fn
	}
}

func (d *Document) forget(n *html.Node) {
	delete(d.clicks, n)
	delete(d.backdrops, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func (o *openDialog) snapshot() domain.FormValues {
	out := make(domain.FormValues, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out
}

var _ ports.Presenter = (*Document)(nil)
