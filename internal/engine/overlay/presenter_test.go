package overlay_test

import (
	"go.trai.ch/margin/internal/core/domain"
)

type node struct {
	id, tag, class string
	parent         *node
}

func (n *node) ID() string        { return n.id }
func (n *node) TagName() string   { return n.tag }
func (n *node) ClassName() string { return n.class }

func (n *node) Parent() domain.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// fakePresenter records what the engine mounts, the way a page would show it.
type fakePresenter struct {
	toolbar   domain.Toolbar
	toolbarEl *node
	state     domain.ToolbarState

	markers     []domain.Marker
	markerNodes []*node

	dialog       *domain.Dialog
	dialogEl     *node
	dialogMounts int

	notices   []string
	listeners domain.Listeners
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{}
}

func (p *fakePresenter) MountToolbar(t domain.Toolbar) domain.Element {
	p.toolbar = t
	p.state = t.State
	p.toolbarEl = &node{id: "annotation-toolbar", tag: "div"}
	return p.toolbarEl
}

func (p *fakePresenter) UpdateToolbar(s domain.ToolbarState) {
	p.state = s
}

func (p *fakePresenter) MountMarker(m domain.Marker) domain.Element {
	n := &node{tag: "div", class: "annotation-marker"}
	p.markers = append(p.markers, m)
	p.markerNodes = append(p.markerNodes, n)
	return n
}

func (p *fakePresenter) MountDialog(d domain.Dialog) domain.Element {
	if p.dialog != nil {
		panic("second dialog mounted while one is open")
	}
	p.dialog = &d
	p.dialogEl = &node{id: "annotation-form-modal", tag: "div"}
	p.dialogMounts++
	return p.dialogEl
}

func (p *fakePresenter) Remove(el domain.Element) {
	if p.dialogEl != nil && el == domain.Element(p.dialogEl) {
		p.dialog = nil
		p.dialogEl = nil
		return
	}
	for i, n := range p.markerNodes {
		if el == domain.Element(n) {
			p.markers = append(p.markers[:i], p.markers[i+1:]...)
			p.markerNodes = append(p.markerNodes[:i], p.markerNodes[i+1:]...)
			return
		}
	}
}

func (p *fakePresenter) Notify(msg string) {
	p.notices = append(p.notices, msg)
}

func (p *fakePresenter) Listen(l domain.Listeners) func() {
	p.listeners = l
	return func() { p.listeners = domain.Listeners{} }
}

// click dispatches a click the way a page does: capture listener first, then the
// target's own handler unless the event was suppressed.
func (p *fakePresenter) click(target domain.Element, x, y float64) *domain.ClickEvent {
	ev := &domain.ClickEvent{Target: target, X: x, Y: y}
	if p.listeners.ClickCapture != nil {
		p.listeners.ClickCapture(ev)
	}
	return ev
}

func (p *fakePresenter) key(k string) {
	if p.listeners.KeyDown != nil {
		p.listeners.KeyDown(domain.KeyEvent{Key: k})
	}
}

func (p *fakePresenter) press(kind domain.ActionKind, values domain.FormValues) {
	a, ok := p.dialog.Action(kind)
	if !ok {
		panic("dialog has no such action")
	}
	a.Run(values)
}
