package overlay

import (
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
)

// DialogManager keeps at most one dialog mounted.
type DialogManager struct {
	presenter ports.Presenter

	nextID  uint64
	id      uint64
	current domain.Dialog
	el      domain.Element
}

// NewDialogManager creates a DialogManager mounting dialogs through presenter.
func NewDialogManager(presenter ports.Presenter) *DialogManager {
	return &DialogManager{presenter: presenter}
}

// Open removes the current dialog, if any, mounts d and returns its id.
// Cancel actions and backdrop clicks of d dismiss it.
func (m *DialogManager) Open(d domain.Dialog) uint64 {
	m.Cancel()

	m.nextID++
	id := m.nextID

	for i, a := range d.Actions {
		if a.Kind == domain.ActionCancel {
			d.Actions[i].Run = func(domain.FormValues) { m.Close(id) }
		}
	}
	d.OnBackdrop = func() { m.Close(id) }

	m.id = id
	m.current = d
	m.el = m.presenter.MountDialog(d)
	return id
}

// Close removes the dialog with the given id if it is still mounted.
func (m *DialogManager) Close(id uint64) bool {
	if m.id == 0 || m.id != id {
		return false
	}
	m.presenter.Remove(m.el)
	m.id = 0
	m.el = nil
	m.current = domain.Dialog{}
	return true
}

// Cancel removes the mounted dialog without any other effect.
func (m *DialogManager) Cancel() {
	m.Close(m.id)
}

// Current returns the mounted dialog.
func (m *DialogManager) Current() (domain.Dialog, bool) {
	return m.current, m.id != 0
}

// Contains reports whether el is part of the mounted dialog.
func (m *DialogManager) Contains(el domain.Element) bool {
	return m.id != 0 && domain.Contains(m.el, el)
}

func (e *Engine) openCreate(target domain.Element, pos domain.Position) {
	selector := domain.ResolveLocator(target)

	var id uint64
	id = e.dialogs.Open(domain.Dialog{
		Kind:  domain.DialogCreate,
		Title: "Add Annotation",
		Fields: []domain.Field{
			{Name: domain.FieldAuthor, Placeholder: "Your name (optional)"},
			{Name: domain.FieldComment, Placeholder: "Your comment...", Multiline: true, Focus: true},
		},
		Actions: []domain.Action{
			{
				Label: "Save",
				Kind:  domain.ActionConfirm,
				Run: func(v domain.FormValues) {
					e.submit(id, selector, pos, v)
				},
			},
			{Label: "Cancel", Kind: domain.ActionCancel},
		},
	})
}

func (e *Engine) submit(dialog uint64, selector string, pos domain.Position, v domain.FormValues) {
	c, err := domain.NewCandidate(e.page, selector, v[domain.FieldAuthor], v[domain.FieldComment], pos)
	if err != nil {
		e.presenter.Notify(noticeEmptyComment)
		return
	}
	e.create(e.ctx, c, dialog)
}

func (e *Engine) openDetail(a domain.Annotation) {
	e.dialogs.Open(domain.Dialog{
		Kind:    domain.DialogDetail,
		Title:   "Annotation",
		Body:    []string{a.Author, a.Comment},
		Actions: []domain.Action{{Label: "Close", Kind: domain.ActionCancel}},
	})
}

// OpenList shows every cached annotation.
func (e *Engine) OpenList() {
	items := make([]string, 0, len(e.cache))
	for _, a := range e.cache {
		items = append(items, a.Preview())
	}
	e.dialogs.Open(domain.Dialog{
		Kind:    domain.DialogList,
		Title:   "All Annotations",
		Body:    items,
		Empty:   "No annotations yet",
		Actions: []domain.Action{{Label: "Close", Kind: domain.ActionCancel}},
	})
}
