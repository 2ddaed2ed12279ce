// Package tui provides the interactive terminal front end of the overlay.
package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/margin/internal/adapters/dom"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/engine/overlay"
	"go.trai.ch/margin/internal/ui/output"
)

// Loop is the event loop whose continuations the model runs on its update goroutine.
type Loop interface {
	Ready() <-chan struct{}
	RunPending() int
}

type (
	// MsgStart starts the overlay.
	MsgStart struct{}
	// MsgLoop reports that continuations are waiting on the loop.
	MsgLoop struct{}
)

// Model is the bubbletea model of a browse session. The document and the engine
// are only touched from Update.
//
//nolint:containedctx // storage calls started from key handlers need the session context
type Model struct {
	ctx    context.Context
	doc    *dom.Document
	engine *overlay.Engine
	loop   Loop

	Elements []dom.Element
	Cursor   int
	Offset   int
	Width    int
	Height   int
	Started  bool
	Quitting bool
}

// NewModel creates the model and aligns lipgloss with the colour profile of w.
func NewModel(ctx context.Context, doc *dom.Document, engine *overlay.Engine, loop Loop, w io.Writer) *Model {
	if w == nil {
		w = os.Stdout
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	return &Model{
		ctx:      ctx,
		doc:      doc,
		engine:   engine,
		loop:     loop,
		Elements: doc.PageElements(),
	}
}

// Init starts the overlay on the first update.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return MsgStart{} }
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per key binding
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgStart:
		if m.Started {
			return m, nil
		}
		m.Started = true
		m.engine.Start(m.ctx)
		m.loop.RunPending()
		return m, m.waitLoop()

	case MsgLoop:
		m.loop.RunPending()
		return m, m.waitLoop()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if _, _, open := m.doc.Dialog(); open {
			m.dialogKey(msg)
		} else if quit := m.pageKey(msg); quit {
			return m.quit()
		}
		m.loop.RunPending()
	}
	return m, nil
}

func (m *Model) pageKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q":
		return true
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
			m.ensureVisible()
		}
	case "j", "down":
		if m.Cursor < len(m.Elements)-1 {
			m.Cursor++
			m.ensureVisible()
		}
	case "a":
		if toggle, _, ok := m.doc.Toolbar(); ok {
			m.doc.Click(toggle, 0, 0)
		}
	case "v":
		if _, list, ok := m.doc.Toolbar(); ok {
			m.doc.Click(list, 0, 0)
		}
	case "enter", " ":
		if el, ok := m.Selected(); ok {
			pos := m.doc.Offset(el)
			m.doc.Click(el, pos.X, pos.Y)
		}
	case "esc":
		m.doc.KeyDown(domain.KeyEscape)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		markers := m.doc.Markers()
		if i := int(msg.String()[0] - '1'); i < len(markers) {
			mk := markers[i]
			m.doc.Click(mk.Element, mk.Position.X, mk.Position.Y)
		}
	}
	return false
}

func (m *Model) dialogKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.doc.KeyDown(domain.KeyEscape)
	case tea.KeyTab:
		m.doc.FocusNext()
	case tea.KeyEnter:
		if err := m.doc.Press(domain.ActionConfirm); err != nil {
			_ = m.doc.Press(domain.ActionCancel)
		}
	case tea.KeyBackspace:
		m.doc.Backspace()
	case tea.KeySpace:
		m.doc.Input(" ")
	case tea.KeyRunes:
		m.doc.Input(string(msg.Runes))
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	m.engine.Close()
	return m, tea.Quit
}

// waitLoop waits for the next continuation posted by a storage call.
func (m *Model) waitLoop() tea.Cmd {
	ready := m.loop.Ready()
	done := m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-ready:
			return MsgLoop{}
		case <-done:
			return nil
		}
	}
}

// Selected returns the element under the cursor.
func (m *Model) Selected() (dom.Element, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Elements) {
		return dom.Element{}, false
	}
	return m.Elements[m.Cursor], true
}

func (m *Model) listHeight() int {
	h := m.Height - chromeHeight
	if _, _, open := m.doc.Dialog(); open {
		h -= dialogReserve
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	} else if m.Cursor >= m.Offset+h {
		m.Offset = m.Cursor - h + 1
	}
}
