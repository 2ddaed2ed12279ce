// Package overlay implements the annotation overlay: placement mode, the page's
// annotation cache, markers and dialogs.
//
// All Engine state is owned by the event loop goroutine. Storage calls run on their
// own goroutines and post their effects back through ports.EventLoop.
package overlay

import (
	"context"

	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
)

// Engine is the overlay bound to one page view.
type Engine struct {
	store     ports.AnnotationStore
	presenter ports.Presenter
	loop      ports.EventLoop
	logger    ports.Logger
	page      string

	//nolint:containedctx // dialog callbacks issue storage calls after Start returns
	ctx context.Context

	placementActive bool

	cache    []domain.Annotation
	loaded   bool
	deferred []func()
	inFlight int

	toolbar  domain.Element
	markers  []domain.Element
	dialogs  *DialogManager
	unlisten func()
}

// New creates an Engine for the page identified by page (a URL path).
func New(
	store ports.AnnotationStore,
	presenter ports.Presenter,
	loop ports.EventLoop,
	logger ports.Logger,
	page string,
) *Engine {
	return &Engine{
		store:     store,
		presenter: presenter,
		loop:      loop,
		logger:    logger,
		page:      page,
		ctx:       context.Background(),
		dialogs:   NewDialogManager(presenter),
	}
}

// Start mounts the toolbar, registers the page listeners and triggers the initial load.
// It must be called on the event loop goroutine.
func (e *Engine) Start(ctx context.Context) *Op {
	e.ctx = ctx
	e.toolbar = e.presenter.MountToolbar(domain.Toolbar{
		State:    e.toolbarState(),
		OnToggle: e.Toggle,
		OnList:   e.OpenList,
	})
	e.unlisten = e.presenter.Listen(domain.Listeners{
		ClickCapture: e.HandleClick,
		KeyDown:      e.HandleKey,
	})
	return e.BulkLoad(ctx)
}

// Close removes every overlay node and the page listeners.
func (e *Engine) Close() {
	e.dialogs.Cancel()
	e.clearMarkers()
	if e.unlisten != nil {
		e.unlisten()
		e.unlisten = nil
	}
	if e.toolbar != nil {
		e.presenter.Remove(e.toolbar)
		e.toolbar = nil
	}
}

// Page returns the URL path the engine annotates.
func (e *Engine) Page() string {
	return e.page
}

// Annotations returns a copy of the cache in display order.
func (e *Engine) Annotations() []domain.Annotation {
	out := make([]domain.Annotation, len(e.cache))
	copy(out, e.cache)
	return out
}

// Count returns the number of cached annotations.
func (e *Engine) Count() int {
	return len(e.cache)
}

// MarkerCount returns the number of mounted markers.
func (e *Engine) MarkerCount() int {
	return len(e.markers)
}

// InFlight returns the number of storage calls whose effects are not applied yet.
func (e *Engine) InFlight() int {
	return e.inFlight
}

// DialogOpen reports whether a dialog is mounted.
func (e *Engine) DialogOpen() bool {
	_, ok := e.dialogs.Current()
	return ok
}

// CurrentDialog returns the mounted dialog, if any.
func (e *Engine) CurrentDialog() (domain.Dialog, bool) {
	return e.dialogs.Current()
}

// owns reports whether el belongs to overlay UI.
func (e *Engine) owns(el domain.Element) bool {
	if el == nil {
		return false
	}
	if domain.Contains(e.toolbar, el) || e.dialogs.Contains(el) {
		return true
	}
	for _, m := range e.markers {
		if domain.Contains(m, el) {
			return true
		}
	}
	return false
}

func (e *Engine) toolbarState() domain.ToolbarState {
	return domain.ToolbarState{Active: e.placementActive, Count: len(e.cache)}
}

func (e *Engine) refreshToolbar() {
	e.presenter.UpdateToolbar(e.toolbarState())
}
