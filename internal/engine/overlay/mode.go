package overlay

import "go.trai.ch/margin/internal/core/domain"

// PlacementActive reports whether the next page click starts an annotation.
func (e *Engine) PlacementActive() bool {
	return e.placementActive
}

// Toggle flips placement mode.
func (e *Engine) Toggle() {
	e.setPlacement(!e.placementActive)
}

func (e *Engine) setPlacement(active bool) {
	e.placementActive = active
	e.refreshToolbar()
}

// HandleClick is the capture-phase click listener. In placement mode a click on page
// content is suppressed and opens the creation dialog for the clicked element.
func (e *Engine) HandleClick(ev *domain.ClickEvent) {
	if !e.placementActive || ev.Target == nil || e.owns(ev.Target) {
		return
	}
	ev.Suppress()
	e.openCreate(ev.Target, domain.Position{X: ev.X, Y: ev.Y})
}

// HandleKey dismisses the open dialog on Escape.
func (e *Engine) HandleKey(ev domain.KeyEvent) {
	if ev.Key == domain.KeyEscape {
		e.dialogs.Cancel()
	}
}
