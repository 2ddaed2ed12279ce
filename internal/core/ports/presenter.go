package ports

import "go.trai.ch/margin/internal/core/domain"

// Presenter renders the overlay UI and delivers page input to the engine.
//
// Every method is called on the event-loop goroutine.
//
//go:generate mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type Presenter interface {
	// MountToolbar attaches the toolbar and returns its root element.
	MountToolbar(t domain.Toolbar) domain.Element

	// UpdateToolbar refreshes the toggle label, active styling and count.
	UpdateToolbar(s domain.ToolbarState)

	// MountMarker attaches a marker at its absolute position and returns its element.
	MountMarker(m domain.Marker) domain.Element

	// MountDialog attaches a modal dialog and returns its root (backdrop) element.
	MountDialog(d domain.Dialog) domain.Element

	// Remove detaches a previously mounted element. Unknown elements are ignored.
	Remove(el domain.Element)

	// Notify shows a blocking notice to the user.
	Notify(msg string)

	// Listen registers page-level listeners and returns a function removing them.
	Listen(l domain.Listeners) func()
}
