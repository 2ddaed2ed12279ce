package overlay

import "go.trai.ch/margin/internal/core/domain"

func (e *Engine) renderAll() {
	e.clearMarkers()
	for _, a := range e.cache {
		e.renderOne(a)
	}
}

func (e *Engine) renderOne(a domain.Annotation) {
	el := e.presenter.MountMarker(domain.Marker{
		Position:   a.Position,
		Preview:    a.Preview(),
		OnActivate: func() { e.openDetail(a) },
	})
	e.markers = append(e.markers, el)
}

func (e *Engine) clearMarkers() {
	for _, m := range e.markers {
		e.presenter.Remove(m)
	}
	e.markers = nil
}
