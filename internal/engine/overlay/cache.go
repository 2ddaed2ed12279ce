package overlay

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/margin/internal/core/domain"
)

const (
	noticeEmptyComment = "Please enter a comment"
	noticeSaveFailed   = "Failed to save annotation"
)

// BulkLoad replaces the cache with the page's stored annotations.
//
// A failure is logged and leaves the page with no annotations. It is never shown to
// the user.
func (e *Engine) BulkLoad(ctx context.Context) *Op {
	op := newOp()
	e.inFlight++

	go func() {
		list, err := e.store.List(ctx, e.page)
		e.loop.Post(func() {
			e.inFlight--
			err = e.applyLoad(list, err)
			op.finish(err)
		})
	}()

	return op
}

func (e *Engine) applyLoad(list []domain.Annotation, err error) error {
	if err != nil {
		err = errors.Join(domain.ErrLoadFailed, err)
		e.logger.Error(err)
		e.cache = nil
	} else {
		e.cache = e.cache[:0:0]
		for _, a := range list {
			if a.URL != e.page {
				e.logger.Warn(fmt.Sprintf("ignoring annotation %q recorded for %s", a.ID, a.URL))
				continue
			}
			e.cache = append(e.cache, a)
		}
	}

	e.renderAll()
	e.refreshToolbar()

	e.loaded = true
	deferred := e.deferred
	e.deferred = nil
	for _, fn := range deferred {
		fn()
	}
	return err
}

// Create validates and saves a candidate. On success the canonical record is cached,
// its marker rendered and placement mode exited.
func (e *Engine) Create(ctx context.Context, c domain.Candidate) *Op {
	return e.create(ctx, c, 0)
}

// create saves c. dialog is the creation dialog to close on success, or 0.
func (e *Engine) create(ctx context.Context, c domain.Candidate, dialog uint64) *Op {
	if err := c.Validate(); err != nil {
		e.presenter.Notify(noticeEmptyComment)
		return finishedOp(err)
	}

	op := newOp()
	e.inFlight++

	go func() {
		saved, err := e.store.Create(ctx, c)
		e.loop.Post(func() {
			e.inFlight--
			apply := func() {
				op.finish(e.applyCreate(saved, err, dialog))
			}
			if !e.loaded {
				e.deferred = append(e.deferred, apply)
				return
			}
			apply()
		})
	}()

	return op
}

func (e *Engine) applyCreate(saved domain.Annotation, err error, dialog uint64) error {
	if err != nil {
		err = errors.Join(domain.ErrSaveFailed, err)
		e.presenter.Notify(noticeSaveFailed)
		e.logger.Error(err)
		return err
	}

	e.cache = append(e.cache, saved)
	e.renderOne(saved)
	if dialog != 0 {
		e.dialogs.Close(dialog)
	}
	e.setPlacement(false)
	return nil
}
