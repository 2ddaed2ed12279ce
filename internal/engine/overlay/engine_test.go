package overlay_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports/mocks"
	"go.trai.ch/margin/internal/engine/eventloop"
	"go.trai.ch/margin/internal/engine/overlay"
	"go.uber.org/mock/gomock"
)

const page = "/docs"

type harness struct {
	store     *mocks.MockAnnotationStore
	logger    *mocks.MockLogger
	presenter *fakePresenter
	loop      *eventloop.Loop
	engine    *overlay.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		store:     mocks.NewMockAnnotationStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		presenter: newFakePresenter(),
		loop:      eventloop.New(),
	}
	h.engine = overlay.New(h.store, h.presenter, h.loop, h.logger, page)
	return h
}

func (h *harness) await(t *testing.T, op *overlay.Op) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.loop.RunUntil(ctx, op.Done()))
	return op.Err()
}

// settle runs the loop until no storage call is outstanding.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for h.loop.RunPending(); h.engine.InFlight() > 0; h.loop.RunPending() {
		require.NoError(t, h.loop.Wait(ctx))
	}
}

func (h *harness) start(t *testing.T, stored ...domain.Annotation) {
	t.Helper()
	h.store.EXPECT().List(gomock.Any(), page).Return(stored, nil)
	require.NoError(t, h.await(t, h.engine.Start(context.Background())))
}

func stored() []domain.Annotation {
	return []domain.Annotation{
		{ID: "a1", URL: page, Selector: "h1", Comment: "Fix typo", Author: "Ana", Position: domain.Position{X: 10, Y: 20}},
		{ID: "a2", URL: page, Selector: "#save-btn", Comment: "Too small", Author: "Ben", Position: domain.Position{X: 30, Y: 40}},
	}
}

func TestEngine_StartLoadsAnnotations(t *testing.T) {
	h := newHarness(t)
	h.start(t, stored()...)

	assert.Equal(t, 2, h.engine.Count())
	assert.Equal(t, stored(), h.engine.Annotations())
	assert.Equal(t, domain.ToolbarState{Count: 2}, h.presenter.state)

	require.Len(t, h.presenter.markers, 2)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, h.presenter.markers[0].Position)
	assert.Equal(t, domain.Position{X: 30, Y: 40}, h.presenter.markers[1].Position)
	assert.Equal(t, "Ana: Fix typo", h.presenter.markers[0].Preview)
	assert.Empty(t, h.presenter.notices)
}

func TestEngine_LoadFailureDegradesToEmpty(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().List(gomock.Any(), page).Return(nil, errors.New("connection refused"))
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrLoadFailed)
	})

	err := h.await(t, h.engine.Start(context.Background()))

	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.Equal(t, 0, h.engine.Count())
	assert.Empty(t, h.presenter.markers)
	assert.Equal(t, 0, h.presenter.state.Count)
	assert.Empty(t, h.presenter.notices, "load failures are not shown to the user")
}

func TestEngine_LoadDropsForeignPages(t *testing.T) {
	h := newHarness(t)
	list := append(stored(), domain.Annotation{ID: "a3", URL: "/other", Comment: "x", Author: "Ana"})
	h.logger.EXPECT().Warn(gomock.Any())

	h.start(t, list...)

	assert.Equal(t, 2, h.engine.Count())
	assert.Len(t, h.presenter.markers, 2)
}

func TestEngine_ToggleUpdatesToolbar(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.presenter.toolbar.OnToggle()
	assert.True(t, h.engine.PlacementActive())
	assert.Equal(t, domain.ToolbarState{Active: true}, h.presenter.state)

	h.presenter.toolbar.OnToggle()
	assert.False(t, h.engine.PlacementActive())
	assert.Equal(t, "📝 Annotate", h.presenter.state.ToggleLabel())
}

func TestEngine_ClickIgnoredOutsidePlacementMode(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	ev := h.presenter.click(&node{id: "save-btn", tag: "button"}, 5, 5)

	assert.False(t, ev.Suppressed())
	assert.False(t, h.engine.DialogOpen())
}

func TestEngine_ClickOnOverlayUIIgnored(t *testing.T) {
	h := newHarness(t)
	h.start(t, stored()...)
	h.engine.Toggle()

	toggleButton := &node{id: "toggle-annotation-mode", tag: "button", parent: h.presenter.toolbarEl}
	ev := h.presenter.click(toggleButton, 1, 1)
	assert.False(t, ev.Suppressed())
	assert.False(t, h.engine.DialogOpen())

	ev = h.presenter.click(h.presenter.markerNodes[0], 10, 20)
	assert.False(t, ev.Suppressed())
	assert.False(t, h.engine.DialogOpen())
}

func TestEngine_CreateFromClick(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.engine.Toggle()

	pos := domain.Position{X: 120, Y: 340}
	want := domain.Candidate{
		URL:      page,
		Selector: "#save-btn",
		Comment:  "needs a tooltip",
		Author:   "Anonymous",
		Position: pos,
	}
	saved := domain.Annotation{
		ID: "n1", URL: page, Selector: "#save-btn", Comment: "needs a tooltip",
		Author: "Anonymous", Position: pos, Timestamp: 1700000000,
	}
	h.store.EXPECT().Create(gomock.Any(), want).Return(saved, nil)

	ev := h.presenter.click(&node{id: "save-btn", tag: "button", class: "btn"}, pos.X, pos.Y)
	require.True(t, ev.Suppressed())
	require.NotNil(t, h.presenter.dialog)
	assert.Equal(t, domain.DialogCreate, h.presenter.dialog.Kind)
	assert.Equal(t, "Add Annotation", h.presenter.dialog.Title)

	h.presenter.press(domain.ActionConfirm, domain.FormValues{
		domain.FieldAuthor:  "",
		domain.FieldComment: "needs a tooltip",
	})
	h.settle(t)

	assert.Equal(t, []domain.Annotation{saved}, h.engine.Annotations())
	assert.False(t, h.engine.PlacementActive())
	assert.False(t, h.engine.DialogOpen())
	assert.Len(t, h.presenter.markers, 1)
	assert.Equal(t, domain.ToolbarState{Count: 1}, h.presenter.state)
}

func TestEngine_EmptyCommentNeverReachesStorage(t *testing.T) {
	for _, comment := range []string{"", "   ", "\n"} {
		t.Run("comment "+comment, func(t *testing.T) {
			h := newHarness(t)
			h.start(t, stored()...)
			h.engine.Toggle()

			h.presenter.click(&node{tag: "p"}, 1, 2)
			h.presenter.press(domain.ActionConfirm, domain.FormValues{domain.FieldComment: comment})
			h.settle(t)

			assert.Equal(t, []string{"Please enter a comment"}, h.presenter.notices)
			assert.Equal(t, 2, h.engine.Count())
			assert.True(t, h.engine.DialogOpen(), "the dialog stays open for correction")
			assert.True(t, h.engine.PlacementActive())
		})
	}
}

func TestEngine_CreateValidatesDirectCalls(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	err := h.await(t, h.engine.Create(context.Background(), domain.Candidate{URL: page, Comment: " "}))

	assert.ErrorIs(t, err, domain.ErrEmptyComment)
	assert.Equal(t, []string{"Please enter a comment"}, h.presenter.notices)
	assert.Equal(t, 0, h.engine.InFlight())
}

func TestEngine_CreateFailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.start(t, stored()...)
	h.engine.Toggle()

	h.store.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(domain.Annotation{}, domain.ErrUnexpectedStatus)
	h.logger.EXPECT().Error(gomock.Any())

	h.presenter.click(&node{tag: "h1"}, 1, 2)
	h.presenter.press(domain.ActionConfirm, domain.FormValues{domain.FieldComment: "hello"})
	h.settle(t)

	assert.Equal(t, []string{"Failed to save annotation"}, h.presenter.notices)
	assert.Equal(t, stored(), h.engine.Annotations())
	assert.Len(t, h.presenter.markers, 2)
	assert.True(t, h.engine.PlacementActive())
	assert.True(t, h.engine.DialogOpen())
}

func TestEngine_CountMatchesCacheAndMarkers(t *testing.T) {
	h := newHarness(t)
	h.start(t, stored()...)

	h.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.Candidate) (domain.Annotation, error) {
			a := c.Annotation()
			a.ID = "generated"
			return a, nil
		}).Times(3)

	for i := range 3 {
		h.engine.Toggle()
		h.presenter.click(&node{tag: "li"}, float64(i), float64(i))
		h.presenter.press(domain.ActionConfirm, domain.FormValues{domain.FieldComment: "note"})
		h.settle(t)

		assert.Equal(t, 3+i, h.engine.Count())
		assert.Equal(t, h.engine.Count(), h.presenter.state.Count)
		assert.Len(t, h.presenter.markers, h.engine.Count())
	}
}

func TestEngine_CreateBeforeLoadIsDeferred(t *testing.T) {
	h := newHarness(t)

	release := make(chan struct{})
	h.store.EXPECT().List(gomock.Any(), page).DoAndReturn(
		func(context.Context, string) ([]domain.Annotation, error) {
			<-release
			return stored(), nil
		})
	created := domain.Annotation{ID: "n1", URL: page, Comment: "early", Author: "Anonymous"}
	h.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)

	load := h.engine.Start(context.Background())
	create := h.engine.Create(context.Background(), domain.Candidate{URL: page, Comment: "early", Author: "Anonymous"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for h.engine.InFlight() > 1 {
		require.NoError(t, h.loop.Wait(ctx))
		h.loop.RunPending()
	}

	select {
	case <-create.Done():
		t.Fatal("create effects applied before the initial load")
	default:
	}
	assert.Equal(t, 0, h.engine.Count())

	close(release)
	require.NoError(t, h.await(t, load))
	require.NoError(t, h.await(t, create))

	got := h.engine.Annotations()
	require.Len(t, got, 3)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a2", got[1].ID)
	assert.Equal(t, "n1", got[2].ID)
	assert.Len(t, h.presenter.markers, 3)
}

func TestEngine_OneDialogAtATime(t *testing.T) {
	h := newHarness(t)
	h.start(t, stored()...)

	h.presenter.markers[0].OnActivate()
	require.NotNil(t, h.presenter.dialog)
	assert.Equal(t, domain.DialogDetail, h.presenter.dialog.Kind)
	assert.Equal(t, []string{"Ana", "Fix typo"}, h.presenter.dialog.Body)

	h.presenter.toolbar.OnList()
	require.NotNil(t, h.presenter.dialog)
	assert.Equal(t, domain.DialogList, h.presenter.dialog.Kind)
	assert.Equal(t, "All Annotations", h.presenter.dialog.Title)
	assert.Equal(t, []string{"Ana: Fix typo", "Ben: Too small"}, h.presenter.dialog.Body)
	assert.Equal(t, 2, h.presenter.dialogMounts)
}

func TestEngine_ListEmpty(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.engine.OpenList()

	d, ok := h.engine.CurrentDialog()
	require.True(t, ok)
	assert.Empty(t, d.Body)
	assert.Equal(t, "No annotations yet", d.Empty)
}

func TestEngine_CancelTransitions(t *testing.T) {
	openers := []struct {
		name      string
		kind      domain.DialogKind
		placement bool
		open      func(h *harness)
	}{
		{
			name:      "create",
			kind:      domain.DialogCreate,
			placement: true,
			open: func(h *harness) {
				h.engine.Toggle()
				h.presenter.click(&node{tag: "h2"}, 3, 4)
			},
		},
		{
			name: "detail",
			kind: domain.DialogDetail,
			open: func(h *harness) { h.presenter.markers[1].OnActivate() },
		},
		{
			name: "list",
			kind: domain.DialogList,
			open: func(h *harness) { h.presenter.toolbar.OnList() },
		},
	}
	dismissals := []struct {
		name    string
		dismiss func(h *harness)
	}{
		{"close button", func(h *harness) {
			h.presenter.press(domain.ActionCancel, domain.FormValues{domain.FieldComment: "draft"})
		}},
		{"backdrop", func(h *harness) { h.presenter.dialog.OnBackdrop() }},
		{"escape", func(h *harness) { h.presenter.key(domain.KeyEscape) }},
	}

	for _, o := range openers {
		for _, d := range dismissals {
			t.Run(o.name+"/"+d.name, func(t *testing.T) {
				h := newHarness(t)
				h.start(t, stored()...)

				o.open(h)
				require.NotNil(t, h.presenter.dialog)
				require.Equal(t, o.kind, h.presenter.dialog.Kind)

				d.dismiss(h)
				h.settle(t)

				assert.False(t, h.engine.DialogOpen())
				assert.Nil(t, h.presenter.dialog)
				assert.Equal(t, stored(), h.engine.Annotations())
				assert.Len(t, h.presenter.markers, 2)
				assert.Equal(t, 2, h.presenter.state.Count)
				assert.Equal(t, o.placement, h.engine.PlacementActive())
			})
		}
	}
}

func TestEngine_OtherKeysIgnored(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.engine.OpenList()

	h.presenter.key("Enter")

	assert.True(t, h.engine.DialogOpen())
}

func TestEngine_Close(t *testing.T) {
	h := newHarness(t)
	h.start(t, stored()...)
	h.engine.OpenList()

	h.engine.Close()

	assert.Nil(t, h.presenter.dialog)
	assert.Empty(t, h.presenter.markers)
	assert.Nil(t, h.presenter.listeners.ClickCapture)
}
