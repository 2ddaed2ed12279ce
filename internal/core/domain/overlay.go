package domain

// KeyEscape is the key name of the cancellation key signal.
const KeyEscape = "Escape"

// ClickEvent is a click delivered to the overlay in the page's capture phase.
type ClickEvent struct {
	Target Element
	X, Y   float64

	suppressed bool
}

// Suppress prevents the default action and stops further propagation.
func (e *ClickEvent) Suppress() {
	e.suppressed = true
}

// Suppressed reports whether Suppress has been called.
func (e *ClickEvent) Suppressed() bool {
	return e.suppressed
}

// KeyEvent is a key press delivered to the overlay.
type KeyEvent struct {
	Key string
}

// Listeners are the page-level handlers the overlay registers with its presenter.
type Listeners struct {
	// ClickCapture runs for every click before the target's own handlers.
	ClickCapture func(*ClickEvent)
	// KeyDown runs for every key press.
	KeyDown func(KeyEvent)
}

// ToolbarState is what the toolbar displays.
type ToolbarState struct {
	Active bool
	Count  int
}

// ToggleLabel returns the label of the placement mode toggle.
func (s ToolbarState) ToggleLabel() string {
	if s.Active {
		return "✓ Annotating"
	}
	return "📝 Annotate"
}

// Toolbar describes the overlay toolbar: a mode toggle and a list trigger showing the count.
type Toolbar struct {
	State    ToolbarState
	OnToggle func()
	OnList   func()
}

// Marker is the visual marker of one annotation.
type Marker struct {
	Position   Position
	Preview    string
	OnActivate func()
}

// DialogKind identifies the three dialogs the overlay opens.
type DialogKind int

const (
	// DialogCreate collects author and comment for a new annotation.
	DialogCreate DialogKind = iota
	// DialogDetail shows one annotation.
	DialogDetail
	// DialogList shows every annotation of the page.
	DialogList
)

// String returns the name of the dialog kind.
func (k DialogKind) String() string {
	switch k {
	case DialogCreate:
		return "create"
	case DialogDetail:
		return "detail"
	case DialogList:
		return "list"
	default:
		return "unknown"
	}
}

// Form field names of the creation dialog.
const (
	FieldAuthor  = "author"
	FieldComment = "comment"
)

// Field is an input of a dialog form.
type Field struct {
	Name        string
	Placeholder string
	Multiline   bool
	Focus       bool
}

// FormValues maps field names to their current input.
type FormValues map[string]string

// ActionKind tells confirm actions from cancel actions.
type ActionKind int

const (
	// ActionConfirm submits the dialog.
	ActionConfirm ActionKind = iota
	// ActionCancel dismisses the dialog.
	ActionCancel
)

// Action is a dialog button.
type Action struct {
	Label string
	Kind  ActionKind
	Run   func(FormValues)
}

// Dialog describes a modal dialog. Body holds paragraphs for detail dialogs and
// items for list dialogs, Empty is shown instead of an empty list.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Body    []string
	Empty   string
	Fields  []Field
	Actions []Action

	// OnBackdrop runs when the backdrop outside the dialog content is clicked.
	OnBackdrop func()
}

// Action returns the first action of the given kind.
func (d Dialog) Action(kind ActionKind) (Action, bool) {
	for _, a := range d.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}
