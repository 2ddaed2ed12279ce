// Package app implements the application layer for margin.
package app

import (
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/margin/internal/adapters/detector"
	"go.trai.ch/margin/internal/core/ports"
)

const (
	fetchTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	readTimeout     = 10 * time.Second
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer

	client       *http.Client
	fetchTimeout time.Duration
	stdin        io.Reader
	stdout       io.Writer
	teaOptions   []tea.ProgramOption
	interactive  func() bool
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		client:       &http.Client{},
		fetchTimeout: fetchTimeout,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		interactive:  detector.Interactive,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// Programs given their own input and output do not need a terminal.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	a.interactive = func() bool { return true }
	return a
}

// WithIO replaces the standard streams used by browse and list.
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.stdin = in
	a.stdout = out
	return a
}

// WithHTTPClient replaces the client used to fetch pages and annotations.
// Annotation requests end only with the caller's context, so c should carry no Timeout.
func (a *App) WithHTTPClient(c *http.Client) *App {
	a.client = c
	return a
}
