package app

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/margin/internal/adapters/detector"
	"go.trai.ch/margin/internal/adapters/dom"
	"go.trai.ch/margin/internal/adapters/httpstore"
	"go.trai.ch/margin/internal/adapters/linear"
	"go.trai.ch/margin/internal/adapters/telemetry"
	"go.trai.ch/margin/internal/adapters/tui"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/core/ports"
	"go.trai.ch/margin/internal/engine/eventloop"
	"go.trai.ch/margin/internal/engine/overlay"
	"go.trai.ch/zerr"
)

// BrowseOptions configuration for the Browse method.
type BrowseOptions struct {
	Endpoint   string
	OutputMode string
}

// Browse opens the annotation overlay on the page at pageURL.
func (a *App) Browse(ctx context.Context, pageURL string, opts BrowseOptions) error {
	u, err := parsePageURL(pageURL)
	if err != nil {
		return err
	}

	doc, err := a.fetchPage(ctx, u)
	if err != nil {
		return err
	}

	store, err := a.storeFor(u, doc, opts.Endpoint)
	if err != nil {
		return err
	}

	loop := eventloop.New()
	engine := overlay.New(store, doc, loop, a.logger, pagePath(u))

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	if mode != detector.ModeTUI {
		return linear.NewSession(doc, engine, loop, a.stdout).Run(ctx, a.stdin)
	}
	if !a.interactive() {
		return domain.ErrNotATerminal
	}

	model := tui.NewModel(ctx, doc, engine, loop, a.stdout)
	teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, a.teaOptions...)
	if _, err := tea.NewProgram(model, teaOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return zerr.Wrap(err, "interactive session failed")
	}
	return nil
}

// storeFor builds the annotation store of a page. The endpoint comes from the
// override, then the page's endpoint meta tag, then the default.
func (a *App) storeFor(u *url.URL, doc *dom.Document, override string) (*httpstore.Store, error) {
	endpoint := override
	if endpoint == "" && doc != nil {
		endpoint, _ = doc.Meta(domain.EndpointMetaName)
	}

	store, err := httpstore.New(origin(u), endpoint, a.tracer)
	if err != nil {
		return nil, err
	}
	return store.WithClient(a.client), nil
}

func (a *App) fetchPage(ctx context.Context, u *url.URL) (*dom.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	ctx, span := a.tracer.Start(ctx, "page.fetch", ports.WithSpanKind(ports.SpanKindClient))
	defer span.End()
	span.SetAttribute("page.url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrPageFetchFailed, err), "invalid page request")
	}
	req.Header.Set("Accept", "text/html")
	telemetry.Inject(ctx, req.Header)

	resp, err := a.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrPageFetchFailed, err), "page request failed"), "url", u.String())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := zerr.With(zerr.Wrap(domain.ErrPageFetchFailed, "unexpected page status"), "status", resp.StatusCode)
		span.RecordError(err)
		return nil, zerr.With(err, "url", u.String())
	}

	doc, err := dom.Parse(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(errors.Join(domain.ErrPageFetchFailed, err), "unreadable page")
	}
	return doc, nil
}

func parsePageURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid page URL"), "url", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, zerr.With(zerr.New("page URL must be an absolute http(s) URL"), "url", raw)
	}
	return u, nil
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// pagePath is the key annotations of a page are stored under. It keeps the
// percent-encoding a browser reports for the same page.
func pagePath(u *url.URL) string {
	if p := u.EscapedPath(); p != "" {
		return p
	}
	return "/"
}
