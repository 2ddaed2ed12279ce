package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/margin/internal/adapters/dom"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/ui/output"
	"go.trai.ch/margin/internal/ui/style"
	"go.trai.ch/zerr"
)

// ListOptions configuration for the List method.
type ListOptions struct {
	Endpoint string
	JSON     bool
}

type listing struct {
	Annotations []domain.Annotation `json:"annotations"`
	Count       int                 `json:"count"`
}

// List prints the annotations of the page at pageURL. Without an endpoint override
// the page is fetched to discover its endpoint, falling back to the default.
func (a *App) List(ctx context.Context, pageURL string, opts ListOptions) error {
	u, err := parsePageURL(pageURL)
	if err != nil {
		return err
	}

	var doc *dom.Document
	if opts.Endpoint == "" {
		if doc, err = a.fetchPage(ctx, u); err != nil {
			a.logger.Warn("endpoint discovery failed: " + err.Error())
		}
	}

	store, err := a.storeFor(u, doc, opts.Endpoint)
	if err != nil {
		return err
	}

	items, err := store.List(ctx, pagePath(u))
	if err != nil {
		return zerr.Wrap(err, domain.ErrLoadFailed.Error())
	}

	if opts.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listing{Annotations: items, Count: len(items)})
	}
	writeListing(a.stdout, pagePath(u), items)
	return nil
}

func writeListing(w io.Writer, page string, items []domain.Annotation) {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.NewWithProfile(w, output.ColorProfileANSI).Profile)

	heading := r.NewStyle().Bold(true).Foreground(style.Amber)
	locator := r.NewStyle().Foreground(style.Blue)
	muted := r.NewStyle().Foreground(style.Muted)

	noun := "annotations"
	if len(items) == 1 {
		noun = "annotation"
	}
	_, _ = fmt.Fprintln(w, heading.Render(fmt.Sprintf("%s %d %s on %s", style.Bubble, len(items), noun, page)))

	for i, a := range items {
		_, _ = fmt.Fprintf(w, "%3d. %s %s\n", i+1,
			locator.Render(a.Selector),
			muted.Render(fmt.Sprintf("(%g, %g)", a.Position.X, a.Position.Y)))
		for _, line := range strings.Split(a.Comment, "\n") {
			_, _ = fmt.Fprintf(w, "     %s\n", line)
		}
		_, _ = fmt.Fprintf(w, "     %s\n", muted.Render("by "+a.Author))
	}
}
