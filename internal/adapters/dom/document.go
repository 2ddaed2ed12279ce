// Package dom holds a parsed page and implements ports.Presenter on top of it.
//
// A Document is not safe for concurrent use. It is owned by the goroutine running
// the event loop, like the page it stands in for.
package dom

import (
	"io"
	"strings"

	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Nominal layout used to give page elements coordinates.
const (
	LineHeight = 24
	Indent     = 16
)

const overlayAttr = "data-margin-overlay"

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Br:       true,
}

// Element is a node of a Document. Elements compare equal when they refer to the same node.
type Element struct {
	n *html.Node
}

// ID returns the id attribute.
func (e Element) ID() string { return attr(e.n, "id") }

// TagName returns the tag name in upper case, as pages report it.
func (e Element) TagName() string { return strings.ToUpper(e.n.Data) }

// ClassName returns the raw class attribute.
func (e Element) ClassName() string { return attr(e.n, "class") }

// Parent returns the parent element or nil at the top of the document.
func (e Element) Parent() domain.Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return Element{n: p}
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) string { return attr(e.n, name) }

// Text returns the collapsed text content.
func (e Element) Text() string { return strings.Join(strings.Fields(textContent(e.n)), " ") }

// Locator returns the locator the element resolves to.
func (e Element) Locator() string { return domain.ResolveLocator(e) }

// Document is a page: its node tree, the overlay nodes mounted on it and the
// listeners registered with it.
type Document struct {
	root *html.Node
	body *html.Node

	clicks    map[*html.Node]func()
	backdrops map[*html.Node]func()
	listeners []*domain.Listeners
	notices   []string

	toolbar *html.Node
	toggle  *html.Node
	counter *html.Node
	state   domain.ToolbarState

	markers []mountedMarker
	dialog  *openDialog
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse page")
	}

	d := &Document{
		root:      root,
		clicks:    make(map[*html.Node]func()),
		backdrops: make(map[*html.Node]func()),
	}
	d.body = findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if d.body == nil {
		htmlNode := findFirst(root, func(n *html.Node) bool { return n.DataAtom == atom.Html })
		if htmlNode == nil {
			htmlNode = newElement("html")
			root.AppendChild(htmlNode)
		}
		d.body = newElement("body")
		htmlNode.AppendChild(d.body)
	}
	return d, nil
}

// NewDocument returns an empty page.
func NewDocument() *Document {
	d, _ := Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	return d
}

// Title returns the page title.
func (d *Document) Title() string {
	t := findFirst(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Title })
	if t == nil {
		return ""
	}
	return strings.TrimSpace(textContent(t))
}

// Meta returns the content of the first meta tag with the given name.
func (d *Document) Meta(name string) (string, bool) {
	m := findFirst(d.root, func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && strings.EqualFold(attr(n, "name"), name)
	})
	if m == nil {
		return "", false
	}
	return attr(m, "content"), true
}

// GetElementByID returns the element with the given id.
func (d *Document) GetElementByID(id string) (Element, bool) {
	n := findFirst(d.root, func(n *html.Node) bool { return attr(n, "id") == id })
	if n == nil {
		return Element{}, false
	}
	return Element{n: n}, true
}

// Find returns the first element of the body, in document order, whose locator is
// locator. Overlay nodes are searched too.
func (d *Document) Find(locator string) (Element, bool) {
	n := findFirst(d.body, func(n *html.Node) bool {
		return n != d.body && domain.ResolveLocator(Element{n: n}) == locator
	})
	if n == nil {
		return Element{}, false
	}
	return Element{n: n}, true
}

// PageElements returns the annotatable elements of the body in document order.
// Overlay nodes and non-visual elements are left out.
func (d *Document) PageElements() []Element {
	var out []Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || skipped[c.DataAtom] || hasAttr(c, overlayAttr) {
				continue
			}
			out = append(out, Element{n: c})
			walk(c)
		}
	}
	walk(d.body)
	return out
}

// Offset returns the nominal position of el: one line per page element, indented by depth.
func (d *Document) Offset(el Element) domain.Position {
	for i, e := range d.PageElements() {
		if e == el {
			return domain.Position{X: float64(Indent * depth(d.body, el.n)), Y: float64(LineHeight * i)}
		}
	}
	return domain.Position{}
}

// Render writes the page, overlay nodes included.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func depth(ancestor, n *html.Node) int {
	k := 0
	for p := n.Parent; p != nil && p != ancestor; p = p.Parent {
		k++
	}
	return k
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func newElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func setText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && skipped[c.DataAtom] {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}
