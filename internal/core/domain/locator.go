package domain

import "strings"

// Element is the read-only view of a page element the overlay needs.
//
// Implementations must return a nil interface from Parent for the topmost element
// and must be comparable, so that two values for the same node are equal.
type Element interface {
	// ID returns the element's identifier attribute, or "".
	ID() string
	// TagName returns the element's tag name in any case.
	TagName() string
	// ClassName returns the raw class attribute, tokens separated by whitespace.
	ClassName() string
	// Parent returns the enclosing element, or nil.
	Parent() Element
}

// ResolveLocator converts an element into a human-readable locator.
//
// The result is "#id" when the element has an id, "tag.class1.class2" when it has
// class names, and the bare lowercase tag otherwise. It is a best-effort label for
// display and debugging: it is not unique across elements sharing classes and is not
// guaranteed to match the same element again after the page changes.
func ResolveLocator(el Element) string {
	if id := el.ID(); id != "" {
		return "#" + id
	}

	tag := strings.ToLower(el.TagName())
	if classes := strings.Fields(el.ClassName()); len(classes) > 0 {
		return tag + "." + strings.Join(classes, ".")
	}
	return tag
}

// Contains reports whether el is root or one of root's descendants.
func Contains(root, el Element) bool {
	if root == nil {
		return false
	}
	for n := el; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}
