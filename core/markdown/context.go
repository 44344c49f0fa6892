package markdown

import "golang.org/x/net/html/atom"

// DefaultMaxDepth bounds element nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 512

// Options is the user-facing configuration of a conversion.
type Options struct {
	// KeepDataURIs emits image data: URIs in full instead of truncating
	// them to their media-type prefix.
	KeepDataURIs bool

	// MaxDepth is the element nesting ceiling. Elements at the ceiling are
	// rendered as flattened text. Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

// Context is the state threaded through one conversion. It is passed by
// value; the with* helpers return modified copies and never touch the
// receiver's caller.
type Context struct {
	Options

	listMarker string
	inListItem bool
	cellTag    atom.Atom
	depth      int
}

// NewContext returns the root context for a conversion.
func NewContext(opts Options) Context {
	return Context{Options: opts, cellTag: atom.Td}
}

func (c Context) withListMarker(marker string) Context {
	c.listMarker = marker
	return c
}

func (c Context) withInListItem(v bool) Context {
	c.inListItem = v
	return c
}

func (c Context) withCellTag(tag atom.Atom) Context {
	c.cellTag = tag
	return c
}

func (c Context) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
