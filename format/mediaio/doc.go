// Package mediaio holds the format-independent half of the container
// parsers: a resumable byte Cursor and Tree, the element recursion shared by
// the ISOBMFF and Matroska builders.
//
// A Tree is fed with Write and driven with Parse. Parse never blocks: when
// the buffered bytes end inside an element it rewinds to that element's
// header and returns StatusIncomplete, keeping every child already decided
// in each open container. Nodes are built bottom-up, so a caller never sees
// a half-decoded element.
package mediaio
