// Package builder assembles a project.Project incrementally from the structural
// events of the ETS project documents.
//
// The Builder never sees a whole document. Each operation is applied as its
// element is opened or closed, and every insertion targets the tail of a
// sequence:
//
//   - Topology operations address "the last area", "the last line of the last
//     area" and so on; the depth is fixed, so no counter is needed.
//   - The building forest and the group range forest recurse without a known
//     depth. For each, the Builder keeps only a counter of open nodes and finds
//     the insertion point by descending from the roots along the last element.
//   - Reference table operations append entries or modify the most recent one.
//
// Operations that target a parent that does not exist return an error wrapping
// ErrPrecondition. These indicate malformed input ordering and are not retried.
package builder
