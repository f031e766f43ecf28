// Package wire is the reference connection-point implementation for the
// elaboration core: typed source and sink endpoints declared against the
// open block scope, linked point to point at declaration time.
//
// A linked pair emits two dangles sharing the source-side key with
// opposite orientation, so the core resolves the link at the lowest
// common ancestor of the two blocks. Unlinked endpoints emit unpaired
// dangles and surface as boundary ports all the way up to the root.
package wire
