// Package elab implements the elaboration core of loom: an eager
// declaration protocol that builds a tree of blocks under a scope stack,
// and a lazy instantiation pass that resolves dangling connection ends
// into internal links or boundary ports.
//
// Declaration is single-threaded and wires nothing: NewBlock opens a
// scope, registration (AddNode, Defer) targets the open scope, Close
// hands the scope back to the parent. Instantiation is forced once per
// tree, bottom-up: each block first forces its children, then its own
// nodes, pairs dangles that share a source key, and promotes whatever is
// left onto its boundary with deduplicated port names. Deferred actions
// run only after the block's boundary is final.
//
// Violations of the declaration protocol panic with the typed errors of
// this package; failures during instantiation return errors instead.
package elab
