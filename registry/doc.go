// Package registry is the glue between manifest generator types and
// compiled Go generator functions.
//
// A Generator couples the string type used in design manifests (e.g.
// "chain") with a params struct and a build function that declares the
// block tree. During startup the registry is populated from the built-in
// generator modules and then validated, ensuring every params struct is
// expressible in the manifest type system before any design is
// elaborated.
package registry
