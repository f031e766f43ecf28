// Package manifest loads design manifests: HCL files declaring which
// generator to elaborate, with which params, and which export artifacts
// to write.
//
// The loader walks the given paths for .hcl files, decodes every design
// block and evaluates its params to plain cty values, producing a
// format-agnostic model the app layer feeds into the registry. Params
// are static expressions; there are no variables in scope.
package manifest
