// Package export renders finalized designs into diagnostic artifacts: a
// structured Report snapshot, and DOT, JSON and YAML encodings of it.
//
// Exporters are strictly read-only visitors. They refuse roots that have
// not finished elaboration and never influence wiring.
package export
