package manifest

import "github.com/zclconf/go-cty/cty"

// Export formats an output block may select.
const (
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var validFormats = map[string]bool{
	FormatDOT:  true,
	FormatJSON: true,
	FormatYAML: true,
}

// Design is the format-agnostic model of one design block.
type Design struct {
	Name      string
	Generator string
	Params    map[string]cty.Value
	Outputs   []Output
	// Strict overrides the app-wide unresolved-port policy for this
	// design when set.
	Strict *bool
	// File is the manifest the design came from, for diagnostics.
	File string
}

// Output selects one export artifact to write after elaboration.
type Output struct {
	Format string
	Path   string
}
