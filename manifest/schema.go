package manifest

import "github.com/hashicorp/hcl/v2"

// paramsBlock captures the raw body of a 'params' block; its attributes
// are evaluated during translation.
type paramsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// outputBlock is one 'output' block within a design.
type outputBlock struct {
	Format string `hcl:"format,label"`
	Path   string `hcl:"path"`
}

// designBlock is a 'design' block as written in a manifest file.
type designBlock struct {
	Name      string         `hcl:"name,label"`
	Generator string         `hcl:"generator"`
	Strict    *bool          `hcl:"strict,optional"`
	Params    *paramsBlock   `hcl:"params,block"`
	Outputs   []*outputBlock `hcl:"output,block"`
}

// fileRoot decodes the top level of any manifest file. Unknown blocks
// land in Remain and are ignored.
type fileRoot struct {
	Designs []*designBlock `hcl:"design,block"`
	Remain  hcl.Body       `hcl:",remain"`
}
