package app

import (
	"github.com/loomhdl/loom/generators/chain"
	"github.com/loomhdl/loom/generators/crossbar"
	"github.com/loomhdl/loom/registry"
)

// coreGenerators is the definitive list of all generator modules that are
// compiled into the loom binary.
var coreGenerators = []registry.Module{
	&chain.Module{},
	&crossbar.Module{},
}
