package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes the top-level blocks of a description file.
type fileRoot struct {
	Networks []*networkBlock `hcl:"network,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

// networkBlock is a `network "<name>" { ... }` block.
type networkBlock struct {
	Name   string        `hcl:"name,label"`
	State  *stateBlock   `hcl:"state,block"`
	Layers []*layerBlock `hcl:"layer,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// stateBlock carries the description's default execution state.
type stateBlock struct {
	Phase  string   `hcl:"phase,optional"`
	Stages []string `hcl:"stages,optional"`
	Level  int      `hcl:"level,optional"`
}

// layerBlock is a `layer "<type>" "<name>" { ... }` block. Attributes not
// named here are the layer's type-specific options.
type layerBlock struct {
	Type       string       `hcl:"type,label"`
	Name       string       `hcl:"name,label"`
	Bottoms    []string     `hcl:"bottoms,optional"`
	Tops       []string     `hcl:"tops,optional"`
	ParamNames []string     `hcl:"param_names,optional"`
	Include    []*ruleBlock `hcl:"include,block"`
	Exclude    []*ruleBlock `hcl:"exclude,block"`
	Options    hcl.Body     `hcl:",remain"`
}

// ruleBlock is one include/exclude state rule.
type ruleBlock struct {
	Phase     string   `hcl:"phase,optional"`
	MinLevel  *int     `hcl:"min_level,optional"`
	MaxLevel  *int     `hcl:"max_level,optional"`
	Stages    []string `hcl:"stages,optional"`
	NotStages []string `hcl:"not_stages,optional"`
}
