package hcl

import "github.com/hashicorp/hcl/v2"

// sweepFile is the top-level structure of a sweep file.
type sweepFile struct {
	// Template is kept as an expression; it can only be rendered once the
	// names it interpolates are known.
	Template hcl.Expression `hcl:"template,optional"`
	Options  []*optionBlock `hcl:"option,block"`
}

// optionBlock declares one option. Exactly one of the attributes is set.
type optionBlock struct {
	Name   string    `hcl:"name,label"`
	Values *[]string `hcl:"values,optional"`
	Range  *string   `hcl:"range,optional"`
	Spec   *string   `hcl:"spec,optional"`
}
