// Package hcl provides the HCL implementation of config.Loader. It parses
// sweep files, turns `option` blocks into expand domains and renders the
// `template` attribute back into placeholder text.
package hcl
