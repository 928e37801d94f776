// Package config defines the format-agnostic model of a sweep: the declared
// options and the template loaded from sweep files, plus the Loader interface
// concrete formats implement. The HCL implementation lives in internal/hcl.
package config
