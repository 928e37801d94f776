// Package expand turns a set of named option domains and a template into the
// ordered list of records the batch runner consumes. It owns domain
// classification, template compilation, odometer enumeration of the Cartesian
// product, shell-word tokenizing of each rendered record and record encoding.
//
// Nothing in this package touches the filesystem or the process environment;
// callers hand it already-parsed options and a writer.
package expand
