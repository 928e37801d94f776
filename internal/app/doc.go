// Package app contains the core application logic. It defines the App
// struct, its configuration, and the run lifecycle: load sweep files, merge
// command line options, build the expander and write the records. It is
// decoupled from the command line entrypoint.
package app
