// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates tool flags and `--name value` pairs into the application's
// configuration.
package cli
