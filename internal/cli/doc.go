// Package cli implements the tacs command line: build information,
// constraint assembly, pattern checking and evaluation history.
//
// Every command writes its result through OutputFormatter, so --format json
// yields a single CLIResponse object on stdout. Diagnostics go to stderr.
package cli
