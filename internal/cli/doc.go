// Package cli parses command-line arguments for the loom binary,
// validates user input, and handles process-level concerns like exit
// codes. It translates CLI flags into the application's internal
// configuration.
package cli
