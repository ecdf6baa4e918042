// Package app wires application dependencies for the CLI.
//
// It reads Config from the environment, opens the configuration store for
// the selected identity and builds the API transport from the stored host
// and credentials, exposing them via the Wire struct for commands to use.
package app
