// Package commands defines the eightyseven CLI and wires dependencies for subcommands.
//
// Commands
//
//   - configure      Store host and credentials for the current identity
//   - config         Show, get, set, unset, export and import stored settings
//   - store          Create, list, rename and delete password stores
//   - record         Add, list, show and delete password records
//
// # Implementation
//
// The root command reads the environment, opens the configuration store for
// --identity and builds the app wiring before any subcommand runs. Commands
// that talk to the API build the transport lazily, so the config commands
// work before a host has been configured.
package commands
