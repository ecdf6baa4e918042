// Package store provides the durable configuration store used by the
// eightyseven CLI.
//
// A Store is a key-value mapping that is rewritten to its backing file on
// every mutation. Keys are namespaced by an optional prefix (usually the
// identity the CLI runs as), so several identities can share one file:
//
//	s, _ := store.Load("alice")
//	_ = s.Set("host", "https://87.example.org") // stored as "alice-host"
//	host, _ := s.GetString("host")
//
// The on-disk form is a single JSON object at
// ${XDG_CONFIG_HOME:-~/.config}/eightyseven/conf.json. Writes go through a
// temporary file that is renamed over the target. Nothing coordinates
// separate processes writing the same file: the last writer wins.
//
// NewMemory and LoadMemory return stores with the same contract that never
// touch the disk, for tests.
package store
