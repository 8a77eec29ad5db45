package config

// Default storage locations
const (
	// DefaultDataDir is created at startup if it does not exist.
	DefaultDataDir = "./data"

	// DatabaseFileName is the SQLite file holding the catalog inside the data directory.
	DatabaseFileName = "library.sqlite"
)
