package main

// Exit codes
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (no workspace, invalid config)
	ExitDataError    = 3 // Data error (malformed export, unparseable citations)
	ExitServiceError = 4 // Embedding service unavailable or failing
)
