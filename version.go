package carousel

// Version is the release of the carousel module, reported by the CLI and the kiosk server.
var Version = "0.3.0"
