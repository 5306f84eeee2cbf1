// Package version holds the build version, overridden at link time:
//
//	go build -ldflags "-X github.com/ndewijer/Portfolio-Growth-Tracker/internal/version.Version=1.2.0"
package version

// Version is the application version.
var Version = "dev"
