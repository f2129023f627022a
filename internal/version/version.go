// Package version carries the build version, injected at link time via
// -ldflags "-X github.com/moneymap/moneymap-backend/internal/version.Version=...".
package version

// Version is the build version string. Defaults to dev for local builds.
var Version = "dev"
