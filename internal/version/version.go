// Package version carries the build version, overridable at link time:
//
//	go build -ldflags "-X emcoin/internal/version.Version=v1.2.3" ./cmd/emcoin
package version

var Version = "dev"
