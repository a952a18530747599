// Package version reports the twistkit build version. Release builds set it
// with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/twistkit/version.Version=1.2.0" ./cmd/twist
package version
