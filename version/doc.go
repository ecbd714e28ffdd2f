// Package version carries the build identity of restmapper binaries.
//
// Version, commit, branch and build time are stamped with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restmapper/version.Version=1.4.0"
//
// Unstamped builds fall back to the VCS settings recorded by the Go
// toolchain. The short form ends up in the default User-Agent header.
package version
