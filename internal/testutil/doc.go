// Package testutil provides shared test helpers.
//
// fixtures.go has sample pet snapshots and speech responses; timeout.go
// has deadline-aware context constructors for tests that wait on the
// stream or the sim daemon.
package testutil
