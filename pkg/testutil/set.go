// Package testutil contains helpers shared by tests across packages.
package testutil

import "os"

// Cleanuper is the part of [testing.TB] the helpers in this package need.
type Cleanuper interface {
	Cleanup(func())
}

// Set sets *p to v for the duration of a test.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Setenv sets the value of an environment variable for the duration of a
// test. It returns value.
func Setenv(c Cleanuper, name, value string) string {
	oldValue, existed := os.LookupEnv(name)
	if existed {
		c.Cleanup(func() { os.Setenv(name, oldValue) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
	os.Setenv(name, value)
	return value
}
