// Package env keeps names of environment variables with special significance
// to mdsite.
package env

// Environment variables with special significance to mdsite.
const (
	// Disables terminal styling of error messages when set to any value.
	NO_COLOR = "NO_COLOR"
	// Used to resolve the "~" prefix when abbreviating paths.
	HOME = "HOME"
)
