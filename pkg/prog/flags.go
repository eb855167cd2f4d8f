package prog

import "flag"

// FlagSet wraps a [flag.FlagSet]. It also provides methods to register flags
// that subprograms may share; calling them more than once returns the same
// value.
type FlagSet struct {
	*flag.FlagSet
	json *bool
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo or -version in JSON")
		fs.json = &json
	}
	return fs.json
}
