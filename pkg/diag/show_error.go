package diag

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"src.mdsite.sh/pkg/env"
	"src.mdsite.sh/pkg/sys"
)

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

var sgrRegexp = regexp.MustCompile("\033\\[[0-9;]*m")

// ShowError shows an error to w. It uses the Show method if the error
// implements Shower, and uses Complain to print the error message otherwise.
// Styling is only kept when w is a terminal and $NO_COLOR is unset.
func ShowError(w io.Writer, err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(w, styled(w, shower.Show("")))
	} else {
		Complain(w, err.Error())
	}
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintln(w, styled(w, messageStart+msg+messageEnd))
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}

func styled(w io.Writer, s string) string {
	if _, noColor := os.LookupEnv(env.NO_COLOR); noColor {
		return sgrRegexp.ReplaceAllString(s, "")
	}
	if f, ok := w.(*os.File); ok && sys.IsATTY(f.Fd()) {
		return s
	}
	return sgrRegexp.ReplaceAllString(s, "")
}
