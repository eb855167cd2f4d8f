//go:build unix

package progtest

import (
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
	"src.mdsite.sh/pkg/must"
	"src.mdsite.sh/pkg/prog"
)

// RunInTTY runs a Program with stdout connected to a pseudo terminal with the
// given number of columns, and stdin and stderr connected to pipes. It
// returns the exit code, the terminal output with "\r\n" turned into "\n",
// and the output to stderr. The test is skipped if no pseudo terminal can be
// opened.
func RunInTTY(t *testing.T, p prog.Program, cols int, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	defer ptmx.Close()
	must.OK(pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: uint16(cols)}))

	ttyOutput := make(chan string, 1)
	go func() {
		var sb strings.Builder
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			sb.Write(buf[:n])
			// Reading from the master side fails with EIO once the terminal
			// side is closed and drained.
			if err != nil {
				break
			}
		}
		ttyOutput <- sb.String()
	}()

	r0, w0 := must.Pipe()
	w0.Close()
	defer r0.Close()
	w2, get2 := capturedOutput()

	exit = prog.Run([3]*os.File{r0, tty, w2}, append([]string{"mdsite"}, args...), p)
	tty.Close()
	stderr = get2()
	stdout = strings.ReplaceAll(<-ttyOutput, "\r\n", "\n")
	return exit, stdout, stderr
}
