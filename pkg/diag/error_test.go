package diag

import (
	"testing"
)

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	setMessageMarkers(t, "{", "}")

	err := &Error{
		Type:    "conversion error",
		Message: "bad block",
		Context: *contextInParen("[test]", "text (x)"),
	}

	wantErrorString := "conversion error: [test]:1:6: bad block"
	if got := err.Error(); got != wantErrorString {
		t.Errorf("Error() -> %q, want %q", got, wantErrorString)
	}

	wantRanging := Ranging{From: 5, To: 8}
	if got := err.Range(); got != wantRanging {
		t.Errorf("Range() -> %v, want %v", got, wantRanging)
	}

	// Type is capitalized in return value of Show
	wantShow := "Conversion error: {bad block}\n  [test]:1:6: text <(x)>"
	if got := err.Show(""); got != wantShow {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
}
