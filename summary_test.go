package kebab

import (
	"strings"
	"testing"
)

func TestAlignArrows(t *testing.T) {
	got := alignArrows([]string{
		"My File.TXT -> my-file.txt",
		"Sub Dir -> sub-dir",
	})
	if got[0] != "My File.TXT -> my-file.txt" {
		t.Errorf("longest line padded: %q", got[0])
	}
	if got[1] != "Sub Dir     -> sub-dir" {
		t.Errorf("short line not padded: %q", got[1])
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{
		Message: "Applied",
		Renamed: []string{"Old Name -> old-name"},
		Skipped: 2,
	}

	out := s.String()
	for _, want := range []string{"Applied", "Renamed:", "Old Name -> old-name", "Skipped: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Restored:") || strings.Contains(out, "Failed:") {
		t.Errorf("empty sections rendered:\n%s", out)
	}
}
