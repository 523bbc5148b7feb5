package documents

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "report.pdf", "report.pdf"},
		{"spaces replaced", "quarterly report.pdf", "quarterly_report.pdf"},
		{"path stripped", "/tmp/uploads/report.pdf", "report.pdf"},
		{"traversal stripped", "../../etc/report.pdf", "report.pdf"},
		{"special characters replaced", `a:b*c?d"e<f>g|h.pdf`, "a_b_c_d_e_f_g_h.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildStorageKey(t *testing.T) {
	id := uuid.New()

	key := buildStorageKey(id, "my report.pdf")

	wantPrefix := "documents/" + id.String() + "/"
	if !strings.HasPrefix(key, wantPrefix) {
		t.Errorf("key %q should start with %q", key, wantPrefix)
	}
	if !strings.HasSuffix(key, "my_report.pdf") {
		t.Errorf("key %q should end with the sanitized filename", key)
	}
}
