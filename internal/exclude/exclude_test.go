package exclude_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pathsieve/pathsieve/internal/exclude"
	"github.com/pathsieve/pathsieve/internal/scanner"
)

func TestMatcher_Excluded(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"suffix match", []string{"*.tmp"}, "/a/b.tmp", true},
		{"suffix needs boundary", []string{"*.tmp"}, "/a/b.tmpx", false},
		{"match inside path", []string{"*.tmp"}, "/b.tmp/c", true},
		{"rooted dir", []string{"/vendor"}, "/vendor", true},
		{"rooted dir contents", []string{"/vendor"}, "/vendor/x", true},
		{"rooted stays rooted", []string{"/vendor"}, "/a/vendor", false},
		{"bare name any segment", []string{"b"}, "/a/b", true},
		{"bare name whole segment only", []string{"b"}, "/a/bc", false},
		{"double star spans segments", []string{"docs/**"}, "/x/docs/a/b", true},
		{"double star needs boundary", []string{"docs/**"}, "/docsx", false},
		{"any of several", []string{"*.log", "/tmp"}, "/var/app.log", true},
		{"none of several", []string{"*.log", "/tmp"}, "/var/app.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, warns, err := exclude.NewMatcher('/', tt.patterns...)
			if err != nil {
				t.Fatalf("NewMatcher(%v) error: %v", tt.patterns, err)
			}
			if len(warns) != 0 {
				t.Fatalf("NewMatcher(%v) warnings: %v", tt.patterns, warns)
			}
			if got := m.Excluded(tt.path); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMatcher_BackslashSeparator(t *testing.T) {
	m, _, err := exclude.NewMatcher('\\', "*.tmp", "/cache")
	if err != nil {
		t.Fatalf("NewMatcher error: %v", err)
	}
	tests := []struct {
		path string
		want bool
	}{
		{`\a\b.tmp`, true},
		{`\a\b.txt`, false},
		{`\cache\x`, true},
		{`\a\cache`, false},
	}
	for _, tt := range tests {
		if got := m.Excluded(tt.path); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatcher_NulPattern(t *testing.T) {
	// The NUL escape in the translated expression must compile under the
	// host engine.
	m, _, err := exclude.NewMatcher('/', "a\x00")
	if err != nil {
		t.Fatalf("NewMatcher error: %v", err)
	}
	if !m.Excluded("/a\x00") {
		t.Error("Excluded(path with NUL) = false, want true")
	}
	if m.Excluded("/ab") {
		t.Error("Excluded(/ab) = true, want false")
	}
}

func TestMatcher_Warnings(t *testing.T) {
	m, warns, err := exclude.NewMatcher('/', "[[.x.]]a", "*.txt")
	if err != nil {
		t.Fatalf("NewMatcher error: %v", err)
	}
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want one", warns)
	}
	if warns[0].Pattern != "[[.x.]]a" {
		t.Errorf("warning pattern = %q, want %q", warns[0].Pattern, "[[.x.]]a")
	}
	if warns[0].Construct != "[.x.]" {
		t.Errorf("warning construct = %q, want %q", warns[0].Construct, "[.x.]")
	}
	// The degraded pattern still matches, one character per set.
	if !m.Excluded("/Xa") {
		t.Error("degraded pattern should match /Xa")
	}
}

func TestMatcher_BadPatterns(t *testing.T) {
	_, _, err := exclude.NewMatcher('/', "ok", "/a[b")
	if !errors.Is(err, scanner.ErrUnterminated) {
		t.Fatalf("NewMatcher error = %v, want ErrUnterminated", err)
	}

	_, _, err = exclude.NewMatcher('/', "[z-a]")
	if err == nil || !strings.Contains(err.Error(), "compile pattern") {
		t.Fatalf("NewMatcher error = %v, want compile failure", err)
	}
}

func TestMatcher_Walk(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"docs", "src", "vendor/lib"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range []string{"docs/readme.md", "docs/notes.tmp", "src/main.go", "vendor/lib/lib.go"} {
		if err := os.WriteFile(filepath.Join(root, file), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m, _, err := exclude.NewMatcher('/', "/vendor", "*.tmp")
	if err != nil {
		t.Fatalf("NewMatcher error: %v", err)
	}
	got, err := m.Walk(root)
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}

	// vendor/lib/lib.go matches no pattern by itself; its absence proves
	// the excluded directory was pruned, not filtered per file.
	want := []string{"/docs", "/docs/readme.md", "/src", "/src/main.go"}
	if len(got) != len(want) {
		t.Fatalf("Walk = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Walk[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
