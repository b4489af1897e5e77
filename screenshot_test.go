package stampboard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"modal-open", "modal-open"},
		{"  drag 2.done ", "drag_2.done"},
		{"a/b\\c", "a_b_c"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"ünï", "_n_"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255,     // opaque red
		64, 32, 0, 128,     // half transparent
		0, 0, 0, 0,         // empty
		200, 200, 200, 100, // over-bright values clamp
	}
	img := unpremultiply(pixels, 2, 2)
	want := []byte{
		255, 0, 0, 255,
		127, 63, 0, 128,
		0, 0, 0, 0,
		255, 255, 255, 100,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := writePNG(path, unpremultiply(make([]byte, 16), 2, 2)); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("stat %s: %v", path, err)
	}
	if err := writePNG(filepath.Join(dir, "missing", "shot.png"), unpremultiply(nil, 1, 1)); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
