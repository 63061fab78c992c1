package gui

import (
	"testing"

	"github.com/Ak23b/vision-studio-app/internal/imaging"
)

func TestActions_Valid(t *testing.T) {
	tests := []struct {
		name    string
		actions []action
		want    int
	}{
		{"filters", filterActions(), 4},
		{"editor", editorActions(), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.actions) != tt.want {
				t.Errorf("got %d buttons, want %d", len(tt.actions), tt.want)
			}
			seen := make(map[string]bool)
			for _, a := range tt.actions {
				if seen[a.label] {
					t.Errorf("duplicate label %q", a.label)
				}
				seen[a.label] = true
				if err := a.transform.Validate(); err != nil {
					t.Errorf("%s: %v", a.label, err)
				}
			}
		})
	}
}

func TestActions_ApplyToImage(t *testing.T) {
	src, err := imaging.NewBuffer(8, 6, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	for _, a := range append(filterActions(), editorActions()...) {
		t.Run(a.label, func(t *testing.T) {
			out, err := imaging.Apply(a.transform, src)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if err := out.Validate(); err != nil {
				t.Errorf("invalid output: %v", err)
			}
		})
	}
}

func TestActions_EditorGeometry(t *testing.T) {
	src, err := imaging.NewBuffer(40, 30, 3)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string][2]int{
		"Rotate 90°": {30, 40},
		"Resize 50%": {20, 15},
	}
	for _, a := range editorActions() {
		size, ok := want[a.label]
		if !ok {
			continue
		}
		out, err := imaging.Apply(a.transform, src)
		if err != nil {
			t.Fatalf("%s: %v", a.label, err)
		}
		if out.Width != size[0] || out.Height != size[1] {
			t.Errorf("%s: got %dx%d, want %dx%d", a.label, out.Width, out.Height, size[0], size[1])
		}
	}
}
