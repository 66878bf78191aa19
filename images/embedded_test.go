package images

import "testing"

func TestGetImage(t *testing.T) {
	data, err := GetImage(GradientName)
	if err != nil {
		t.Fatalf("GetImage(%q) failed: %v", GradientName, err)
	}
	want := GradientWidth * GradientHeight * 2
	if len(data) != want {
		t.Errorf("decompressed %d bytes, want %d", len(data), want)
	}
}

func TestGetImageUnknown(t *testing.T) {
	if _, err := GetImage("missing.icn"); err == nil {
		t.Error("expected an error for an unknown image")
	}
}
