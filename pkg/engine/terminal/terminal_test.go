package terminal

import "testing"

func TestGetSize_AlwaysPositive(t *testing.T) {
	w, h := GetSize()
	if w <= 0 || h <= 0 {
		t.Errorf("GetSize() = %dx%d", w, h)
	}
}

func TestGetWidth_MatchesGetSize(t *testing.T) {
	w, _ := GetSize()
	if got := GetWidth(); got != w {
		t.Errorf("GetWidth() = %d, GetSize width = %d", got, w)
	}
}
