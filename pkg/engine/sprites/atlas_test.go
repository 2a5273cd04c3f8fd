package sprites

import "testing"

func TestSpriteID_ModifierBits(t *testing.T) {
	id := SpriteID(42) | TransparencyModifier
	if !id.IsTransparent() {
		t.Error("IsTransparent() = false after setting the modifier")
	}
	if id.Base() != 42 {
		t.Errorf("Base() = %d, want 42", id.Base())
	}
	if SpriteID(42).IsTransparent() {
		t.Error("plain id reports the transparency modifier")
	}
}

func TestAtlas_RegisterAndLookup(t *testing.T) {
	a := NewAtlas()
	if a.Len() != 1 {
		t.Fatalf("new atlas has %d entries, want the reserved one", a.Len())
	}

	e := Extent{Width: 64, Height: 31, XOffs: -31, YOffs: 0}
	id := a.Register(e)
	if id == EmptyBoundingBox {
		t.Fatal("Register returned the reserved id")
	}
	if got := a.Extent(id); got != e {
		t.Errorf("Extent(%d) = %+v, want %+v", id, got, e)
	}

	// Modifier bits must not affect the lookup.
	if got := a.Extent(id | TransparencyModifier); got != e {
		t.Errorf("Extent with modifier = %+v, want %+v", got, e)
	}
}

func TestAtlas_UnknownIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Extent of an unregistered id did not panic")
		}
	}()
	NewAtlas().Extent(99)
}
