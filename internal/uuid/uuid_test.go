package uuid

import "testing"

func TestNew(t *testing.T) {
	id := New()
	if !IsValid(id) {
		t.Fatalf("expected valid uuid, got %q", id)
	}
	if id[14] != '7' {
		t.Errorf("expected version 7 uuid, got %q", id)
	}
}

func TestNewIsTimeOrdered(t *testing.T) {
	a := New()
	b := New()
	if a >= b {
		t.Errorf("expected %q < %q", a, b)
	}
}

func TestParse(t *testing.T) {
	t.Run("canonicalizes", func(t *testing.T) {
		got, err := Parse("0190A1B2-C3D4-7E5F-8A9B-0C1D2E3F4A5B")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b" {
			t.Errorf("unexpected canonical form %q", got)
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := Parse("not-a-uuid"); err == nil {
			t.Error("expected error")
		}
		if IsValid("") {
			t.Error("empty string should not be valid")
		}
	})
}
