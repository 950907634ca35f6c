package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 4, 16)

	grown := EnsureLen(buf, 8)
	if len(grown) != 8 {
		t.Fatalf("EnsureLen length = %d, want 8", len(grown))
	}
	if &grown[0] != &buf[0] {
		t.Fatal("EnsureLen should reuse capacity when available")
	}

	realloc := EnsureLen(buf, 32)
	if len(realloc) != 32 {
		t.Fatalf("EnsureLen length = %d, want 32", len(realloc))
	}

	empty := EnsureLen(buf, 0)
	if len(empty) != 0 {
		t.Fatalf("EnsureLen length = %d, want 0", len(empty))
	}
}

func TestZeroAndCopyInto(t *testing.T) {
	buf := []float32{1, 2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("index %d: got %v after Zero", i, v)
		}
	}

	src := []float32{4, 5}
	if n := CopyInto(buf, src); n != 2 {
		t.Fatalf("CopyInto copied %d, want 2", n)
	}
	if buf[0] != 4 || buf[1] != 5 || buf[2] != 0 {
		t.Fatalf("CopyInto result = %v", buf)
	}
}
