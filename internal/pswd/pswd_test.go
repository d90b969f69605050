package pswd

import (
	"testing"
)

func TestHash_GeneratesSalt(t *testing.T) {
	first, err := Hash("sup3rs3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Hash == "" || first.Salt == "" {
		t.Fatalf("expected hash and salt, got %+v", first)
	}

	second, err := Hash("sup3rs3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Salt == second.Salt {
		t.Errorf("expected fresh salts, got %q twice", first.Salt)
	}
	if first.Hash == second.Hash {
		t.Errorf("expected different hashes for different salts")
	}
}

func TestHashWithSalt_Deterministic(t *testing.T) {
	first, err := HashWithSalt("sup3rs3cret", "00ff00ff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashWithSalt("sup3rs3cret", "00ff00ff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Hash != second.Hash {
		t.Errorf("expected deterministic hash, got %q and %q", first.Hash, second.Hash)
	}
}

func TestHashWithSalt_EmptySalt(t *testing.T) {
	if _, err := HashWithSalt("sup3rs3cret", ""); err == nil {
		t.Errorf("expected error for empty salt")
	}
}

func TestCompare(t *testing.T) {
	hashed, err := Hash("sup3rs3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := Compare("sup3rs3cret", hashed.Salt, hashed.Hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("expected matching password to compare true")
	}

	ok, err = Compare("wrongpassword", hashed.Salt, hashed.Hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected mismatching password to compare false")
	}
}
