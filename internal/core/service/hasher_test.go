package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("P@ss1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "" || hash == "P@ss1" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("hash does not embed its own parameters: %q", hash)
	}

	if !h.Verify("P@ss1", hash) {
		t.Fatalf("Verify rejected the original password")
	}
	if h.Verify("other", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestBcryptHasher_DistinctHashes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatalf("expected salted hashes to differ")
	}
	if !h.Verify("same", a) || !h.Verify("same", b) {
		t.Fatalf("both hashes must verify the plaintext")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, corrupt := range []string{"", "not-a-hash", "$2a$banana"} {
		if h.Verify("anything", corrupt) {
			t.Fatalf("Verify accepted corrupt hash %q", corrupt)
		}
	}
}

func TestNewBcryptHasher_CostClamping(t *testing.T) {
	for _, cost := range []int{-1, 0, 100} {
		h := NewBcryptHasher(cost)
		if h.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected fallback to default, got %d", cost, h.cost)
		}
	}

	h := NewBcryptHasher(bcrypt.MinCost)
	if h.cost != bcrypt.MinCost {
		t.Fatalf("valid cost was overridden: %d", h.cost)
	}
}
