package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPasswordHash("hunter2", hash) {
		t.Fatal("expected correct password to verify")
	}
	if CheckPasswordHash("hunter3", hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}
