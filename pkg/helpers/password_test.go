package helpers

import "testing"

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash equals the plain password")
	}
	if !CompareHashAndPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CompareHashAndPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

func TestCompareEmptyHash(t *testing.T) {
	// pure-OAuth accounts have no password hash
	if CompareHashAndPassword("", "") {
		t.Error("empty hash matched empty password")
	}
	if CompareHashAndPassword("", "anything") {
		t.Error("empty hash matched a password")
	}
}
