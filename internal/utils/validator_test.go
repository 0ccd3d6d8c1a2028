package utils

import (
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+tag@sub.domain.io"}
	invalid := []string{"", "plain", "@missing.local", "user@nodot"}

	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	if !IsValidUsername("player_one") {
		t.Error("expected player_one to be valid")
	}
	if IsValidUsername("ab") {
		t.Error("expected too-short username to be invalid")
	}
	if IsValidUsername(strings.Repeat("a", 31)) {
		t.Error("expected too-long username to be invalid")
	}
	if IsValidUsername("bad name!") {
		t.Error("expected username with punctuation to be invalid")
	}
}

func TestIsValidSignupRole(t *testing.T) {
	for _, role := range []string{"user", "developer"} {
		if !IsValidSignupRole(role) {
			t.Errorf("expected %q to be a valid signup role", role)
		}
	}
	for _, role := range []string{"moderator", "admin", ""} {
		if IsValidSignupRole(role) {
			t.Errorf("expected %q to be rejected at signup", role)
		}
	}
}

func TestIsValidScore(t *testing.T) {
	for _, score := range []int{1, 3, 5} {
		if !IsValidScore(score) {
			t.Errorf("expected score %d to be valid", score)
		}
	}
	for _, score := range []int{0, 6, -1} {
		if IsValidScore(score) {
			t.Errorf("expected score %d to be invalid", score)
		}
	}
}

func TestIsValidCommentBody(t *testing.T) {
	if !IsValidCommentBody("a fine comment") {
		t.Error("expected normal comment to be valid")
	}
	if IsValidCommentBody("   ") {
		t.Error("expected whitespace-only comment to be invalid")
	}
	if IsValidCommentBody(strings.Repeat("x", MaxCommentLength+1)) {
		t.Error("expected over-long comment to be invalid")
	}
	if !IsValidCommentBody(strings.Repeat("x", MaxCommentLength)) {
		t.Error("expected comment at the limit to be valid")
	}
	// The limit counts characters, not bytes.
	if !IsValidCommentBody(strings.Repeat("ü", MaxCommentLength)) {
		t.Error("expected multi-byte comment at the limit to be valid")
	}
	if IsValidCommentBody(strings.Repeat("ü", MaxCommentLength+1)) {
		t.Error("expected over-long multi-byte comment to be invalid")
	}
}
