package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxCommentLength = 1000

func IsValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 30 {
		return false
	}
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_]+$`, username)
	return matched
}

// Roles a user may sign up with. Moderator and admin are assigned
// by an admin afterwards, never self-selected.
func IsValidSignupRole(role string) bool {
	return role == "user" || role == "developer"
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

func IsValidScore(score int) bool {
	return score >= 1 && score <= 5
}

func IsValidCommentBody(body string) bool {
	trimmed := strings.TrimSpace(body)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= MaxCommentLength
}
