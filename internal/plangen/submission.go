package plangen

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MinFieldLength is the minimum trimmed length of every answer, counted in
// characters rather than bytes so multi-byte input is not over-rejected.
const MinFieldLength = 12

var (
	ErrMissingFields = errors.New("problem, target user and solution are all required")
	ErrFieldTooShort = errors.New("each answer must contain at least 12 characters")
)

// Submission is one idea as posted by the client. It only lives for the
// duration of the request unless persistence is configured.
type Submission struct {
	Problem    string `json:"problem"`
	TargetUser string `json:"targetUser"`
	Solution   string `json:"solution"`
}

// Validate checks presence of all three fields first, then the minimum
// length of each. It reports the first violated rule only.
func (s Submission) Validate() error {
	if s.Problem == "" || s.TargetUser == "" || s.Solution == "" {
		return ErrMissingFields
	}
	for _, field := range []string{s.Problem, s.TargetUser, s.Solution} {
		if utf8.RuneCountInString(strings.TrimSpace(field)) < MinFieldLength {
			return ErrFieldTooShort
		}
	}
	return nil
}
