package branch

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Prefix is prepended to every generated branch name.
const Prefix = "rd"

var (
	hyphenRuns    = regexp.MustCompile(`-+`)
	forbiddenRune = regexp.MustCompile(`[\[\]"'()]`)
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "propriété" becomes "propriete".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Issue is the subset of ticket data branch naming needs.
type Issue struct {
	ID           int
	Subject      string
	AssigneeName string
	Version      string
}

// ForIssue derives the canonical branch name for an issue:
// rd-<id>-<trigram>-<major.minor>-<subject-slug>.
//
// Example: issue 42 "[Do] stuff \"asap\"" assigned to "Arnold Bcon Tran"
// targeting "8.1.0" becomes "rd-42-abc-8.1-do-stuff-asap".
func ForIssue(issue Issue) (string, error) {
	trigram, err := Trigram(issue.AssigneeName)
	if err != nil {
		return "", err
	}

	version, err := TargetVersion(issue.Version)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%s-%s-%s",
		Prefix, issue.ID, trigram, version, CleanSubject(issue.Subject)), nil
}

// Trigram derives the 3-letter assignee code from a full name:
// the first letter of the first name plus the first two letters of the
// second name, lowercased. "Arnold Bcon Tran" becomes "abc".
func Trigram(fullName string) (string, error) {
	tokens := strings.Fields(fullName)
	if len(tokens) < 2 {
		return "", &NameError{Field: "assignee", Value: fullName,
			Reason: "need at least two name parts to build a trigram"}
	}

	// Rune slices, not byte offsets: accented names must keep whole
	// characters.
	first := []rune(tokens[0])
	second := []rune(tokens[1])
	if len(second) < 2 {
		return "", &NameError{Field: "assignee", Value: fullName,
			Reason: "second name part is too short to build a trigram"}
	}

	return strings.ToLower(string(first[0]) + string(second[:2])), nil
}

// TargetVersion extracts the major.minor prefix from a fixed-version name,
// e.g. "8.1" from "8.1.0".
func TargetVersion(version string) (string, error) {
	if len(version) < 3 {
		return "", &NameError{Field: "fixed_version", Value: version,
			Reason: "version must be at least 3 characters (major.minor)"}
	}
	return version[:3], nil
}

// CleanSubject turns a ticket subject into a branch-safe slug.
// Spaces become hyphens, colons become "=", brackets, quotes and
// parentheses are stripped, accents are transliterated to plain ASCII,
// and runs of hyphens collapse to one. The result is stable under
// repeated application.
func CleanSubject(subject string) string {
	s := strings.TrimSpace(subject)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, ":", "=")
	s = strings.ToLower(s)
	s = forbiddenRune.ReplaceAllString(s, "")

	if ascii, _, err := transform.String(stripMarks, s); err == nil {
		s = ascii
	}

	return hyphenRuns.ReplaceAllString(s, "-")
}
