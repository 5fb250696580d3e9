// Package normalize turns remote display names into ledger account path
// segments by a deterministic character transformation.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
)

// EmptyError reports a name that normalized to nothing (pure punctuation).
type EmptyError struct {
	Name string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("name %q normalizes to an empty path segment", e.Name)
}

// Name converts a display name to a path segment: characters that are not
// letters, digits, or spaces are removed, then each space becomes a hyphen.
// Case is preserved. Punctuation is dropped rather than replaced, so
// "Interest & Fees" yields "Interest--Fees". The double hyphen is a known,
// preserved artifact; collapsing it would coalesce distinct names.
func Name(name string) (string, error) {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := b.String()
	if out == "" {
		return "", &EmptyError{Name: name}
	}
	return out, nil
}

// Qualified normalizes a name with an optional group name prefixed as a
// separate path segment: ("Rent & Mortgage", "Immediate Obligations") yields
// "Immediate-Obligations:RentMortgage".
func Qualified(name, group string) (string, error) {
	seg, err := Name(name)
	if err != nil {
		return "", err
	}
	if group == "" {
		return seg, nil
	}
	groupSeg, err := Name(group)
	if err != nil {
		return "", err
	}
	return groupSeg + ":" + seg, nil
}
