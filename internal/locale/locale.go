// Package locale implements the UTF-8 locale precheck from spec.md §4.G.
// Recorded bytes are only meaningfully text when the child's encoding
// matches, so recording refuses to start under a non-UTF-8 locale.
package locale

import (
	"errors"
	"os"
	"strings"
)

// ErrNonUTF8Locale is returned by CheckUTF8 when the highest-priority set
// variable among LC_ALL, LC_CTYPE, and LANG does not declare a UTF-8
// character encoding, or when none of them is set.
var ErrNonUTF8Locale = errors.New("locale does not declare a UTF-8 encoding (checked LC_ALL, LC_CTYPE, LANG)")

// varsInPriorityOrder is the lookup order mandated by spec.md §4.G.
var varsInPriorityOrder = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// CheckUTF8 inspects LC_ALL, LC_CTYPE, and LANG in that priority order; the
// first one set to a non-empty value decides. It passes when that value
// contains "utf-8" or "utf8" (case-insensitively) and returns
// ErrNonUTF8Locale otherwise, including when none are set at all.
func CheckUTF8() error {
	for _, name := range varsInPriorityOrder {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		lower := strings.ToLower(v)
		if strings.Contains(lower, "utf-8") || strings.Contains(lower, "utf8") {
			return nil
		}
		// Highest-priority set variable wins; a non-UTF-8 value here
		// short-circuits rather than falling through to the next var.
		return ErrNonUTF8Locale
	}
	return ErrNonUTF8Locale
}
