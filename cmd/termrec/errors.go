package main

import (
	"errors"

	"github.com/srg/termrec/internal/locale"
	"github.com/srg/termrec/internal/ptycore"
)

// FormatUserError renders err the way a person invoking the command should
// see it: pty supervisor failures get their direction and kind spelled out,
// the locale precheck gets a one-line hint, everything else prints as-is.
func FormatUserError(err error) string {
	var pe *ptycore.Error
	if errors.As(err, &pe) {
		return pe.Error()
	}
	if errors.Is(err, locale.ErrNonUTF8Locale) {
		return err.Error() + " (set LANG or LC_ALL to a UTF-8 locale)"
	}
	return err.Error()
}
