// Package output builds termenv outputs whose color profile follows the
// destination, so redirected reports and logs stay free of escape codes.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ProfileFor returns the color profile for writing to w.
// NO_COLOR forces Ascii. Terminals get their detected profile; anything
// that is not an *os.File (buffers, test writers) gets Ascii.
func ProfileFor(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	f, ok := w.(*os.File)
	if !ok {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}

// New creates a termenv.Output for w using ProfileFor.
// A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return NewWithProfile(w, ProfileFor(w), opts...)
}

// NewWithProfile creates a termenv.Output with a fixed profile.
func NewWithProfile(w io.Writer, profile termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profile),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
