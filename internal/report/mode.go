package report

import (
	"fmt"

	"github.com/nghiaugust/ballot-processing-system/internal/apperr"
)

// Mode selects which metric groups a report carries.
type Mode string

const (
	ModeText  Mode = "text"
	ModeFlags Mode = "flags"
	ModeLines Mode = "lines"
	ModeAll   Mode = "all"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeText, ModeFlags, ModeLines, ModeAll:
		return m, nil
	case "":
		return ModeAll, nil
	default:
		return "", apperr.NewValidation(fmt.Sprintf("unknown report mode %q (want text, flags, lines or all)", s))
	}
}

func (m Mode) Text() bool  { return m == ModeText || m == ModeAll }
func (m Mode) Flags() bool { return m == ModeFlags || m == ModeAll }
func (m Mode) Lines() bool { return m == ModeLines || m == ModeAll }
