// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"fmt"
)

const (
	// ColorNone disables coloring.
	ColorNone Color = ""
	// ColorRed is used for failures.
	ColorRed Color = "red"
	// ColorGreen is used for progress on successful steps.
	ColorGreen Color = "green"
	// ColorYellow is used for warnings and echoed commands.
	ColorYellow Color = "yellow"
	// ColorBlue is used for informational notices.
	ColorBlue Color = "blue"
	// ColorMagenta is used for highlighted notices.
	ColorMagenta Color = "magenta"
	// ColorCyan is used for highlighted notices.
	ColorCyan Color = "cyan"
)

// ErrInvalidColor is the sentinel error wrapped by InvalidColorError.
var ErrInvalidColor = errors.New("invalid color")

type (
	// Color is a tag from the fixed ANSI palette defined in the script preamble.
	Color string

	// InvalidColorError is returned when a Color is not part of the palette.
	// It wraps ErrInvalidColor for errors.Is() compatibility.
	InvalidColorError struct {
		Value Color
	}
)

// palette maps each color to the preamble variable holding its escape sequence.
var palette = map[Color]string{
	ColorRed:     "ANSI_RED",
	ColorGreen:   "ANSI_GREEN",
	ColorYellow:  "ANSI_YELLOW",
	ColorBlue:    "ANSI_BLUE",
	ColorMagenta: "ANSI_MAGENTA",
	ColorCyan:    "ANSI_CYAN",
}

// Error implements the error interface.
func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q", e.Value)
}

// Unwrap returns ErrInvalidColor so callers can use errors.Is for programmatic detection.
func (e *InvalidColorError) Unwrap() error { return ErrInvalidColor }

// Validate returns an error if the Color is neither ColorNone nor part of the palette.
func (c Color) Validate() error {
	if c == ColorNone {
		return nil
	}
	if _, ok := palette[c]; !ok {
		return &InvalidColorError{Value: c}
	}
	return nil
}

// String returns the string representation of the Color.
func (c Color) String() string { return string(c) }

// wrap surrounds text with the color's escape variables. Unknown colors leave
// the text uncolored.
func (c Color) wrap(text string) string {
	v, ok := palette[c]
	if !ok {
		return text
	}
	return "${" + v + "}" + text + "${ANSI_RESET}"
}
