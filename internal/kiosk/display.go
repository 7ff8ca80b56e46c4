package kiosk

import (
	"fmt"
	"io"
	"strings"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// Display renders the kiosk screen. Implementations must be fast and must not
// block; the loop calls them from its single goroutine.
type Display interface {
	// ShowToken renders the current scannable token and its fallback code.
	ShowToken(token *tokenDomain.Token, direction attendanceDomain.Direction)
	// ShowConfirmation renders the welcome or goodbye screen for a recorded event.
	ShowConfirmation(event *attendanceDomain.Event)
	// ShowClosed renders the clinic-closed screen.
	ShowClosed(date string)
	// ShowWaiting renders an idle screen outside the attendance windows.
	ShowWaiting(message string)
}

// TerminalDisplay renders kiosk screens as plain text, one screen per render.
type TerminalDisplay struct {
	out io.Writer
}

// NewTerminalDisplay creates a terminal display writing to out.
func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{out: out}
}

func (d *TerminalDisplay) ShowToken(token *tokenDomain.Token, direction attendanceDomain.Direction) {
	action := "CHECK IN"
	if direction == attendanceDomain.DirectionCheckOut {
		action = "CHECK OUT"
	}

	code, _ := tokenDomain.FallbackCode(token.Value)

	fmt.Fprintf(d.out, "%s\n  %s\n\n  Scan: %s\n  Code: %s\n%s\n",
		screenRule, action, token.Value, code, screenRule)
}

func (d *TerminalDisplay) ShowConfirmation(event *attendanceDomain.Event) {
	greeting := "Welcome!"
	if event.Direction == attendanceDomain.DirectionCheckOut {
		greeting = "Goodbye!"
	}

	fmt.Fprintf(d.out, "%s\n  %s\n  Recorded at %s\n%s\n",
		screenRule, greeting, event.OccurredAt.Format("15:04:05"), screenRule)
}

func (d *TerminalDisplay) ShowClosed(date string) {
	fmt.Fprintf(d.out, "%s\n  Clinic closed for %s\n%s\n", screenRule, date, screenRule)
}

func (d *TerminalDisplay) ShowWaiting(message string) {
	fmt.Fprintf(d.out, "%s\n  %s\n%s\n", screenRule, message, screenRule)
}

var screenRule = strings.Repeat("=", 48)
