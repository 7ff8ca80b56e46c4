// Package kiosk runs the rotating-token display loop for the clinic entrance.
package kiosk

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/clinichq/attend/internal/attendance/domain"
	"github.com/clinichq/attend/internal/config"
	tokenDomain "github.com/clinichq/attend/internal/token/domain"
)

// TokenIssuer issues a fresh kiosk token for the loop to display.
type TokenIssuer interface {
	Issue(ctx context.Context, kind tokenDomain.Kind, ttl time.Duration, assignedStaffID *uuid.UUID) (*tokenDomain.Token, error)
}

// EventSource lets the loop poll for attendance events recorded since the
// last tick, so the display can confirm a scan.
type EventSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]*attendanceDomain.Event, error)
}

// DayStatusChecker reports whether the clinic day has been closed.
type DayStatusChecker interface {
	IsDayClosed(ctx context.Context, date string) (bool, error)
}

// issueResult carries a completed token issuance back to the loop goroutine.
// The sequence number lets the loop discard completions that finished after a
// newer rotation already started.
type issueResult struct {
	seq   uint64
	token *tokenDomain.Token
	err   error
}

// Loop drives the kiosk display: rotate the token on a ticker, confirm scans,
// and show the closed screen after close-day. All display calls happen on the
// loop goroutine; token issuance runs concurrently so a slow store call never
// freezes the screen.
type Loop struct {
	config    *config.Config
	issuer    TokenIssuer
	events    EventSource
	dayStatus DayStatusChecker
	display   Display
	logger    *slog.Logger

	seq       uint64
	results   chan issueResult
	lastPoll  time.Time
}

// NewLoop creates a kiosk loop with the provided dependencies.
func NewLoop(
	cfg *config.Config,
	issuer TokenIssuer,
	events EventSource,
	dayStatus DayStatusChecker,
	display Display,
	logger *slog.Logger,
) *Loop {
	return &Loop{
		config:    cfg,
		issuer:    issuer,
		events:    events,
		dayStatus: dayStatus,
		display:   display,
		logger:    logger,
		results:   make(chan issueResult, 1),
	}
}

// Run starts the loop and blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("starting kiosk loop",
		slog.Duration("rotation_interval", l.config.KioskRotationInterval),
		slog.Duration("token_ttl", l.config.KioskTokenTTL),
	)

	l.lastPoll = time.Now().UTC()
	l.tick(ctx)

	ticker := time.NewTicker(l.config.KioskRotationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping kiosk loop")
			return ctx.Err()
		case res := <-l.results:
			l.handleResult(res)
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

// tick runs one loop iteration: confirm any new scans, then rotate or show
// the closed/waiting screen.
func (l *Loop) tick(ctx context.Context) {
	now := time.Now()

	// A confirmation holds the screen for the cooldown; rotation follows
	// immediately so the scanned token is never re-displayed.
	l.confirmNewEvents(ctx, now)

	closed, err := l.isDayClosed(ctx, now)
	if err != nil {
		l.logger.Warn("day status check failed", slog.Any("error", err))
	}
	if closed {
		l.display.ShowClosed(attendanceDomain.DateKey(now, l.config.Location()))
		return
	}

	kind, ok := l.activeKind(now)
	if !ok {
		l.display.ShowWaiting("No attendance window is open right now")
		return
	}

	l.rotate(ctx, kind)
}

// rotate starts a concurrent issuance tagged with the next sequence number.
func (l *Loop) rotate(ctx context.Context, kind tokenDomain.Kind) {
	l.seq++
	seq := l.seq

	go func() {
		issueCtx, cancel := context.WithTimeout(ctx, l.config.KioskRequestTimeout)
		defer cancel()

		token, err := l.issuer.Issue(issueCtx, kind, l.config.KioskTokenTTL, nil)

		select {
		case l.results <- issueResult{seq: seq, token: token, err: err}:
		case <-ctx.Done():
		}
	}()
}

// handleResult displays a completed issuance unless a newer rotation has
// superseded it.
func (l *Loop) handleResult(res issueResult) {
	if res.seq != l.seq {
		return
	}

	if res.err != nil {
		l.logger.Warn("token issuance failed, retrying next rotation", slog.Any("error", res.err))
		return
	}

	direction := attendanceDomain.DirectionCheckIn
	if res.token.Kind == tokenDomain.KindKioskCheckOut {
		direction = attendanceDomain.DirectionCheckOut
	}

	l.display.ShowToken(res.token, direction)
}

// confirmNewEvents polls the event log for scans recorded since the last poll
// and holds a confirmation screen for the most recent one.
func (l *Loop) confirmNewEvents(ctx context.Context, now time.Time) {
	pollCtx, cancel := context.WithTimeout(ctx, l.config.KioskRequestTimeout)
	defer cancel()

	events, err := l.events.ListBetween(pollCtx, l.lastPoll, now.UTC())
	if err != nil {
		l.logger.Warn("event poll failed", slog.Any("error", err))
		return
	}
	l.lastPoll = now.UTC()

	if len(events) == 0 {
		return
	}

	l.display.ShowConfirmation(events[len(events)-1])
	l.wait(ctx, l.config.KioskConfirmCooldown)
}

func (l *Loop) isDayClosed(ctx context.Context, now time.Time) (bool, error) {
	statusCtx, cancel := context.WithTimeout(ctx, l.config.KioskRequestTimeout)
	defer cancel()

	return l.dayStatus.IsDayClosed(statusCtx, attendanceDomain.DateKey(now, l.config.Location()))
}

// activeKind picks the token kind to issue from the clinic-local time. With
// window enforcement off, mornings lean check-in and the rest of the day
// check-out, using the check-out window start as the pivot.
func (l *Loop) activeKind(now time.Time) (tokenDomain.Kind, bool) {
	hour := now.In(l.config.Location()).Hour()

	switch {
	case hour >= l.config.CheckInWindowStart && hour < l.config.CheckInWindowEnd:
		return tokenDomain.KindKioskCheckIn, true
	case hour >= l.config.CheckOutWindowStart && hour < l.config.CheckOutWindowEnd:
		return tokenDomain.KindKioskCheckOut, true
	case l.config.KioskEnforceWindows:
		return "", false
	case hour < l.config.CheckOutWindowStart:
		return tokenDomain.KindKioskCheckIn, true
	}
	return tokenDomain.KindKioskCheckOut, true
}

// wait sleeps for d unless ctx is cancelled first.
func (l *Loop) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
