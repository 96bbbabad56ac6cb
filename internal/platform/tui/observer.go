package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/storage"
)

// sessionObserver logs session events and feeds twist statistics
// into the leaderboard store.
type sessionObserver struct {
	gameID string
	logger *log.Logger
	store  *storage.Store

	mu     sync.Mutex
	twists int
}

func newSessionObserver(gameID string, logger *log.Logger, store *storage.Store) *sessionObserver {
	return &sessionObserver{gameID: gameID, logger: logger, store: store}
}

// Observe implements zev.Observer.
func (o *sessionObserver) Observe(ev zev.Event) {
	switch ev.Type {
	case zev.EventTwistStarted:
		o.mu.Lock()
		o.twists++
		o.mu.Unlock()
		o.logger.Debug("twist started", "twist", ev.Twist.String(), "clock", ev.Clock)
		if o.store != nil {
			if err := o.store.RecordTwist(o.gameID, ev.Twist.Kind.String()); err != nil {
				o.logger.Warn("failed to record twist", "err", err)
			}
		}
	case zev.EventTwistEnded:
		o.logger.Debug("twist ended", "twist", ev.Twist.Kind.String(), "clock", ev.Clock)
	case zev.EventPerturbed:
		o.logger.Debug("piece perturbed", "clock", ev.Clock)
	case zev.EventLinesCleared:
		o.logger.Debug("lines cleared", "lines", ev.Lines, "score", ev.Score)
	case zev.EventLevelUp:
		o.logger.Info("level up", "level", ev.Level, "score", ev.Score)
	case zev.EventGameOver:
		o.logger.Info("game over", "score", ev.Score, "level", ev.Level, "twists", o.Twists())
	case zev.EventRestarted:
		o.mu.Lock()
		o.twists = 0
		o.mu.Unlock()
		o.logger.Info("game restarted")
	}
}

// Twists returns the twists activated since the last restart.
func (o *sessionObserver) Twists() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.twists
}

// statusBoard keeps the latest report pushed by the session.
type statusBoard struct {
	mu   sync.Mutex
	last zev.Report
}

// ReportState implements zev.UI.
func (b *statusBoard) ReportState(r zev.Report) {
	b.mu.Lock()
	b.last = r
	b.mu.Unlock()
}

// Last returns the most recent report.
func (b *statusBoard) Last() zev.Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Title formats the report as a terminal window title.
func (b *statusBoard) Title(gameTitle string) string {
	r := b.Last()
	switch {
	case r.GameOver:
		return fmt.Sprintf("%s - game over (%d)", gameTitle, r.Score)
	case r.Paused:
		return fmt.Sprintf("%s - paused", gameTitle)
	default:
		return fmt.Sprintf("%s - %d pts, level %d", gameTitle, r.Score, r.Level)
	}
}
