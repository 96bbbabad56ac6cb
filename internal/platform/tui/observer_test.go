package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/storage"
)

func TestSessionObserverCountsTwists(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	obs := newSessionObserver("zev", logger, store)

	obs.Observe(zev.Event{Type: zev.EventTwistStarted, Twist: zev.Twist{Kind: zev.TwistMirrorWorld}})
	obs.Observe(zev.Event{Type: zev.EventTwistEnded, Twist: zev.Twist{Kind: zev.TwistMirrorWorld}})
	obs.Observe(zev.Event{Type: zev.EventTwistStarted, Twist: zev.Twist{Kind: zev.TwistMirrorWorld}})
	obs.Observe(zev.Event{Type: zev.EventLevelUp, Level: 2})

	if got := obs.Twists(); got != 2 {
		t.Errorf("Twists() = %d, want 2", got)
	}

	stats, err := store.TwistStats("zev")
	if err != nil {
		t.Fatalf("TwistStats: %v", err)
	}
	if len(stats) != 1 || stats[0].Kind != "mirror_world" || stats[0].Count != 2 {
		t.Errorf("stats = %+v, want mirror_world x2", stats)
	}

	out := buf.String()
	for _, want := range []string{"twist started", "twist ended", "level up"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	obs.Observe(zev.Event{Type: zev.EventRestarted})
	if got := obs.Twists(); got != 0 {
		t.Errorf("Twists() after restart = %d, want 0", got)
	}
}

func TestSessionObserverCountsTwistOnRestartSpawn(t *testing.T) {
	cfg := config.DefaultZevConfig()
	cfg.Twists.Chance = 1
	cfg.Twists.PerturbChance = 0

	obs := newSessionObserver("zev", log.New(&bytes.Buffer{}), nil)
	s := zev.NewSession(cfg, 7, zev.Collaborators{Observer: obs})
	if got := obs.Twists(); got != 1 {
		t.Fatalf("Twists() after start = %d, want 1", got)
	}

	s.Restart()
	if _, active := s.Twist(); !active {
		t.Fatal("restart should roll a twist with chance 1")
	}
	if got := obs.Twists(); got != 1 {
		t.Errorf("Twists() after restart = %d, want 1", got)
	}
}

func TestSessionObserverWithoutStore(t *testing.T) {
	var buf bytes.Buffer
	obs := newSessionObserver("zev", log.New(&buf), nil)
	obs.Observe(zev.Event{Type: zev.EventTwistStarted, Twist: zev.Twist{Kind: zev.TwistGravityFlip}})

	if got := obs.Twists(); got != 1 {
		t.Errorf("Twists() = %d, want 1", got)
	}
}

func TestStatusBoardTitle(t *testing.T) {
	b := &statusBoard{}

	b.ReportState(zev.Report{Score: 120, Level: 3})
	if got := b.Title("Zev"); got != "Zev - 120 pts, level 3" {
		t.Errorf("running title = %q", got)
	}

	b.ReportState(zev.Report{Score: 120, Level: 3, Paused: true})
	if got := b.Title("Zev"); got != "Zev - paused" {
		t.Errorf("paused title = %q", got)
	}

	b.ReportState(zev.Report{Score: 300, GameOver: true})
	if got := b.Title("Zev"); got != "Zev - game over (300)" {
		t.Errorf("game over title = %q", got)
	}
	if !b.Last().GameOver {
		t.Error("Last() lost the report")
	}
}
