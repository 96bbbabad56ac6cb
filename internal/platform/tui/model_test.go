package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/core"
	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/registry"
	"github.com/joelgranik/game-of-zev/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60, Seed: 7}
}

// calmConfig has no twists so runs are predictable.
func calmConfig() *config.ZevConfig {
	cfg := config.DefaultZevConfig()
	cfg.Twists.Enabled = false
	cfg.Twists.Chance = 0
	cfg.Twists.PerturbChance = 0
	return &cfg
}

func newTestModel(t *testing.T, store *storage.Store, embedded bool) Model {
	t.Helper()
	game, err := registry.Create(string(zev.ModeTwisted))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m := NewModel(game, store, testRuntime(), Options{
		Config:   calmConfig(),
		Player:   "tester",
		Embedded: embedded,
	})
	m.Init()
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

// playToGameOver stacks hard drops in the middle until the board tops out.
func playToGameOver(t *testing.T, m Model) Model {
	t.Helper()
	for range 500 {
		m, _ = send(t, m, runeKey(' '))
		m, _ = send(t, m, TickMsg{})
		if m.gameState.GameOver {
			return m
		}
	}
	t.Fatal("game never ended")
	return m
}

func TestModelPauseAndResume(t *testing.T) {
	m := newTestModel(t, nil, false)

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("expected paused state")
	}
	if !strings.Contains(m.View(), "Paused") {
		t.Error("paused overlay missing")
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg{})
	if m.gameState.Paused {
		t.Error("expected game to resume")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil, false)

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("expected quitting")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store, false)
	m = playToGameOver(t, m)

	// Extra ticks must not save the run again.
	m, _ = send(t, m, TickMsg{})
	m, _ = send(t, m, TickMsg{})

	runs, err := store.TopRuns(string(zev.ModeTwisted), 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Player != "tester" {
		t.Errorf("player = %q", r.Player)
	}
	if r.Score != m.gameState.Score || r.Score <= 0 {
		t.Errorf("score = %d, game score %d", r.Score, m.gameState.Score)
	}
	if r.Twists != 0 {
		t.Errorf("twists = %d, want 0 with twists disabled", r.Twists)
	}
	if r.Duration <= 0 {
		t.Errorf("duration = %v, want positive", r.Duration)
	}

	// Restart then finish again saves a second run.
	m, _ = send(t, m, runeKey('r'))
	m, _ = send(t, m, TickMsg{})
	if m.gameState.GameOver {
		t.Fatal("restart did not start a new game")
	}
	playToGameOver(t, m)

	runs, err = store.TopRuns(string(zev.ModeTwisted), 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("saved %d runs, want 2", len(runs))
	}
}

func TestModelScoreboardOnlyWhenHalted(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store, false)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scores != nil {
		t.Fatal("scoreboard opened during play")
	}

	m = playToGameOver(t, m)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scores == nil {
		t.Fatal("scoreboard did not open after game over")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scores != nil {
		t.Error("back did not close the scoreboard")
	}
	if cmd != nil {
		t.Error("closing the scoreboard must not quit")
	}
	if m.IsQuitting() {
		t.Error("closing the scoreboard quit the game")
	}
}

func TestModelBackToMenu(t *testing.T) {
	standalone := newTestModel(t, nil, false)
	standalone = playToGameOver(t, standalone)
	standalone, _ = send(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	if standalone.BackToMenu() {
		t.Error("standalone model should ignore back")
	}

	embedded := newTestModel(t, nil, true)
	embedded, _ = send(t, embedded, tea.KeyMsg{Type: tea.KeyEsc})
	if embedded.BackToMenu() {
		t.Error("back during play should be ignored")
	}
	embedded = playToGameOver(t, embedded)
	embedded, _ = send(t, embedded, tea.KeyMsg{Type: tea.KeyEsc})
	if !embedded.BackToMenu() {
		t.Error("embedded model should return to menu after game over")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := newTestModel(t, nil, false)
	m, _ = send(t, m, runeKey(' '))
	m, _ = send(t, m, TickMsg{})
	score := m.gameState.Score

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.screen.Width() != 120 || m.screen.Height() != 49 {
		t.Errorf("screen = %dx%d, want 120x49", m.screen.Width(), m.screen.Height())
	}
	m, _ = send(t, m, TickMsg{})
	if m.gameState.Score != score {
		t.Errorf("score changed from %d to %d on resize", score, m.gameState.Score)
	}
}

func TestModelViewShowsBoardAndHelp(t *testing.T) {
	m := newTestModel(t, nil, false)
	m, _ = send(t, m, TickMsg{})

	view := m.View()
	if !strings.Contains(view, "NEXT") {
		t.Error("sidebar missing")
	}
	if !strings.Contains(view, "hard drop") {
		t.Error("help line missing")
	}
}
