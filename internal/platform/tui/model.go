package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/core"
	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/registry"
	"github.com/joelgranik/game-of-zev/internal/storage"
)

// Options carries the per-run settings of a game model.
type Options struct {
	// Config is handed to games that accept one. Zero means the defaults.
	Config *config.ZevConfig

	// Sound receives audio cues. Nil is silent.
	Sound zev.SoundPlayer

	// Logger receives session events. Nil discards them.
	Logger *log.Logger

	// Player is recorded with finished runs.
	Player string

	// Embedded makes Back on a paused or finished game hand control
	// to the enclosing model instead of being ignored.
	Embedded bool
}

type configurable interface {
	Configure(cfg config.ZevConfig)
}

type attachable interface {
	Attach(c zev.Collaborators)
}

type sessionOwner interface {
	Session() *zev.Session
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger
	observer   *sessionObserver
	status     *statusBoard
	player     string
	embedded   bool
	title      string
	scores     *ScoreboardModel
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("game", game.ID())

	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	observer := newSessionObserver(game.ID(), logger, store)
	status := &statusBoard{}

	if c, ok := game.(configurable); ok {
		zc := config.DefaultZevConfig()
		if opts.Config != nil {
			zc = *opts.Config
		}
		c.Configure(zc)
	}
	if a, ok := game.(attachable); ok {
		a.Attach(zev.Collaborators{
			Sound:    opts.Sound,
			UI:       status,
			Observer: observer,
		})
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		logger:     logger,
		observer:   observer,
		status:     status,
		player:     player,
		embedded:   opts.Embedded,
	}
}

// playHeight leaves the last terminal row for the help line.
func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "player", m.player, "seed", m.config.Seed)

	return tea.Batch(
		tickCmd(m.config.TickRate),
		tea.SetWindowTitle(m.game.Title()),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scores != nil {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.logger.Info("player quit", "score", m.gameState.Score)
		return m, tea.Quit
	}

	halted := m.gameState.GameOver || m.gameState.Paused
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionScoreboard:
		if halted {
			sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
			sb.embedded = true
			sb.selectGame(m.game.ID())
			m.scores = &sb
		}
		return m, nil
	case core.ActionBack:
		if m.embedded && halted {
			m.backToMenu = true
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// updateScores forwards input to the open leaderboard.
func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		m.scores = nil
		return m, cmd
	}
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scores = nil
		return m, nil
	}
	m.scores = &sb
	return m, cmd
}

// handleResize processes window resize events.
// The board keeps its size so the running game is left alone.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width

	if m.scores != nil {
		next, _ := m.scores.Update(msg)
		if sb, ok := next.(ScoreboardModel); ok {
			m.scores = &sb
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// The leaderboard only opens on a halted game, so nothing is lost by waiting.
	if m.scores != nil {
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if title := m.status.Title(m.game.Title()); title != m.title {
		m.title = title
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return m, tea.Batch(cmds...)
}

// saveRun records the finished run on the leaderboard.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
		Lines:  m.gameState.Lines,
		Twists: m.observer.Twists(),
	}
	if so, ok := m.game.(sessionOwner); ok && so.Session() != nil {
		run.Duration = so.Session().Clock()
	}

	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("failed to save run", "err", err)
		return
	}
	rank, err := m.store.Rank(run.GameID, run.Score)
	if err != nil {
		m.logger.Warn("failed to rank run", "err", err)
		return
	}
	m.logger.Info("run saved", "player", run.Player, "score", run.Score, "rank", rank)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("no home directory for screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".zev", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("failed to create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("failed to save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	view := RenderScreen(m.screen)
	if m.config.ScreenH > 1 {
		view += "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
	}
	return view
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
