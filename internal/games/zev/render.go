package zev

import (
	"fmt"
	"math"

	"github.com/joelgranik/game-of-zev/internal/core"
)

const (
	cellWidth    = 2 // Board cells are two columns wide so they look square
	sidebarWidth = 26
	hudHeight    = 2
)

// MinScreenSize returns the smallest screen that fits a width x height board.
func MinScreenSize(width, height int) (int, int) {
	return width*cellWidth + 2 + 2 + sidebarWidth, height + 2 + hudHeight
}

// Render draws the current game state into the provided screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	s := g.session

	g.renderHUD(dst)

	minW, minH := MinScreenSize(s.Width(), s.Height())
	if dst.Width() < minW || dst.Height() < minH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	boardW := s.Width()*cellWidth + 2
	ox := (dst.Width() - boardW - 2 - sidebarWidth) / 2
	oy := hudHeight

	t, _ := s.Twist()
	if t.Kind == TwistBoardShake {
		ox = core.Clamp(ox+s.Ticks()%3-1, 0, max(dst.Width()-minW, 0))
	}

	v := view{s: s, dst: dst, ox: ox + 1, oy: oy + 1, twist: t.Kind, phase: s.Ticks()}
	dst.DrawBox(core.NewRect(ox, oy, boardW, s.Height()+2), boxColor(t.Kind, v.phase))
	v.drawBoard()
	v.drawPortals()
	v.drawEntities()
	v.drawPiece()

	g.renderSidebar(dst, ox+boardW+2, oy)

	switch s.State() {
	case StateGameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - R to restart, Tab for scores", s.Score()))
	case StatePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session
	hud := fmt.Sprintf(" %s - Score: %d  Level: %d  Lines: %d", g.Title(), s.Score(), s.Level(), s.Lines())
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	s := g.session

	dst.DrawTextColored(x, y, "NEXT", core.ColorBrightWhite)
	next := s.Next()
	for py, row := range next.Matrix {
		for px, c := range row {
			if c != Empty {
				dst.DrawTextColored(x+px*cellWidth, y+1+py, "██", CellColor(c))
			}
		}
	}

	line := y + 6
	dst.DrawText(x, line, fmt.Sprintf("Combo  %d", s.Combo()))
	dst.DrawText(x, line+1, fmt.Sprintf("Speed  %dms", s.DropInterval().Milliseconds()))
	line += 3

	dst.DrawTextColored(x, line, "TWIST", core.ColorBrightWhite)
	if t, ok := s.Twist(); ok {
		dst.DrawTextColored(x, line+1, t.String(), core.ColorBrightMagenta)
		dst.DrawText(x, line+2, fmt.Sprintf("%.1fs left", s.TwistRemaining().Seconds()))
	} else {
		dst.DrawTextColored(x, line+1, "none", core.ColorGray)
	}
	mods := s.Modifiers()
	if mods.GravityFlipped {
		dst.DrawTextColored(x, line+3, "gravity ↑", core.ColorBrightYellow)
	}
	if mods.ControlsInverted {
		dst.DrawTextColored(x+11, line+3, "controls ⇄", core.ColorBrightYellow)
	}
	line += 5

	if msg := s.Message(); msg != "" {
		for i, part := range wrap(msg, sidebarWidth) {
			dst.DrawTextColored(x, line+i, part, core.RainbowAt(s.Ticks()+i))
		}
	}

	help := []string{"←→ move  ↑ rotate", "↓ soft  space hard", "P pause  R restart"}
	for i, h := range help {
		dst.DrawTextColored(x, dst.Height()-len(help)+i, h, core.ColorGray)
	}
}

// renderOverlay draws a centered overlay message.
func renderOverlay(dst *core.Screen, title, subtitle string) {
	centerY := dst.Height() / 2
	width := max(len([]rune(title)), len([]rune(subtitle))) + 4
	rect := core.NewRect((dst.Width()-width)/2, centerY-2, width, 5)
	dst.DrawRect(rect, ' ')
	dst.DrawBox(rect, core.ColorBrightWhite)
	dst.DrawTextCentered(centerY-1, title)
	dst.DrawTextCentered(centerY+1, subtitle)
}

// view draws board-space content with the active cosmetic twist applied.
type view struct {
	s      *Session
	dst    *core.Screen
	ox, oy int
	twist  TwistKind
	phase  int
}

func (v view) glyph() string {
	switch v.twist {
	case TwistDimensionShift:
		return "▓▓"
	case TwistSizeChange:
		if v.s.Modifiers().Scale < 1 {
			return "▪▪"
		}
		return "▐█"
	default:
		return "██"
	}
}

func (v view) color(x, y int, c Cell) core.Color {
	switch v.twist {
	case TwistRainbowMode:
		return core.RainbowAt(x + y + v.phase)
	case TwistKaleidoscope:
		return core.RainbowAt(int(c) + v.phase)
	case TwistColorSynesthesia:
		return core.RainbowAt(int(c) + v.s.Modifiers().Pulses)
	}
	return CellColor(c)
}

// put draws one board cell; rows outside the board are skipped.
func (v view) put(x, y int, text string, c core.Color) {
	if y < 0 || y >= v.s.Height() || x < 0 || x >= v.s.Width() {
		return
	}
	sx := v.ox + x*cellWidth
	if v.twist == TwistDanceParty && (y+v.phase)%2 == 0 {
		sx += (v.phase % 2)
	}
	if v.twist == TwistRealityGlitch && glitched(x, y, v.phase) {
		text = "▒▒"
		c = core.ColorGray
	}
	v.dst.DrawTextColored(sx, v.oy+y, text, c)
}

func (v view) drawBoard() {
	for y, row := range v.s.Board() {
		for x, c := range row {
			if c == Empty {
				v.put(x, y, " .", core.ColorGray)
				continue
			}
			glyph := v.glyph()
			if c == Mystery {
				glyph = "??"
			}
			v.put(x, y, glyph, v.color(x, y, c))
		}
	}
}

func (v view) drawPiece() {
	p := v.s.Current()
	if v.twist == TwistBouncyBlocks && v.phase%2 == 1 {
		p.Y--
	}
	p.Cells(func(x, y int, c Cell) {
		v.put(x, y, v.glyph(), v.color(x, y, c))
	})
}

func (v view) drawPortals() {
	for _, p := range v.s.Portals() {
		v.put(p.X, p.Y, "()", core.ColorPurple)
	}
}

func (v view) drawEntities() {
	for _, e := range v.s.Entities() {
		glyph := "░░"
		if e.Alpha >= 0.5 {
			glyph = "▒▒"
		}
		switch e.Kind {
		case EntityParticle:
			v.put(int(math.Round(e.X)), int(math.Round(e.Y)), "**", CellColor(e.Color))
		case EntityGhost:
			v.put(int(math.Round(e.X)), int(math.Round(e.Y)), glyph, CellColor(e.Color))
		case EntityTrail, EntityEcho:
			ox, oy := int(math.Round(e.X)), int(math.Round(e.Y))
			for y, row := range e.Matrix {
				for x, c := range row {
					if c != Empty {
						v.put(ox+x, oy+y, glyph, CellColor(e.Color))
					}
				}
			}
		}
	}
}

func boxColor(k TwistKind, phase int) core.Color {
	switch {
	case k == TwistNone:
		return core.ColorWhite
	case k.Cosmetic():
		return core.RainbowAt(phase)
	default:
		return core.ColorBrightMagenta
	}
}

// glitched picks roughly one cell in seventeen per tick.
func glitched(x, y, phase int) bool {
	h := uint32(x*73856093) ^ uint32(y*19349663) ^ uint32(phase*83492791)
	return h%17 == 0
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line []rune
	word := []rune{}
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0:0]
		}
	}
	for _, r := range text + " " {
		if r != ' ' {
			word = append(word, r)
			continue
		}
		if len(line)+1+len(word) > width {
			flush()
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, word...)
		word = word[:0]
	}
	flush()
	return lines
}
