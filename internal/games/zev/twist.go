package zev

import "fmt"

// TwistKind identifies a twist in the catalog.
type TwistKind int

const (
	TwistNone TwistKind = iota
	TwistGravityFlip
	TwistDrunkControls
	TwistPieceTransform
	TwistBoardShake
	TwistMysteryBlock
	TwistGhostPiece
	TwistSpeedChange
	TwistBlockVanish
	TwistPieceExplosion
	TwistMirrorWorld
	TwistDanceParty
	TwistSizeChange
	TwistRainbowMode
	TwistMultiplier
	TwistCrazyRotation
	TwistBouncyBlocks
	TwistTimeDilation
	TwistFractalTrails
	TwistDimensionShift
	TwistKaleidoscope
	TwistColorSynesthesia
	TwistRealityGlitch
	TwistQuantumPieces
	TwistVoidPortals

	twistEnd
)

type twistInfo struct {
	name    string
	message string
}

var twistTable = [twistEnd]twistInfo{
	TwistNone:             {"none", ""},
	TwistGravityFlip:      {"gravity_flip", "Oops! Gravity took a vacation!"},
	TwistDrunkControls:    {"drunk_controls", "Had one too many, eh?"},
	TwistPieceTransform:   {"piece_transform", "Surprise makeover!"},
	TwistBoardShake:       {"board_shake", "Earthquake mode activated!"},
	TwistMysteryBlock:     {"mystery_block", "What's in the mystery box?"},
	TwistGhostPiece:       {"ghost_piece", "Now you see me..."},
	TwistSpeedChange:      {"speed_change", "Slow down...or speed up?"},
	TwistBlockVanish:      {"block_vanish", "Magic trick: disappearing blocks!"},
	TwistPieceExplosion:   {"piece_explosion", "BOOM! Pieces everywhere!"},
	TwistMirrorWorld:      {"mirror_world", "Through the looking glass..."},
	TwistDanceParty:       {"dance_party", "Dance party time!"},
	TwistSizeChange:       {"size_change", "Honey, I shrunk the pieces!"},
	TwistRainbowMode:      {"rainbow_mode", "RAINBOW POWER!"},
	TwistMultiplier:       {"multiplier", "DOUBLE POINTS TIME!"},
	TwistCrazyRotation:    {"crazy_rotation", "You spin me right round..."},
	TwistBouncyBlocks:     {"bouncy_blocks", "Boing! Boing! Boing!"},
	TwistTimeDilation:     {"time_dilation", "Time is melting..."},
	TwistFractalTrails:    {"fractal_trails", "Fractals everywhere!"},
	TwistDimensionShift:   {"dimension_shift", "Welcome to the 4th dimension!"},
	TwistKaleidoscope:     {"kaleidoscope", "Through the kaleidoscope..."},
	TwistColorSynesthesia: {"color_synesthesia", "Colors are alive!"},
	TwistRealityGlitch:    {"reality_glitch", "Reality is breaking!"},
	TwistQuantumPieces:    {"quantum_pieces", "Quantum superposition activated!"},
	TwistVoidPortals:      {"void_portals", "Portal to the void opened!"},
}

// Announcements for the random per-tick perturbations.
const (
	MessageSpin  = "Wheee! Spinning time!"
	MessageNudge = "Piece got the zoomies!"
)

// String returns the catalog name, e.g. "gravity_flip".
func (k TwistKind) String() string {
	if k < 0 || k >= twistEnd {
		return fmt.Sprintf("TwistKind(%d)", int(k))
	}
	return twistTable[k].name
}

// Message returns the announcement shown when the twist starts.
func (k TwistKind) Message() string {
	if k < 0 || k >= twistEnd {
		return ""
	}
	return twistTable[k].message
}

// Valid reports whether k is a catalog twist.
func (k TwistKind) Valid() bool {
	return k > TwistNone && k < twistEnd
}

// Cosmetic reports whether the twist changes only how the game looks.
func (k TwistKind) Cosmetic() bool {
	switch k {
	case TwistBoardShake, TwistDanceParty, TwistSizeChange, TwistRainbowMode,
		TwistBouncyBlocks, TwistDimensionShift, TwistKaleidoscope, TwistRealityGlitch:
		return true
	}
	return false
}

// Catalog returns every twist kind in catalog order.
func Catalog() []TwistKind {
	kinds := make([]TwistKind, 0, twistEnd-1)
	for k := TwistNone + 1; k < twistEnd; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseTwistKind looks a twist up by catalog name.
func ParseTwistKind(name string) (TwistKind, bool) {
	for k := TwistNone + 1; k < twistEnd; k++ {
		if twistTable[k].name == name {
			return k, true
		}
	}
	return TwistNone, false
}

// Twist is an activated catalog entry with its payload. Only speed_change and
// time_dilation use Factor (drop interval multiplier, 0.5 or 2), and only
// size_change uses Scale (0.5 or 1.5).
type Twist struct {
	Kind   TwistKind
	Factor float64
	Scale  float64
}

func (t Twist) String() string {
	switch t.Kind {
	case TwistSpeedChange, TwistTimeDilation:
		return fmt.Sprintf("%s x%g", t.Kind, t.Factor)
	case TwistSizeChange:
		return fmt.Sprintf("%s x%g", t.Kind, t.Scale)
	default:
		return t.Kind.String()
	}
}
