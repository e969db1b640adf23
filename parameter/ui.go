package parameter

// HUD layout
const (
	// StatusLineOffset is the distance of the status line from the bottom edge
	StatusLineOffset = 1

	// ButtonRowOffset is the distance of the button row from the bottom edge
	ButtonRowOffset = 3

	// ButtonPadding is the horizontal padding inside a button label
	ButtonPadding = 1

	// ButtonGap separates the start and collect buttons
	ButtonGap = 2

	// GridTopMargin keeps the title row clear of the grid
	GridTopMargin = 1

	// GridBottomMargin keeps the button and status rows clear of the grid
	GridBottomMargin = ButtonRowOffset + 1
)

// HUD text
const (
	TitleText         = " MINE TOWER "
	StartButtonText   = "START"
	CollectButtonText = "COLLECT"
	AudioStr          = "♫ "

	TextPressStart  = "Boom! Press START to play again"
	TextCanWin      = "Safe! You can win %s"
	TextYouWin      = "You win! Collect %s"
	TextPickCell    = "Pick a cell on the lit row"
	TextCollected   = "Collected %s"
	TextIdle        = "Press START (s) to begin"
	TextConnecting  = "Connecting..."
	TextStartFail   = "Could not start round: %s"
	TextCollectFail = "Could not collect: %s"
)

// Cell glyphs
const (
	GlyphPressed  = '·'
	GlyphMine     = '✹'
	GlyphBomb     = '●'
	GlyphFlag     = '⚑'
	GlyphTarget   = '◇'
	GlyphHover    = '◆'
	GlyphSweep    = '▲'
	GlyphBorderH  = '─'
	GlyphBorderV  = '│'
	GlyphCornerTL = '┌'
	GlyphCornerTR = '┐'
	GlyphCornerBL = '└'
	GlyphCornerBR = '┘'
)

// BlastFrames are shown in order across BlastDuration
var BlastFrames = []rune{'*', '✶', '✷', '✹', '✺', '·'}

// Tint and highlight intensities
const (
	// TintFactor scales colors of rows the player has not reached
	TintFactor = 0.45

	// HoverBoost brightens the hovered indicator
	HoverBoost = 1.35
)
