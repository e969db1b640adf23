package render

// Palette, Tokyo Night base
var (
	RgbBlack      = RGB{0, 0, 0}
	RgbBackground = RGB{26, 27, 38}
	RgbWhite      = RGB{255, 255, 255}

	// Cells
	RgbCellBorder       = RGB{122, 162, 247}
	RgbCellFill         = RGB{36, 40, 59}
	RgbCellFillActive   = RGB{52, 59, 88}
	RgbCellPulse        = RGB{80, 92, 140}
	RgbCellPressed      = RGB{65, 72, 104}
	RgbCellPressedGlyph = RGB{169, 177, 214}

	// Overlays
	RgbMine      = RGB{247, 118, 142}
	RgbMineBg    = RGB{90, 30, 40}
	RgbBomb      = RGB{255, 158, 100}
	RgbFlag      = RGB{158, 206, 106}
	RgbBlastHot  = RGB{255, 230, 120}
	RgbBlastCool = RGB{180, 60, 40}

	// Indicators
	RgbIndicator      = RGB{224, 175, 104}
	RgbIndicatorHover = RGB{255, 215, 140}

	// Labels
	RgbLabel       = RGB{180, 180, 180}
	RgbLabelActive = RGB{255, 255, 0}

	// HUD
	RgbTitle         = RGB{187, 154, 247}
	RgbButtonStart   = RGB{144, 238, 144}
	RgbButtonCollect = RGB{135, 206, 250}
	RgbStatusText    = RGB{192, 202, 245}
	RgbStatusGood    = RGB{158, 206, 106}
	RgbStatusBad     = RGB{247, 118, 142}
	RgbAudioOn       = RGB{158, 206, 106}
	RgbAudioOff      = RGB{86, 95, 137}

	// Forward movement sweep
	RgbSweep = RGB{125, 207, 255}
)
