package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutPosterWidth is the minimum width to show the poster beside details.
	LayoutPosterWidth = 90
)

// Poster preview limits, in terminal cells.
const (
	PosterMaxCols = 32
	PosterMaxRows = 24
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read per refresh.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// RequestTimeout bounds a single remote call started from the UI.
	RequestTimeout = 15 * time.Second

	// FlashDuration is how long a confirmation stays in the header.
	FlashDuration = 3 * time.Second
)
