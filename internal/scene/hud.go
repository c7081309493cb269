package scene

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"lanerush/internal/game"
)

// Anchor is where a HUD line is placed on screen.
type Anchor int

const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	Center
	BelowCenter
)

type TextLine struct {
	Text   string
	Anchor Anchor
	Scale  float32
	Color  mgl32.Vec3
}

// HUDState is everything the overlay shows.
type HUDState struct {
	Stats      game.RunStats
	State      game.GameState
	Notified   bool
	Best       float64 // best recorded distance, 0 if none
	HasBest    bool
	RestartKey string
	Loading    bool // waiting for the car model
	Countdown  int  // digit on show while Counting
	Counting   bool
}

const NoticeText = "Game Over!"

// HUDLines lays out the overlay text.
func HUDLines(h HUDState) []TextLine {
	white := mgl32.Vec3{1, 1, 1}
	yellow := Hex(0xffff64)
	red := Hex(0xff5050)

	lines := []TextLine{
		{Text: fmt.Sprintf("Distance: %.0f", h.Stats.Distance), Anchor: TopLeft, Scale: 2, Color: white},
		{Text: formatElapsed(h.Stats.Elapsed), Anchor: TopCenter, Scale: 2, Color: white},
		{Text: fmt.Sprintf("Passed: %d", h.Stats.Passed), Anchor: TopRight, Scale: 2, Color: white},
	}
	if h.HasBest {
		lines = append(lines, TextLine{
			Text: fmt.Sprintf("Best: %.0f", h.Best), Anchor: TopLeft, Scale: 1.5, Color: yellow,
		})
	}
	switch {
	case h.Loading:
		lines = append(lines, TextLine{Text: "Loading...", Anchor: Center, Scale: 2, Color: white})
	case h.Counting:
		lines = append(lines, TextLine{Text: strconv.Itoa(h.Countdown), Anchor: Center, Scale: 8, Color: yellow})
	}
	if h.State == game.StateGameOver && h.Notified {
		key := h.RestartKey
		if key == "" {
			key = "space"
		}
		lines = append(lines,
			TextLine{Text: NoticeText, Anchor: Center, Scale: 4, Color: red},
			TextLine{Text: fmt.Sprintf("Press %s to restart.", strings.ToUpper(key)), Anchor: BelowCenter, Scale: 2, Color: white},
		)
	}
	return lines
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%.1fs", d.Seconds())
}
