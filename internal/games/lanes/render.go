package lanes

import (
	"fmt"

	"github.com/vovakirdan/tui-lanes/internal/core"
	"github.com/vovakirdan/tui-lanes/internal/runner"
)

// Visual characters for rendering
const (
	RunnerChar  = '▲'
	AirChar     = '◆'
	ShadowChar  = '·'
	BoxChar     = '█'
	HalfBoxChar = '▄'
	RailChar    = '│'
	MarkChar    = '┆'
	GroundChar  = '═'
)

const (
	maxLaneW = 11
	minLaneW = 3
	maxLift  = 3  // rows the runner rises at the top of a jump
	markLen  = 4  // dashed divider period in rows
	markStep = 30 // track offset per divider row of scroll
)

// layout is the track geometry for one screen size.
type layout struct {
	x0        int // left rail
	laneW     int
	top       int // first track row
	playerRow int
	groundRow int
}

func newLayout(w, h int) layout {
	laneW := core.Clamp((w-4)/runner.LaneCount, minLaneW, maxLaneW)
	trackW := runner.LaneCount*(laneW+1) + 1
	return layout{
		x0:        (w - trackW) / 2,
		laneW:     laneW,
		top:       1,
		playerRow: h - 2,
		groundRow: h - 1,
	}
}

// laneX returns the leftmost column inside lane l.
func (ly layout) laneX(l runner.Lane) int {
	return ly.x0 + 1 + int(l)*(ly.laneW+1)
}

// row maps an obstacle distance to a screen row. Distance 0 is the runner's
// row and the spawn distance is the top of the track.
func (ly layout) row(d, spawn int) int {
	if spawn <= 0 {
		return ly.playerRow
	}
	span := ly.playerRow - ly.top
	return ly.playerRow - d*span/spawn
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	ly := newLayout(dst.Width(), dst.Height())
	snap := g.snap

	g.drawTrack(dst, ly, snap.TrackOffset)
	for _, o := range snap.Obstacles {
		g.drawObstacle(dst, ly, o)
	}
	g.drawRunner(dst, ly, snap.Player)

	// HUD
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", snap.DisplayScore()), core.ColorBrightWhite)
	speedText := fmt.Sprintf(" Spd: %d ", g.tuning.Speed)
	dst.DrawTextColor(dst.Width()-len(speedText)-2, 0, speedText, core.ColorGray)

	switch snap.Phase {
	case runner.NotStarted:
		g.drawCenteredMessage(dst, g.title, "Enter to start  ←/→ lanes  Space jump")
	case runner.GameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press Enter to restart", snap.DisplayScore()))
	}
}

// drawTrack draws the rails, the scrolling lane dividers and the ground.
func (g *Game) drawTrack(dst *core.Screen, ly layout, offset float64) {
	length := ly.groundRow - ly.top
	right := ly.laneX(runner.LaneCount) - 1
	dst.DrawVLine(ly.x0, ly.top, length, RailChar, core.ColorGray)
	dst.DrawVLine(right, ly.top, length, RailChar, core.ColorGray)

	shift := int(offset / markStep)
	for l := runner.LaneCenter; l < runner.LaneCount; l++ {
		x := ly.laneX(l) - 1
		for y := ly.top; y < ly.groundRow; y++ {
			if ((y-shift)%markLen+markLen)%markLen < markLen/2 {
				dst.SetColor(x, y, MarkChar, core.ColorGray)
			}
		}
	}

	for x := ly.x0; x <= right; x++ {
		dst.SetColor(x, ly.groundRow, GroundChar, core.ColorGray)
	}
}

// drawObstacle fills the obstacle's lane at its row. Obstacles past the
// runner are drawn on the runner's row until pruned.
func (g *Game) drawObstacle(dst *core.Screen, ly layout, o runner.Obstacle) {
	y := ly.row(max(o.Distance, 0), g.tuning.SpawnDistance)
	if y < ly.top {
		return
	}

	ch, color := BoxChar, core.ColorRed
	if o.Kind == runner.HalfBox {
		ch, color = HalfBoxChar, core.ColorYellow
	}
	x := ly.laneX(o.Lane)
	for dx := range ly.laneW {
		dst.SetColor(x+dx, y, ch, color)
	}
}

// drawRunner draws the player, lifted while airborne, with a shadow on the
// runner's row.
func (g *Game) drawRunner(dst *core.Screen, ly layout, p runner.PlayerView) {
	cx := ly.laneX(p.Lane) + ly.laneW/2
	if p.JumpHeight == 0 {
		dst.SetColor(cx, ly.playerRow, RunnerChar, core.ColorCyan)
		return
	}

	lift := 1
	if g.peak > 0 {
		lift = core.Clamp(p.JumpHeight*maxLift/g.peak, 1, maxLift)
	}
	dst.SetColor(cx, ly.playerRow, ShadowChar, core.ColorGray)
	color := core.ColorCyan
	if p.JumpHeight > g.tuning.ClearanceHeight {
		color = core.ColorGreen
	}
	dst.SetColor(cx, ly.playerRow-lift, AirChar, color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	// Width in runes, the subtitle may hold arrows.
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, title, core.ColorOrange)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}
