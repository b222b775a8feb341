package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/ui"
)

// Draw renders the leaderboard with any running celebration on top of the podium.
func (g *Game) Draw() {
	if g.headless {
		return
	}

	rl.BeginDrawing()
	rl.ClearBackground(ui.DefaultTheme().Background)

	ranked := g.board.Ranked()

	g.podium.Draw(ranked)
	g.overlay.Draw()
	g.history.Draw(g.board.History())

	if action := g.controls.Draw(ranked); action.Kind != ui.ActionNone {
		g.pending = action
	}

	g.drawStatus()

	rl.EndDrawing()
}

// drawStatus draws the key hints and celebration state along the bottom edge.
func (g *Game) drawStatus() {
	y := int32(rl.GetScreenHeight()) - 24
	state := g.manager.Loop().State().String()
	if h, ok := g.manager.Active(); ok {
		state = fmt.Sprintf("%s #%d (%d frames)", state, h.Generation(), g.manager.Loop().Frames())
	}

	rl.DrawText(
		fmt.Sprintf("FPS %d | celebration: %s | [C] claim  [N] add player  [X] dismiss  [F11] fullscreen", rl.GetFPS(), state),
		margin, y, 14, rl.Gray,
	)
}
