package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// C: claim for a random player
	if rl.IsKeyPressed(rl.KeyC) {
		g.claimRandom()
	}

	// N: add a player
	if rl.IsKeyPressed(rl.KeyN) {
		g.AddPlayer(fmt.Sprintf("Player %d", g.board.Len()+1))
	}

	// X: dismiss the running celebration
	if rl.IsKeyPressed(rl.KeyX) {
		if h, ok := g.manager.Active(); ok {
			g.manager.End(h)
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
// A running celebration keeps its surface; the next one uses the new size.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}

	w := int(rl.GetScreenWidth())
	h := int(rl.GetScreenHeight())

	bounds := g.podiumBounds(w, h)
	g.overlay.Bounds = bounds
	g.podium.Bounds = bounds
	g.layoutPanels(w, h)
}
