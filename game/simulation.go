package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/ui"
)

// Update runs one graphical frame: input, pending UI actions and the
// celebration scheduler pump.
func (g *Game) Update() {
	if g.headless {
		g.UpdateHeadless()
		return
	}

	g.handleInput()
	g.applyAction()

	g.queue.Advance(secondsToDuration(rl.GetTime()))
	g.tick++
}

// UpdateHeadless advances a synthetic display clock by one frame, issuing an
// automatic claim every claim interval.
func (g *Game) UpdateHeadless() {
	g.clock += secondsToDuration(g.cfg.Derived.FrameSec)

	interval := secondsToDuration(g.cfg.Demo.ClaimInterval)
	if interval > 0 {
		for g.clock >= g.nextClaim {
			g.claimRandom()
			g.nextClaim += interval
		}
	}

	g.queue.Advance(g.clock)
	g.tick++
}

// Clock returns the headless synthetic clock.
func (g *Game) Clock() time.Duration {
	return g.clock
}

func (g *Game) applyAction() {
	action := g.pending
	g.pending = ui.Action{}

	switch action.Kind {
	case ui.ActionClaim:
		g.Claim(action.PlayerID)
	case ui.ActionAddPlayer:
		g.AddPlayer(fmt.Sprintf("Player %d", g.board.Len()+1))
	}
}
