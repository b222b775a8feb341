package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/ranking"
)

// ActionKind is a control panel action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionClaim
	ActionAddPlayer
)

// Action is what the user asked for during a frame.
type Action struct {
	Kind     ActionKind
	PlayerID string
}

// ControlsPanel lists players with a claim button each, plus a button to add
// a player. Drawing it returns the action taken this frame, if any.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the ranked list and returns the action triggered this frame.
func (c *ControlsPanel) Draw(ranked []ranking.Entry) Action {
	r := c.renderer
	padding := r.Theme.Padding
	rowHeight := r.Theme.LineHeight + 10

	panelHeight := int32(len(ranked)+2)*rowHeight + padding*3
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Leaderboard")

	action := Action{}
	buttonW := float32(70)
	for i, e := range ranked {
		place := i + 1
		rl.DrawText(fmt.Sprintf("%d.", place), c.x+padding, y+4, r.Theme.FontSize, r.Theme.MedalColor(place))
		rl.DrawText(e.Name, c.x+padding+28, y+4, r.Theme.FontSize, r.Theme.ValueColor)
		score := fmt.Sprintf("%.0f", e.Score)
		rl.DrawText(score, c.x+c.width-padding-int32(buttonW)-10-rl.MeasureText(score, r.Theme.FontSize), y+4, r.Theme.FontSize, r.Theme.LabelColor)

		btn := rl.Rectangle{
			X:      float32(c.x+c.width-padding) - buttonW,
			Y:      float32(y),
			Width:  buttonW,
			Height: float32(rowHeight - 4),
		}
		if gui.Button(btn, "Claim") {
			action = Action{Kind: ActionClaim, PlayerID: e.ID}
		}
		y += rowHeight
	}

	y += padding
	add := rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: float32(c.width - padding*2), Height: float32(rowHeight)}
	if gui.Button(add, "Add player") {
		action = Action{Kind: ActionAddPlayer}
	}

	return action
}

// HistoryPanel shows the most recent claims.
type HistoryPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	rows     int
}

// NewHistoryPanel creates a history panel showing up to rows claims.
func NewHistoryPanel(x, y, width int32, rows int) *HistoryPanel {
	return &HistoryPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		rows:     rows,
	}
}

// Draw renders claims newest first.
func (h *HistoryPanel) Draw(history []ranking.Claim) {
	r := h.renderer
	padding := r.Theme.Padding
	n := min(len(history), h.rows)

	r.DrawPanel(h.x, h.y, h.width, int32(h.rows+1)*r.Theme.LineHeight+padding*3)
	y := r.DrawSectionHeader(h.x+padding, h.y+padding, "Claim History")

	for _, claim := range history[:n] {
		stamp := claim.At.Format("15:04:05")
		y = r.DrawLabelValue(h.x+padding, y, fmt.Sprintf("%s %s", stamp, claim.Name), fmt.Sprintf("+%d", claim.Points))
	}
	if n == 0 {
		rl.DrawText("No claims yet", h.x+padding, y, r.Theme.FontSize, r.Theme.MutedColor)
	}
}
