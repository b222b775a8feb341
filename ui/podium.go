package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/ranking"
)

// avatarColors are picked by the first character of a player's name.
var avatarColors = [8]rl.Color{
	{R: 0xFF, G: 0x6B, B: 0x6B, A: 255},
	{R: 0x4E, G: 0xCD, B: 0xC4, A: 255},
	{R: 0x45, G: 0xB7, B: 0xD1, A: 255},
	{R: 0x96, G: 0xCE, B: 0xB4, A: 255},
	{R: 0xFF, G: 0xEA, B: 0xA7, A: 255},
	{R: 0xDD, G: 0xA0, B: 0xDD, A: 255},
	{R: 0x98, G: 0xD8, B: 0xC8, A: 255},
	{R: 0xF7, G: 0xDC, B: 0x6F, A: 255},
}

// AvatarColor returns the avatar background for a player name.
func AvatarColor(name string) rl.Color {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return avatarColors[0]
	}
	return avatarColors[int(r)%len(avatarColors)]
}

// Initial returns the upper-cased first letter of name, or "?" when empty.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// PodiumSlot is one card on the podium.
type PodiumSlot struct {
	Place int
	Entry ranking.Entry
}

// PodiumSlots arranges the leading three entries of a ranked list left to
// right as second, first, third. Missing places are omitted.
func PodiumSlots(ranked []ranking.Entry) []PodiumSlot {
	order := [3]int{2, 1, 3}
	slots := make([]PodiumSlot, 0, 3)
	for _, place := range order {
		if place <= len(ranked) {
			slots = append(slots, PodiumSlot{Place: place, Entry: ranked[place-1]})
		}
	}
	return slots
}

// podiumHeight returns the card height for a place as a fraction of the podium area.
func podiumHeight(place int) float32 {
	switch place {
	case 1:
		return 0.9
	case 2:
		return 0.75
	default:
		return 0.65
	}
}

// Podium draws the leading players as three cards, tallest in the middle.
type Podium struct {
	renderer *Renderer
	Bounds   rl.Rectangle
}

// NewPodium creates a podium occupying bounds.
func NewPodium(bounds rl.Rectangle) *Podium {
	return &Podium{renderer: NewRenderer(), Bounds: bounds}
}

// Draw renders the podium for a ranked list.
func (p *Podium) Draw(ranked []ranking.Entry) {
	r := p.renderer
	t := r.Theme
	b := p.Bounds

	r.DrawTextCentered("Top 3 Champions", int32(b.X+b.Width/2), int32(b.Y), t.TitleFontSize, t.ValueColor)

	top := b.Y + float32(t.TitleFontSize) + float32(t.Padding)
	area := b.Height - (top - b.Y)
	gap := float32(t.Padding) * 2
	cardW := (b.Width - gap*4) / 3

	for i, slot := range PodiumSlots(ranked) {
		h := area * podiumHeight(slot.Place)
		card := rl.Rectangle{
			X:      b.X + gap + float32(i)*(cardW+gap),
			Y:      top + area - h,
			Width:  cardW,
			Height: h,
		}
		p.drawCard(card, slot)
	}
}

func (p *Podium) drawCard(card rl.Rectangle, slot PodiumSlot) {
	r := p.renderer
	t := r.Theme
	medal := t.MedalColor(slot.Place)
	cx := int32(card.X + card.Width/2)

	rl.DrawRectangleRec(card, t.PanelBg)
	rl.DrawRectangleLinesEx(card, 3, medal)

	// Crown
	crownY := int32(card.Y) - 12
	rl.DrawTriangle(
		rl.Vector2{X: float32(cx) - 14, Y: float32(crownY) + 12},
		rl.Vector2{X: float32(cx) + 14, Y: float32(crownY) + 12},
		rl.Vector2{X: float32(cx), Y: float32(crownY) - 8},
		medal,
	)

	radius := float32(30)
	if slot.Place == 1 {
		radius = 36
	}
	avatarY := card.Y + 24 + radius
	rl.DrawCircle(cx, int32(avatarY), radius+3, medal)
	rl.DrawCircle(cx, int32(avatarY), radius, AvatarColor(slot.Entry.Name))
	initialSize := int32(radius)
	r.DrawTextCentered(Initial(slot.Entry.Name), cx, int32(avatarY)-initialSize/2, initialSize, t.Background)

	y := int32(avatarY+radius) + t.Padding*2
	r.DrawTextCentered(slot.Entry.Name, cx, y, t.HeaderFontSize+4, t.ValueColor)
	y += t.LineHeight + 8
	r.DrawTextCentered(fmt.Sprintf("%.0f pts", slot.Entry.Score), cx, y, t.HeaderFontSize, medal)
	y += t.LineHeight + 4
	r.DrawTextCentered(fmt.Sprintf("#%d", slot.Place), cx, y, t.FontSize, t.MutedColor)
}
