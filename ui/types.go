// Package ui draws the leaderboard screen: the podium for the leading
// players, the ranked list and the control panel used to award points.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background     rl.Color
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	MutedColor     rl.Color
	Gold           rl.Color
	Silver         rl.Color
	Bronze         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 18, G: 20, B: 28, A: 255},
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		MutedColor:     rl.Color{R: 150, G: 150, B: 150, A: 255},
		Gold:           rl.Color{R: 0xFF, G: 0xD7, B: 0x00, A: 255},
		Silver:         rl.Color{R: 0xC0, G: 0xC0, B: 0xC0, A: 255},
		Bronze:         rl.Color{R: 0xCD, G: 0x7F, B: 0x32, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     140,
		FontSize:       14,
		HeaderFontSize: 16,
		TitleFontSize:  24,
	}
}

// MedalColor returns the medal color for a 1-based place, or the label color
// for places without a medal.
func (t Theme) MedalColor(place int) rl.Color {
	switch place {
	case 1:
		return t.Gold
	case 2:
		return t.Silver
	case 3:
		return t.Bronze
	default:
		return t.LabelColor
	}
}
