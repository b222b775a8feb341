package game

import "log/slog"

// logStandings logs the leading entries of the board.
func (g *Game) logStandings() {
	ranked := g.board.Ranked()
	n := min(len(ranked), g.cfg.Ranking.TopN)

	attrs := make([]any, 0, n)
	for i, e := range ranked[:n] {
		attrs = append(attrs, slog.Group(
			placeKey(i+1),
			slog.String("name", e.Name),
			slog.Float64("score", e.Score),
		))
	}
	g.logger.Info("standings", attrs...)
}

func placeKey(place int) string {
	switch place {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	default:
		return "place"
	}
}
