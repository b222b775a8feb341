// Package game wires the demo leaderboard together: the board, the
// celebration subsystem, the UI and telemetry output.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/podium/celebration"
	"github.com/pthm-cable/podium/components"
	"github.com/pthm-cable/podium/config"
	"github.com/pthm-cable/podium/ranking"
	"github.com/pthm-cable/podium/renderer"
	"github.com/pthm-cable/podium/scheduler"
	"github.com/pthm-cable/podium/telemetry"
	"github.com/pthm-cable/podium/ui"
)

// Layout constants
const (
	margin       = 20
	controlsW    = 320
	historyRows  = 8
	podiumHeight = 0.55 // fraction of screen height
)

// Options configures a Game.
type Options struct {
	Seed       int64
	RosterPath string // CSV roster to load; empty uses the configured players
	OutputDir  string // Overrides telemetry.output_dir when set
	Headless   bool
	Logger     *slog.Logger
}

// Game is the demo leaderboard host.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger *slog.Logger

	board      *ranking.Board
	queue      *scheduler.Queue
	manager    *celebration.Manager
	celebrator *celebration.Celebrator
	overlay    *renderer.Overlay

	sessions *telemetry.SessionLog
	output   *telemetry.OutputManager

	// Graphics only
	podium   *ui.Podium
	controls *ui.ControlsPanel
	history  *ui.HistoryPanel
	pending  ui.Action

	headless  bool
	tick      int32
	clock     time.Duration // synthetic clock in headless mode
	nextClaim time.Duration
}

// NewGameWithOptions creates a game. Graphical mode requires an open window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	outputDir := cfg.Telemetry.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	board := ranking.NewBoard(rng, cfg.Demo.ClaimMin, cfg.Demo.ClaimMax)
	if err := loadPlayers(board, opts.RosterPath, cfg.Demo.Players); err != nil {
		output.Close()
		return nil, err
	}

	var backend components.Backend
	if opts.Headless {
		backend = renderer.NewHeadlessBackend(rng, 0)
	} else {
		backend = renderer.NewConfettiBackend(cfg.Celebration, rng)
	}

	g := &Game{
		cfg:      cfg,
		rng:      rng,
		logger:   logger,
		board:    board,
		queue:    scheduler.NewQueue(),
		sessions: telemetry.NewSessionLog(output, logger),
		output:   output,
		headless: opts.Headless,
	}

	g.manager = celebration.NewManager(g.queue, backend, celebration.ManagerOptions{
		Config:   cfg.Celebration,
		Rand:     rng,
		Logger:   logger,
		Recorder: g.sessions,
	})

	podiumBounds := g.podiumBounds(cfg.Screen.Width, cfg.Screen.Height)
	g.overlay = renderer.NewOverlay(podiumBounds)
	g.celebrator = celebration.NewCelebrator(g.manager, g.overlay, cfg.Ranking.TopN, logger)

	if !opts.Headless {
		g.podium = ui.NewPodium(podiumBounds)
		g.layoutPanels(cfg.Screen.Width, cfg.Screen.Height)
	}

	// The first list sets the baseline without celebrating
	g.celebrator.NotifyRanking(board.Ranked())
	g.nextClaim = secondsToDuration(cfg.Demo.ClaimInterval)

	logger.Info("leaderboard ready",
		"players", board.Len(),
		"headless", opts.Headless,
		"output_dir", output.Dir(),
	)
	return g, nil
}

func loadPlayers(board *ranking.Board, rosterPath string, names []string) error {
	if rosterPath == "" {
		for _, name := range names {
			board.Add(name)
		}
		return nil
	}

	f, err := os.Open(rosterPath)
	if err != nil {
		return fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	entries, err := ranking.LoadRoster(f)
	if err != nil {
		return err
	}
	board.Load(entries)
	return nil
}

func (g *Game) podiumBounds(width, height int) rl.Rectangle {
	return rl.Rectangle{
		X:      margin,
		Y:      margin,
		Width:  float32(width - controlsW - margin*3),
		Height: float32(height) * podiumHeight,
	}
}

func (g *Game) layoutPanels(width, height int) {
	x := int32(width - controlsW - margin)
	g.controls = ui.NewControlsPanel(x, margin, controlsW)

	historyY := int32(float32(height)*podiumHeight) + margin*2
	g.history = ui.NewHistoryPanel(margin, historyY, int32(width-controlsW-margin*3), historyRows)
}

// Claim awards points to a player, logs the claim and notifies the celebration trigger.
func (g *Game) Claim(id string) {
	c, err := g.board.Claim(id)
	if err != nil {
		g.logger.Warn("claim rejected", "error", err)
		return
	}
	if err := g.output.WriteClaim(c); err != nil {
		g.logger.Warn("failed to write claim", "error", err)
	}
	g.logger.Info("points claimed", "player", c.Name, "points", c.Points)

	g.celebrator.NotifyRanking(g.board.Ranked())
}

// AddPlayer registers a new player with zero points.
func (g *Game) AddPlayer(name string) {
	e := g.board.Add(name)
	g.logger.Info("player added", "player", e.Name, "id", e.ID)
	g.celebrator.NotifyRanking(g.board.Ranked())
}

// claimRandom awards points to a random player.
func (g *Game) claimRandom() {
	entries := g.board.Entries()
	if len(entries) == 0 {
		return
	}
	g.Claim(entries[g.rng.Intn(len(entries))].ID)
}

// Tick returns the number of updates run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Board returns the leaderboard.
func (g *Game) Board() *ranking.Board {
	return g.board
}

// Sessions returns the celebration session log.
func (g *Game) Sessions() *telemetry.SessionLog {
	return g.sessions
}

// Manager returns the celebration lifecycle manager.
func (g *Game) Manager() *celebration.Manager {
	return g.manager
}

// Unload ends any celebration, writes the final standings and closes output files.
func (g *Game) Unload() {
	g.celebrator.Teardown()
	g.logStandings()

	if err := g.output.WriteRoster(g.board.Ranked()); err != nil {
		g.logger.Warn("failed to write roster", "error", err)
	}
	if err := g.output.WriteHistory(g.board.History()); err != nil {
		g.logger.Warn("failed to write claim history", "error", err)
	}
	if err := g.output.Close(); err != nil {
		g.logger.Warn("failed to close output", "error", err)
	}

	g.logger.Info("leaderboard closed",
		"ticks", g.tick,
		"claims", len(g.board.History()),
		"sessions", g.sessions.Totals(),
	)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
