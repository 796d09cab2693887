// Package game holds the rules of the gesture chase: a player moved by
// gesture labels, a target placed at random, and a score with a persisted
// high score.
package game

import (
	"context"

	"go.uber.org/zap"

	"gesturegame/shared"
)

const (
	// Step is how far one gesture moves the player.
	Step = 20
	// TargetSpan bounds target placement away from the far edges.
	TargetSpan = 20
)

// StartPosition is where the player appears on Initialize.
var StartPosition = Point{X: 50, Y: 50}

// View receives every visible change.
type View interface {
	ShowPlayer(Point)
	ShowTarget(Point)
	ShowScore(int)
	ShowHighScore(int)
	ShowGesture(string)
}

// NopView discards all updates.
type NopView struct{}

func (NopView) ShowPlayer(Point)   {}
func (NopView) ShowTarget(Point)   {}
func (NopView) ShowScore(int)      {}
func (NopView) ShowHighScore(int)  {}
func (NopView) ShowGesture(string) {}

// HighScoreStore persists the single highScore value.
type HighScoreStore interface {
	Load(ctx context.Context) (score int, found bool, err error)
	Save(ctx context.Context, score int) error
}

// Session is the mutable state of one game. A Game owns exactly one.
type Session struct {
	Player      Point
	Target      Point
	Score       int
	HighScore   int
	LastGesture shared.Gesture
}

// Options configures a Game. Geometry, Sampler and Store are required.
type Options struct {
	Geometry Geometry
	Sampler  Sampler
	Store    HighScoreStore
	View     View
	Logger   *zap.Logger
	// OnCollision runs after a collision has been scored.
	OnCollision func(score int)
}

// Game applies gestures to a Session. It is not safe for concurrent use;
// Runner gives it a single owner goroutine.
type Game struct {
	s     Session
	geom  Geometry
	rand  Sampler
	store HighScoreStore
	view  View
	log   *zap.Logger
	onHit func(int)
}

func New(opts Options) *Game {
	g := &Game{
		geom:  opts.Geometry,
		rand:  opts.Sampler,
		store: opts.Store,
		view:  opts.View,
		log:   opts.Logger,
		onHit: opts.OnCollision,
	}
	if g.view == nil {
		g.view = NopView{}
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// Initialize loads the high score, places the player and the first target
// and renders everything once.
func (g *Game) Initialize(ctx context.Context) {
	high, found, err := g.store.Load(ctx)
	switch {
	case err != nil:
		g.log.Warn("load high score", zap.Error(err))
		high = 0
	case !found:
		high = 0
	}
	g.s = Session{
		Player:      StartPosition,
		HighScore:   high,
		LastGesture: shared.GestureNone,
	}
	g.view.ShowHighScore(g.s.HighScore)
	g.view.ShowScore(g.s.Score)
	g.view.ShowPlayer(g.s.Player)
	g.PlaceTarget()
	g.log.Info("game initialized",
		zap.Int("high_score", g.s.HighScore),
		zap.Int("target_x", g.s.Target.X),
		zap.Int("target_y", g.s.Target.Y))
}

// PlaceTarget moves the target to a random spot. It may land on the player.
func (g *Game) PlaceTarget() {
	board := g.geom.Board()
	g.s.Target = Point{
		X: g.rand(board.W - TargetSpan),
		Y: g.rand(board.H - TargetSpan),
	}
	g.view.ShowTarget(g.s.Target)
}

// MovePlayer steps the player one unit in the direction of gesture, clamped
// to the board, then checks for a collision. Unknown gestures do not move
// the player but the collision check still runs.
func (g *Game) MovePlayer(ctx context.Context, gesture shared.Gesture) {
	board, player := g.geom.Board(), g.geom.Player()
	maxX := board.W - player.W
	maxY := board.H - player.H

	p := &g.s.Player
	switch gesture {
	case shared.GestureLeft:
		p.X = max(0, p.X-Step)
	case shared.GestureRight:
		p.X = min(maxX, p.X+Step)
	case shared.GestureUp:
		p.Y = max(0, p.Y-Step)
	case shared.GestureDown:
		p.Y = min(maxY, p.Y+Step)
	}
	g.view.ShowPlayer(*p)

	if g.collides() {
		g.updateScore(ctx)
		g.PlaceTarget()
	}
}

// HandleGesture is what one poll result does to the game.
func (g *Game) HandleGesture(ctx context.Context, gesture shared.Gesture) {
	if gesture == shared.GestureNone {
		return
	}
	g.s.LastGesture = gesture
	g.view.ShowGesture(gesture.Label())
	g.MovePlayer(ctx, gesture)
}

// Snapshot returns a copy of the current session.
func (g *Game) Snapshot() Session { return g.s }

func (g *Game) collides() bool {
	pr := rectAt(g.s.Player, g.geom.Player())
	tr := rectAt(g.s.Target, g.geom.Target())
	return pr.Overlaps(tr)
}

func (g *Game) updateScore(ctx context.Context) {
	g.s.Score++
	g.view.ShowScore(g.s.Score)

	if g.s.Score > g.s.HighScore {
		g.s.HighScore = g.s.Score
		g.view.ShowHighScore(g.s.HighScore)
		if err := g.store.Save(ctx, g.s.HighScore); err != nil {
			g.log.Error("save high score", zap.Int("high_score", g.s.HighScore), zap.Error(err))
		}
	}
	g.log.Debug("target hit", zap.Int("score", g.s.Score), zap.Int("high_score", g.s.HighScore))

	if g.onHit != nil {
		g.onHit(g.s.Score)
	}
}
