package slingshot

// Snapshot is a flat summary of the game for status lines, logs and tests.
type Snapshot struct {
	Tick      uint64
	Level     int
	Levels    int
	Score     int
	Remaining int
	Targets   int
	Boxes     int
	Phase     string
	Complete  bool
	Paused    bool

	CompletePending bool
	DefeatPending   bool

	ProjectileX float64
	ProjectileY float64
	IdleTime    float64
	FlightTime  float64

	Notice string
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tick,
		Level:     g.state.Level,
		Levels:    len(g.levels),
		Score:     g.state.Score,
		Remaining: g.state.Remaining,
		Targets:   len(g.state.Targets),
		Boxes:     len(g.state.Boxes),
		Phase:     g.state.Phase.String(),
		Complete:  g.state.Complete,
		Paused:    g.paused,
		Notice:    g.Notice(),
	}
	if g.session != nil {
		snap.CompletePending = g.session.CompletePending()
		snap.DefeatPending = g.session.DefeatPending()
		snap.IdleTime = g.session.IdleTime
		snap.FlightTime = g.session.FlightTime
	}
	if g.world != nil {
		if p, ok := g.world.Body(g.state.Projectile); ok {
			snap.ProjectileX = p.Position.X
			snap.ProjectileY = p.Position.Y
		}
	}
	return snap
}
