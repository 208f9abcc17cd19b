package telemetry

import "github.com/pthm-cable/predprey/components"

// LifetimeStats tracks per-creature statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int32
	Kind      components.Kind

	// Predators: prey captured
	Captures int

	// Prey: ticks spent as some predator's target
	TicksTargeted int32
}

// LifetimeTracker manages per-creature lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new creature.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, kind components.Kind) {
	lt.stats[id] = &LifetimeStats{
		BirthTick: birthTick,
		Kind:      kind,
	}
}

// Get returns the lifetime stats for a creature, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes a creature's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordTargets increments the targeted counter of every pursued prey.
// A prey chased by several predators counts once per tick.
func (lt *LifetimeTracker) RecordTargets(targets map[uint32]uint32) {
	seen := make(map[uint32]struct{}, len(targets))
	for _, preyID := range targets {
		if _, ok := seen[preyID]; ok {
			continue
		}
		seen[preyID] = struct{}{}
		if s := lt.stats[preyID]; s != nil {
			s.TicksTargeted++
		}
	}
}

// RecordCapture credits the predator and retires the prey. It fills in the
// event's SurvivalTicks when the prey is known.
func (lt *LifetimeTracker) RecordCapture(ev *CaptureEvent) {
	if s := lt.stats[ev.PredatorID]; s != nil {
		s.Captures++
	}
	if s := lt.Remove(ev.PreyID); s != nil {
		ev.SurvivalTicks = ev.Tick - s.BirthTick
	}
}

// TopHunter returns the predator with the most captures. Ties go to the
// lower ID. ok is false when no predator has captured anything.
func (lt *LifetimeTracker) TopHunter() (id uint32, captures int, ok bool) {
	for cid, s := range lt.stats {
		if s.Kind != components.KindPredator || s.Captures == 0 {
			continue
		}
		if s.Captures > captures || (s.Captures == captures && cid < id) {
			id, captures, ok = cid, s.Captures, true
		}
	}
	return id, captures, ok
}
