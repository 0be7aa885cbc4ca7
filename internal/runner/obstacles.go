package runner

// ObstacleField owns the live obstacles: it moves them, prunes the ones that
// have passed the player and decides when new ones enter.
type ObstacleField struct {
	obstacles []Obstacle
	rng       Source

	spawnChance   float64
	spawnDistance int
	spawnGuard    int
	pruneBuffer   int
	clearance     int
}

// NewObstacleField creates an empty field drawing randomness from rng.
func NewObstacleField(t Tuning, rng Source) ObstacleField {
	return ObstacleField{
		obstacles:     make([]Obstacle, 0, 8),
		rng:           rng,
		spawnChance:   t.SpawnChance,
		spawnDistance: t.SpawnDistance,
		spawnGuard:    t.SpawnGuard,
		pruneBuffer:   t.PruneBuffer,
		clearance:     t.ClearanceHeight,
	}
}

// Clear removes every obstacle.
func (f *ObstacleField) Clear() {
	f.obstacles = f.obstacles[:0]
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Obstacles returns a copy of the live obstacles.
func (f *ObstacleField) Obstacles() []Obstacle {
	out := make([]Obstacle, len(f.obstacles))
	copy(out, f.obstacles)
	return out
}

// Advance moves every obstacle speed units closer and then drops those at or
// beyond -pruneBuffer-speed. Decrementing first keeps an obstacle around for
// at least one tick at negative distance, which is when it can collide.
func (f *ObstacleField) Advance(speed int) {
	for i := range f.obstacles {
		f.obstacles[i].Distance -= speed
	}

	limit := -f.pruneBuffer - speed
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.Distance > limit {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept
}

// MaybeSpawn rolls the per-tick spawn chance and, on success, places a random
// kind in a random lane at the spawn distance. The spawn is skipped when the
// chosen lane already holds an obstacle beyond the guard distance.
// Returns whether an obstacle was added.
func (f *ObstacleField) MaybeSpawn() bool {
	if f.rng == nil || f.rng.Float64() >= f.spawnChance {
		return false
	}

	lane := Lane(f.rng.Intn(LaneCount))
	kind := ObstacleKind(f.rng.Intn(kindCount))

	for _, o := range f.obstacles {
		if o.Lane == lane && o.Distance > f.spawnGuard {
			return false
		}
	}

	f.insert(Obstacle{Lane: lane, Distance: f.spawnDistance, Kind: kind})
	return true
}

// insert prepends o.
func (f *ObstacleField) insert(o Obstacle) {
	f.obstacles = append(f.obstacles, Obstacle{})
	copy(f.obstacles[1:], f.obstacles)
	f.obstacles[0] = o
}

// CollidesWith reports whether a player in lane at jumpHeight overlaps an
// obstacle. Only obstacles at negative distance can collide, and a HalfBox is
// cleared when jumpHeight exceeds the clearance height.
func (f *ObstacleField) CollidesWith(lane Lane, jumpHeight int) bool {
	for _, o := range f.obstacles {
		if o.Distance >= 0 || o.Lane != lane {
			continue
		}
		if o.Kind == HalfBox && jumpHeight > f.clearance {
			continue
		}
		return true
	}
	return false
}
