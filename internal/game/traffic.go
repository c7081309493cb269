package game

import "github.com/elliotchance/orderedmap/v2"

// ObstacleID identifies a spawned traffic car for its whole life.
type ObstacleID uint64

// Obstacle is one traffic car. Its drift direction is rolled per drift and
// not stored.
type Obstacle struct {
	ID    ObstacleID
	Pos   Vec3
	Model ModelHandle
}

// Registry is the ordered set of live traffic cars, kept in spawn order.
type Registry struct {
	cars   *orderedmap.OrderedMap[ObstacleID, *Obstacle]
	nextID ObstacleID
	model  ModelHandle

	spawnRand *Rand
	driftRand *Rand
}

func NewRegistry(seed uint64) *Registry {
	return &Registry{
		cars:      orderedmap.NewOrderedMap[ObstacleID, *Obstacle](),
		spawnRand: NewRand(DeriveSeed(seed, 1)),
		driftRand: NewRand(DeriveSeed(seed, 2)),
	}
}

// SetModel sets the visual handle given to cars spawned from now on.
func (r *Registry) SetModel(m ModelHandle) { r.model = m }

// Spawn places a car at a uniformly random lateral position in
// [lateralMin, lateralMax] and the given longitudinal position.
func (r *Registry) Spawn(lateralMin, lateralMax, longitudinal float64) ObstacleID {
	x := r.spawnRand.RangeF(lateralMin, lateralMax)
	return r.Insert(Vec3{X: x, Z: longitudinal})
}

// Insert places a car at an exact position.
func (r *Registry) Insert(pos Vec3) ObstacleID {
	r.nextID++
	id := r.nextID
	r.cars.Set(id, &Obstacle{ID: id, Pos: pos, Model: r.model})
	return id
}

// AdvanceAll moves every car delta units toward the viewer (negative Z).
func (r *Registry) AdvanceAll(delta float64) {
	for el := r.cars.Front(); el != nil; el = el.Next() {
		el.Value.Pos.Z -= delta
	}
}

// DriftRandom nudges each car sideways by ±step with the given
// probability, then clamps it back into the lane bounds.
func (r *Registry) DriftRandom(probability, step, lateralMin, lateralMax float64) {
	for el := r.cars.Front(); el != nil; el = el.Next() {
		if !r.driftRand.Chance(probability) {
			continue
		}
		side := step
		if r.driftRand.Float64() < 0.5 {
			side = -step
		}
		o := el.Value
		o.Pos.X = clampF(o.Pos.X+side, lateralMin, lateralMax)
	}
}

// CullWhere removes every car matching pred and returns their IDs in
// spawn order.
func (r *Registry) CullWhere(pred func(*Obstacle) bool) []ObstacleID {
	var removed []ObstacleID
	for el := r.cars.Front(); el != nil; {
		next := el.Next()
		if pred(el.Value) {
			removed = append(removed, el.Key)
			r.cars.Delete(el.Key)
		}
		el = next
	}
	return removed
}

// CullPast removes every car whose longitudinal position is greater than
// boundary.
func (r *Registry) CullPast(boundary float64) []ObstacleID {
	return r.CullWhere(func(o *Obstacle) bool { return o.Pos.Z > boundary })
}

// CullBehind removes every car whose longitudinal position is less than
// boundary, i.e. cars that already went past a viewer at boundary.
func (r *Registry) CullBehind(boundary float64) []ObstacleID {
	return r.CullWhere(func(o *Obstacle) bool { return o.Pos.Z < boundary })
}

func (r *Registry) Len() int { return r.cars.Len() }

func (r *Registry) Get(id ObstacleID) (Obstacle, bool) {
	o, ok := r.cars.Get(id)
	if !ok {
		return Obstacle{}, false
	}
	return *o, true
}

// Each calls fn for every live car in spawn order until fn returns false.
func (r *Registry) Each(fn func(Obstacle) bool) {
	for el := r.cars.Front(); el != nil; el = el.Next() {
		if !fn(*el.Value) {
			return
		}
	}
}

// Snapshot copies the live cars in spawn order.
func (r *Registry) Snapshot() []Obstacle {
	out := make([]Obstacle, 0, r.cars.Len())
	r.Each(func(o Obstacle) bool {
		out = append(out, o)
		return true
	})
	return out
}
