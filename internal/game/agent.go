package game

// UserAgent is the player car.
type UserAgent struct {
	Pos        Vec3
	Rotation   float64
	LateralMin float64
	LateralMax float64
	Model      ModelHandle
}

func newUserAgent(p Params, model ModelHandle) *UserAgent {
	return &UserAgent{
		Pos:        p.UserStart,
		LateralMin: p.LateralMin,
		LateralMax: p.LateralMax,
		Model:      model,
	}
}

// Apply moves the car for one tick of held controls and returns the
// signed longitudinal distance travelled.
func (a *UserAgent) Apply(c Controls, p Params) float64 {
	startZ := a.Pos.Z
	if c.Forward && a.Pos.Z < p.ForwardBound {
		a.Pos.Z += p.MoveSpeed
	}
	if c.Backward && a.Pos.Z > p.BackwardBound {
		a.Pos.Z -= p.MoveSpeed
	}

	// Right wins over left. +X is to the driver's left.
	switch {
	case c.Right:
		a.Rotation = -p.TurnFactor * p.TurnRate
		a.Pos.X -= p.StrafeStep
	case c.Left:
		a.Rotation = p.TurnFactor * p.TurnRate
		a.Pos.X += p.StrafeStep
	default:
		a.Rotation = 0
	}
	a.Pos.X = clampF(a.Pos.X, a.LateralMin, a.LateralMax)
	return a.Pos.Z - startZ
}
