package game

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Params holds every tunable of the lane simulation. Distances are world
// units, speeds are world units per tick.
type Params struct {
	// Lane bounds shared by the user car and traffic.
	LateralMin float64
	LateralMax float64

	// Longitudinal travel bounds for the user car.
	ForwardBound  float64
	BackwardBound float64
	UserStart     Vec3

	MoveSpeed  float64
	StrafeStep float64
	TurnRate   float64 // radians per turn unit
	TurnFactor float64 // turn units applied while strafing

	// Camera placement relative to the user car, and before it exists.
	CameraOffset  Vec3
	CameraInitial Vec3

	SpawnDistance float64 // ahead of the camera
	InitialBurst  int
	SpawnInterval time.Duration

	DriftProbability float64
	DriftStep        float64

	CollisionLateral      float64
	CollisionLongitudinal float64

	// Obstacles are culled once they are this far behind the camera.
	CullMargin float64

	// Countdown is the first digit shown before driving starts; it then
	// counts down to 0, one CountdownStep per digit. 0 starts at once.
	Countdown     int
	CountdownStep time.Duration

	GameOverDelay time.Duration
}

// DefaultParams returns the stock tuning: a 5000 unit road, traffic every
// three seconds, a 3-2-1-0 countdown.
func DefaultParams() Params {
	return Params{
		LateralMin:            -4,
		LateralMax:            4,
		ForwardBound:          2450,
		BackwardBound:         -2450,
		UserStart:             Vec3{X: 0, Y: 0, Z: -2450},
		MoveSpeed:             0.5,
		StrafeStep:            0.1,
		TurnRate:              math.Pi / 60,
		TurnFactor:            10,
		CameraOffset:          Vec3{X: 0, Y: 2, Z: -5},
		CameraInitial:         Vec3{X: 0, Y: 2, Z: 5},
		SpawnDistance:         1000,
		InitialBurst:          5,
		SpawnInterval:         3 * time.Second,
		DriftProbability:      0.05,
		DriftStep:             0.1,
		CollisionLateral:      0.5,
		CollisionLongitudinal: 3,
		CullMargin:            0,
		Countdown:             3,
		CountdownStep:         time.Second,
		GameOverDelay:         1500 * time.Millisecond,
	}
}

// Validate rejects parameter sets the simulation cannot honour.
func (p Params) Validate() error {
	var errs []error
	if p.LateralMin > p.LateralMax {
		errs = append(errs, fmt.Errorf("lateral bounds inverted: %v > %v", p.LateralMin, p.LateralMax))
	}
	if p.BackwardBound > p.ForwardBound {
		errs = append(errs, fmt.Errorf("longitudinal bounds inverted: %v > %v", p.BackwardBound, p.ForwardBound))
	}
	if p.MoveSpeed < 0 || p.StrafeStep < 0 || p.DriftStep < 0 {
		errs = append(errs, errors.New("speeds and steps must be non-negative"))
	}
	if p.DriftProbability < 0 || p.DriftProbability > 1 {
		errs = append(errs, fmt.Errorf("drift probability %v outside [0,1]", p.DriftProbability))
	}
	if p.InitialBurst < 0 {
		errs = append(errs, fmt.Errorf("initial burst %d is negative", p.InitialBurst))
	}
	if p.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("spawn interval %v must be positive", p.SpawnInterval))
	}
	if p.CollisionLateral < 0 || p.CollisionLongitudinal < 0 {
		errs = append(errs, errors.New("collision thresholds must be non-negative"))
	}
	// Cars still within collision range of the user must survive the cull.
	if minMargin := p.CameraOffset.Z + p.CollisionLongitudinal; p.CullMargin < minMargin {
		errs = append(errs, fmt.Errorf("cull margin %v culls cars the user can still hit, need >= %v", p.CullMargin, minMargin))
	}
	if p.Countdown < 0 {
		errs = append(errs, fmt.Errorf("countdown %d is negative", p.Countdown))
	}
	if p.Countdown > 0 && p.CountdownStep <= 0 {
		errs = append(errs, fmt.Errorf("countdown step %v must be positive", p.CountdownStep))
	}
	if p.GameOverDelay < 0 {
		errs = append(errs, fmt.Errorf("game over delay %v is negative", p.GameOverDelay))
	}
	return errors.Join(errs...)
}
