package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParamsValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		errMsg string
	}{
		{name: "inverted lane", mutate: func(p *Params) { p.LateralMin = 5 }, errMsg: "lateral bounds inverted"},
		{name: "inverted travel", mutate: func(p *Params) { p.BackwardBound = 3000 }, errMsg: "longitudinal bounds inverted"},
		{name: "negative speed", mutate: func(p *Params) { p.MoveSpeed = -1 }, errMsg: "non-negative"},
		{name: "drift probability", mutate: func(p *Params) { p.DriftProbability = 1.5 }, errMsg: "drift probability"},
		{name: "burst", mutate: func(p *Params) { p.InitialBurst = -1 }, errMsg: "initial burst"},
		{name: "interval", mutate: func(p *Params) { p.SpawnInterval = 0 }, errMsg: "spawn interval"},
		{name: "thresholds", mutate: func(p *Params) { p.CollisionLateral = -0.5 }, errMsg: "collision thresholds"},
		{name: "delay", mutate: func(p *Params) { p.GameOverDelay = -time.Second }, errMsg: "game over delay"},
		{name: "cull ahead of user", mutate: func(p *Params) { p.CullMargin = -9 }, errMsg: "cull margin"},
		{name: "countdown", mutate: func(p *Params) { p.Countdown = -1 }, errMsg: "countdown -1"},
		{name: "countdown step", mutate: func(p *Params) { p.CountdownStep = 0 }, errMsg: "countdown step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestParamsCullMarginBoundary(t *testing.T) {
	p := DefaultParams()
	p.CullMargin = p.CameraOffset.Z + p.CollisionLongitudinal
	assert.NoError(t, p.Validate())

	p.Countdown = 0
	p.CountdownStep = 0
	assert.NoError(t, p.Validate(), "no step needed without a countdown")
}
