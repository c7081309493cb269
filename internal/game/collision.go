package game

// ObstacleSource is anything that can enumerate live obstacles.
type ObstacleSource interface {
	Each(fn func(Obstacle) bool)
}

// Collides reports the first obstacle that is closer than thresholdLateral
// on X and closer than thresholdLongitudinal on Z. The two axes are tested
// independently; this is not a radius or box-overlap test.
func Collides(user Vec3, obstacles ObstacleSource, thresholdLateral, thresholdLongitudinal float64) (ObstacleID, bool) {
	var hit ObstacleID
	found := false
	obstacles.Each(func(o Obstacle) bool {
		if absF(user.X-o.Pos.X) < thresholdLateral && absF(user.Z-o.Pos.Z) < thresholdLongitudinal {
			hit = o.ID
			found = true
			return false
		}
		return true
	})
	return hit, found
}
