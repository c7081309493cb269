package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Lighting is one ambient term plus one directional sun.
type Lighting struct {
	Ambient   mgl32.Vec3 // color already scaled by intensity
	SunColor  mgl32.Vec3 // color already scaled by intensity
	SunDir    mgl32.Vec3 // normalized, pointing from the surface toward the sun
	SkyColor  mgl32.Vec3
	WallColor mgl32.Vec3
}

// Hex converts 0xRRGGBB to linear-ish [0,1] components.
func Hex(c uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// DefaultLighting is a white ambient at 1.5 and a moccasin sun at 5 from
// (10, 100, -50). Intensities are divided by π, the Lambert normalization.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:   Hex(0xffffff).Mul(1.5 / math32.Pi),
		SunColor:  Hex(0xffe4b5).Mul(5 / math32.Pi),
		SunDir:    mgl32.Vec3{10, 100, -50}.Normalize(),
		SkyColor:  Hex(0x87ceeb),
		WallColor: Hex(0x0d0d0d),
	}
}

// TrafficColor gives each traffic car a stable body color from its ID.
func TrafficColor(id uint64) mgl32.Vec3 {
	// Golden-ratio hue walk keeps neighbours apart.
	h := math32.Mod(float32(id)*0.61803398875, 1)
	return hsv(h, 0.55, 0.85)
}

// UserColor is the player's body color.
func UserColor() mgl32.Vec3 { return Hex(0xd62828) }

func hsv(h, s, v float32) mgl32.Vec3 {
	k := func(n float32) float32 {
		x := math32.Mod(n+h*6, 6)
		return v - v*s*math32.Max(0, math32.Min(math32.Min(x, 4-x), 1))
	}
	return mgl32.Vec3{k(5), k(3), k(1)}
}
