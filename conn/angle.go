package conn

import "math"

// angleToByte quantizes a degree angle into the single-byte wire form
//: 256 steps per full turn, negative values wrapping into
// [128, 256).
func angleToByte(degrees float32) byte {
	steps := int32(math.Floor(float64(degrees) * 256 / 360))
	return byte(steps)
}

// normalizeYaw folds yaw into [0, 360).
func normalizeYaw(yaw float32) float32 {
	y := math.Mod(float64(yaw), 360)
	if y < 0 {
		y += 360
	}
	return float32(y)
}

// clampPitch restricts pitch to [-90, 90].
func clampPitch(pitch float32) float32 {
	if pitch > 90 {
		return 90
	}
	if pitch < -90 {
		return -90
	}
	return pitch
}
