package klv

import "math"

func float32FromBits(u uint32) float32 { return math.Float32frombits(u) }

func float32Bits(f float32) uint32 { return math.Float32bits(f) }

func float64FromBits(u uint64) float64 { return math.Float64frombits(u) }

func float64Bits(f float64) uint64 { return math.Float64bits(f) }
