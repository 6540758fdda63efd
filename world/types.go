package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NoAttractor marks a point that is not attracted by any other point
const NoAttractor = -1

// Variant selects which family of records a world file holds
type Variant int

const (
	VariantAuto Variant = iota
	VariantPoints
	VariantCircles
)

func (v Variant) String() string {
	switch v {
	case VariantPoints:
		return "points"
	case VariantCircles:
		return "circles"
	default:
		return "auto"
	}
}

// ParseVariant maps a configuration string to a Variant
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "", "auto":
		return VariantAuto, true
	case "points", "dots":
		return VariantPoints, true
	case "circles":
		return VariantCircles, true
	}
	return VariantAuto, false
}

// Point is a simulated dot in normalized device coordinates
type Point struct {
	Position    mgl32.Vec2
	OldPosition mgl32.Vec2 // previous Verlet position, equals Position when not given
	Target      mgl32.Vec2 // equals Position when not given
	HasTarget   bool
	Color       mgl32.Vec4
	// PathFaithful points follow their target path instead of free Verlet motion
	PathFaithful bool
	Gravitation  float32
	AttractedBy  int // index of the attracting point, NoAttractor if none
}

// Obstacle is a line segment
type Obstacle struct {
	Start, End mgl32.Vec2
	Color      mgl32.Vec4
}

// Circle is an entity of the circle-algorithm variant
type Circle struct {
	Center mgl32.Vec2
	Radius mgl32.Vec2 // two radii allow masked directional growth
	Color  mgl32.Vec4
	Speed  mgl32.Vec2 // pulse speed mask
	Draw   bool
	Pulse  bool
}

// AttractionPair links a point to the point attracting it
type AttractionPair struct {
	Point     int
	Attractor int
}

// InfluencePair propagates state from Master to Influenced circle (0-based ids)
type InfluencePair struct {
	Master     int
	Influenced int
}

// Header holds the declared entity counts. A header missing from the file
// leaves its count at zero.
type Header struct {
	Dots        int
	Attractions int
	Obstacles   int // obstacle records, not segments, for the legacy endpoint layout
	Circles     int
	Influences  int
}

// World is the typed result of parsing a world file
type World struct {
	Variant     Variant
	Header      Header
	Points      []Point
	Obstacles   []Obstacle
	Attractions []AttractionPair
	Circles     []Circle
	Influences  []InfluencePair

	// Warnings collects recovered problems (malformed headers, skipped lines)
	Warnings []string
}
