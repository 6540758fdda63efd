package world

import (
	"github.com/lixenwraith/labyrinth/constant"
)

// PointBuffers is the flat GPU layout of the points variant, one entry per
// point in declaration order
type PointBuffers struct {
	Position     []float32 // 2 per point
	OldPosition  []float32 // 2 per point
	Velocity     []float32 // 2 per point, zero
	Target       []float32 // 2 per point
	Color        []float32 // 4 per point
	PathFaithful []int32   // 1 per point
	Gravitation  []float32 // 1 per point
	Attraction   []int32   // 2 per pair: point, attractor
}

// ObstacleBuffers is the vertex layout of obstacle segments: two vertices per
// segment, each carrying the segment color
type ObstacleBuffers struct {
	Position []float32 // 4 per segment
	Color    []float32 // 8 per segment
}

// CircleBuffers is the flat GPU layout of the circle variant
type CircleBuffers struct {
	Center    []float32 // 2 per circle
	Color     []float32 // 4 per circle
	Radius    []float32 // 2 per circle
	Speed     []float32 // 2 per circle
	Draw      []int32   // 1 per circle
	Pulse     []int32   // 1 per circle
	Influence []int32   // 2 per pair: master, influenced
	Outline   []float32 // CircleOutlineSamples * 2 per circle, zero; written by the kernel
}

// PointBuffers flattens points and the attraction map
func (w *World) PointBuffers() PointBuffers {
	n := len(w.Points)
	b := PointBuffers{
		Position:     make([]float32, 0, n*constant.PositionStride),
		OldPosition:  make([]float32, 0, n*constant.PositionStride),
		Velocity:     make([]float32, n*constant.PositionStride),
		Target:       make([]float32, 0, n*constant.PositionStride),
		Color:        make([]float32, 0, n*constant.ColorStride),
		PathFaithful: make([]int32, n),
		Gravitation:  make([]float32, n),
		Attraction:   make([]int32, 0, len(w.Attractions)*constant.PairStride),
	}
	for i, p := range w.Points {
		b.Position = append(b.Position, p.Position[:]...)
		b.OldPosition = append(b.OldPosition, p.OldPosition[:]...)
		b.Target = append(b.Target, p.Target[:]...)
		b.Color = append(b.Color, p.Color[:]...)
		if p.PathFaithful {
			b.PathFaithful[i] = 1
		}
		b.Gravitation[i] = p.Gravitation
	}
	for _, a := range w.Attractions {
		b.Attraction = append(b.Attraction, int32(a.Point), int32(a.Attractor))
	}
	return b
}

// ObstacleBuffers flattens obstacle segments into line vertices
func (w *World) ObstacleBuffers() ObstacleBuffers {
	n := len(w.Obstacles)
	b := ObstacleBuffers{
		Position: make([]float32, 0, n*constant.SegmentStride),
		Color:    make([]float32, 0, 2*n*constant.ColorStride),
	}
	for _, o := range w.Obstacles {
		b.Position = append(b.Position, o.Start[:]...)
		b.Position = append(b.Position, o.End[:]...)
		b.Color = append(b.Color, o.Color[:]...)
		b.Color = append(b.Color, o.Color[:]...)
	}
	return b
}

// CircleBuffers flattens circles, their behavior masks and the influence map
func (w *World) CircleBuffers() CircleBuffers {
	n := len(w.Circles)
	b := CircleBuffers{
		Center:    make([]float32, 0, n*constant.PositionStride),
		Color:     make([]float32, 0, n*constant.ColorStride),
		Radius:    make([]float32, 0, n*constant.PositionStride),
		Speed:     make([]float32, 0, n*constant.PositionStride),
		Draw:      make([]int32, n),
		Pulse:     make([]int32, n),
		Influence: make([]int32, 0, len(w.Influences)*constant.PairStride),
		Outline:   make([]float32, n*constant.CircleOutlineSamples*constant.PositionStride),
	}
	for i, c := range w.Circles {
		b.Center = append(b.Center, c.Center[:]...)
		b.Color = append(b.Color, c.Color[:]...)
		b.Radius = append(b.Radius, c.Radius[:]...)
		b.Speed = append(b.Speed, c.Speed[:]...)
		if c.Draw {
			b.Draw[i] = 1
		}
		if c.Pulse {
			b.Pulse[i] = 1
		}
	}
	for _, p := range w.Influences {
		b.Influence = append(b.Influence, int32(p.Master), int32(p.Influenced))
	}
	return b
}
