package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordTokens(line string) []Token {
	return NewLexer([]byte(line), 1, DelimRecord).Tokens()[1:]
}

func TestDotSchema_AnyOrder(t *testing.T) {
	toks := recordTokens("dot| color: 0 0 1 1 | attracted_by: 2 | position: 0.5 -0.5 | gravitation: 3")
	rec, err := DotSchema.Decode(toks, 1, Point{Color: DefaultColor, AttractedBy: NoAttractor})
	require.NoError(t, err)

	p := rec.Value
	assert.Equal(t, mgl32.Vec2{0.5, -0.5}, p.Position)
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 1}, p.Color)
	assert.Equal(t, 2, p.AttractedBy)
	assert.Equal(t, float32(3), p.Gravitation)
	assert.False(t, p.HasTarget)
	assert.Equal(t, 1, rec.Seen[FieldPosition])
	assert.Zero(t, rec.Seen[FieldTarget])
	assert.Empty(t, rec.Unknown)
}

func TestDotSchema_Defaults(t *testing.T) {
	rec, err := DotSchema.Decode(recordTokens("dot| position: 0 0"), 1, Point{Color: DefaultColor, AttractedBy: NoAttractor})
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, rec.Value.Color)
	assert.Equal(t, NoAttractor, rec.Value.AttractedBy)
	assert.False(t, rec.Value.PathFaithful)
}

func TestDotSchema_OldPositionAlias(t *testing.T) {
	rec, err := DotSchema.Decode(recordTokens("dot| position: 0 0 | old_position: 0.1 0.1"), 1, Point{})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{0.1, 0.1}, rec.Value.OldPosition)
	assert.Equal(t, 1, rec.Seen[FieldOldPosition])
}

func TestDotSchema_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing trailing value", "dot| position: 0.5"},
		{"short color", "dot| position: 0 0 | color: 1 1 1"},
		{"word as value", "dot| position: 0 zero"},
		{"float flag", "dot| position: 0 0 | path_faithful: 0.5"},
		{"float attractor", "dot| position: 0 0 | attracted_by: 1.0"},
		{"repeated field", "dot| position: 0 0 | position: 1 1"},
		{"missing position", "dot| color: 1 1 1 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DotSchema.Decode(recordTokens(tt.line), 7, Point{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 7, pe.Line)
		})
	}
}

func TestDotSchema_UnknownWords(t *testing.T) {
	rec, err := DotSchema.Decode(recordTokens("dot| position: 0 0 | mass: 3"), 1, Point{})
	require.NoError(t, err)
	assert.Equal(t, []string{"mass:", "3"}, rec.Unknown)
}

func TestObstacleSchema_Positions(t *testing.T) {
	rec, err := ObstacleSchema.Decode(recordTokens("obstacle| position: -0.5 0 | position: 0.5 0"), 1, Obstacle{})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{-0.5, 0}, rec.Value.Start)
	assert.Equal(t, mgl32.Vec2{0.5, 0}, rec.Value.End)
	assert.Equal(t, 2, rec.Seen[FieldPosition])

	_, err = ObstacleSchema.Decode(recordTokens("obstacle| position: 0 0 | position: 1 0 | position: 2 0"), 1, Obstacle{})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestCircleSchema(t *testing.T) {
	toks := NewLexer([]byte("circle: center: 0.1 0.2 radius: 0.3 0.4 speed: 0.01 0"), 1, DelimCircle).Tokens()[1:]
	rec, err := CircleSchema.Decode(toks, 1, Circle{Color: DefaultColor})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{0.1, 0.2}, rec.Value.Center)
	assert.Equal(t, mgl32.Vec2{0.3, 0.4}, rec.Value.Radius)
	assert.Equal(t, mgl32.Vec2{0.01, 0}, rec.Value.Speed)

	toks = NewLexer([]byte("circle: position: 0 0"), 1, DelimCircle).Tokens()[1:]
	_, err = CircleSchema.Decode(toks, 1, Circle{})
	assert.ErrorIs(t, err, ErrMalformedRecord, "radius is required")
}

func TestFieldKind_String(t *testing.T) {
	assert.Equal(t, "attracted_by", FieldAttractedBy.String())
	assert.Equal(t, "old_pos", FieldOldPosition.String())
	assert.Equal(t, "unknown", FieldKind(99).String())
}
