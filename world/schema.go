package world

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// FieldKind enumerates the recognized record field keywords
type FieldKind int

const (
	FieldPosition FieldKind = iota
	FieldOldPosition
	FieldTarget
	FieldColor
	FieldPathFaithful
	FieldGravitation
	FieldAttractedBy
	FieldRadius
	FieldSpeed
)

func (k FieldKind) String() string {
	switch k {
	case FieldPosition:
		return "position"
	case FieldOldPosition:
		return "old_pos"
	case FieldTarget:
		return "target"
	case FieldColor:
		return "color"
	case FieldPathFaithful:
		return "path_faithful"
	case FieldGravitation:
		return "gravitation"
	case FieldAttractedBy:
		return "attracted_by"
	case FieldRadius:
		return "radius"
	case FieldSpeed:
		return "speed"
	}
	return "unknown"
}

// FieldSpec binds a keyword to the number of values following it and to the
// entity slot those values fill
type FieldSpec[E any] struct {
	Kind     FieldKind
	Keywords []string
	Arity    int
	Integer  bool
	MaxCount int // occurrences allowed per record, 0 means 1
	Required bool
	Set      func(e *E, occurrence int, vals []float64)
}

// EntitySchema describes one record kind declaratively; Decode walks it
// generically so every entity kind shares the same keyword-matched parsing
type EntitySchema[E any] struct {
	Tag    string
	Delims string
	Fields []FieldSpec[E]
}

// Record is a decoded entity plus bookkeeping about which fields were present
type Record[E any] struct {
	Value   E
	Seen    map[FieldKind]int
	Unknown []string
}

func (s *EntitySchema[E]) lookup(word string) *FieldSpec[E] {
	word = strings.TrimSuffix(word, ":")
	for i := range s.Fields {
		for _, kw := range s.Fields[i].Keywords {
			if kw == word {
				return &s.Fields[i]
			}
		}
	}
	return nil
}

// Decode fills a copy of init from the field tokens of one record (tag excluded).
// Fields may appear in any order. A keyword consumes exactly Arity numeric tokens;
// a missing or non-numeric value is ErrMalformedRecord. Unrecognized words are
// reported in Record.Unknown and otherwise skipped.
func (s *EntitySchema[E]) Decode(toks []Token, line int, init E) (Record[E], error) {
	rec := Record[E]{Value: init, Seen: make(map[FieldKind]int, len(s.Fields))}

	for i := 0; i < len(toks); {
		t := toks[i]
		if t.Type == TokenError {
			return rec, errorf(line, ErrMalformedRecord, "%s: %s", s.Tag, t.Literal)
		}
		if t.Type != TokenIdent {
			rec.Unknown = append(rec.Unknown, t.Literal)
			i++
			continue
		}

		fs := s.lookup(t.Literal)
		if fs == nil {
			rec.Unknown = append(rec.Unknown, t.Literal)
			i++
			continue
		}

		maxCount := fs.MaxCount
		if maxCount == 0 {
			maxCount = 1
		}
		n := rec.Seen[fs.Kind]
		if n >= maxCount {
			return rec, errorf(line, ErrMalformedRecord, "%s: field %s repeated more than %d time(s)", s.Tag, fs.Kind, maxCount)
		}

		vals := make([]float64, fs.Arity)
		for j := 0; j < fs.Arity; j++ {
			k := i + 1 + j
			if k >= len(toks) {
				return rec, errorf(line, ErrMalformedRecord, "%s: field %s expects %d value(s), got %d", s.Tag, fs.Kind, fs.Arity, j)
			}
			v, err := parseValue(toks[k], fs.Integer)
			if err != nil {
				return rec, errorf(line, ErrMalformedRecord, "%s: field %s value %d: %v", s.Tag, fs.Kind, j+1, err)
			}
			vals[j] = v
		}

		fs.Set(&rec.Value, n, vals)
		rec.Seen[fs.Kind] = n + 1
		i += 1 + fs.Arity
	}

	for _, fs := range s.Fields {
		if fs.Required && rec.Seen[fs.Kind] == 0 {
			return rec, errorf(line, ErrMalformedRecord, "%s: missing required field %s", s.Tag, fs.Kind)
		}
	}
	return rec, nil
}

func parseValue(t Token, integer bool) (float64, error) {
	if !t.IsNumber() {
		return 0, strconv.ErrSyntax
	}
	if integer {
		if t.Type != TokenInteger {
			return 0, strconv.ErrSyntax
		}
		n, err := strconv.Atoi(t.Literal)
		return float64(n), err
	}
	f, err := strconv.ParseFloat(t.Literal, 32)
	return f, err
}

func vec2(v []float64) mgl32.Vec2 {
	return mgl32.Vec2{float32(v[0]), float32(v[1])}
}

func vec4(v []float64) mgl32.Vec4 {
	return mgl32.Vec4{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// DefaultColor is applied to entities whose record carries no color field
var DefaultColor = mgl32.Vec4{1, 1, 1, 1}

// DotSchema decodes `dot` records
var DotSchema = EntitySchema[Point]{
	Tag:    "dot",
	Delims: DelimRecord,
	Fields: []FieldSpec[Point]{
		{Kind: FieldPosition, Keywords: []string{"position"}, Arity: 2, Required: true,
			Set: func(p *Point, _ int, v []float64) { p.Position = vec2(v) }},
		{Kind: FieldOldPosition, Keywords: []string{"old_pos", "old_position"}, Arity: 2,
			Set: func(p *Point, _ int, v []float64) { p.OldPosition = vec2(v) }},
		{Kind: FieldTarget, Keywords: []string{"target"}, Arity: 2,
			Set: func(p *Point, _ int, v []float64) { p.Target = vec2(v); p.HasTarget = true }},
		{Kind: FieldColor, Keywords: []string{"color"}, Arity: 4,
			Set: func(p *Point, _ int, v []float64) { p.Color = vec4(v) }},
		{Kind: FieldPathFaithful, Keywords: []string{"path_faithful"}, Arity: 1, Integer: true,
			Set: func(p *Point, _ int, v []float64) { p.PathFaithful = v[0] != 0 }},
		{Kind: FieldGravitation, Keywords: []string{"gravitation"}, Arity: 1,
			Set: func(p *Point, _ int, v []float64) { p.Gravitation = float32(v[0]) }},
		{Kind: FieldAttractedBy, Keywords: []string{"attracted_by"}, Arity: 1, Integer: true,
			Set: func(p *Point, _ int, v []float64) { p.AttractedBy = int(v[0]) }},
	},
}

// ObstacleSchema decodes `obstacle` records. Two position fields make a full
// segment; a single one is an endpoint of the legacy paired layout.
var ObstacleSchema = EntitySchema[Obstacle]{
	Tag:    "obstacle",
	Delims: DelimRecord,
	Fields: []FieldSpec[Obstacle]{
		{Kind: FieldPosition, Keywords: []string{"position"}, Arity: 2, MaxCount: 2, Required: true,
			Set: func(o *Obstacle, n int, v []float64) {
				if n == 0 {
					o.Start = vec2(v)
				} else {
					o.End = vec2(v)
				}
			}},
		{Kind: FieldColor, Keywords: []string{"color"}, Arity: 4,
			Set: func(o *Obstacle, _ int, v []float64) { o.Color = vec4(v) }},
	},
}

// CircleSchema decodes `circle` records of the circle-algorithm variant
var CircleSchema = EntitySchema[Circle]{
	Tag:    "circle",
	Delims: DelimCircle,
	Fields: []FieldSpec[Circle]{
		{Kind: FieldPosition, Keywords: []string{"position", "center"}, Arity: 2, Required: true,
			Set: func(c *Circle, _ int, v []float64) { c.Center = vec2(v) }},
		{Kind: FieldColor, Keywords: []string{"color"}, Arity: 4,
			Set: func(c *Circle, _ int, v []float64) { c.Color = vec4(v) }},
		{Kind: FieldRadius, Keywords: []string{"radius"}, Arity: 2, Required: true,
			Set: func(c *Circle, _ int, v []float64) { c.Radius = vec2(v) }},
		{Kind: FieldSpeed, Keywords: []string{"speed"}, Arity: 2,
			Set: func(c *Circle, _ int, v []float64) { c.Speed = vec2(v) }},
	},
}
