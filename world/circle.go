package world

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// DirectiveKind identifies a `function:` line of the circle variant
type DirectiveKind int

const (
	DirectiveUnknown DirectiveKind = iota
	DirectiveDraw
	DirectivePulse
	DirectiveInfluence
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveDraw:
		return "draw"
	case DirectivePulse:
		return "pulse"
	case DirectiveInfluence:
		return "influence"
	}
	return "unknown"
}

// Directive is a decoded behavior line. Circle ids are 0-based.
//
//	function: draw_circle_1              -> Draw, Circles [0]
//	function: draw_circle_1_circle_3     -> Draw, Circles [0 2]
//	function: pulse_circle_2: speed: 0.01: 0.0
//	function: influence_circle_1_circle_2 -> Influence, Circles [0 1] (master, influenced)
type Directive struct {
	Kind     DirectiveKind
	Name     string
	Circles  []int
	Speed    mgl32.Vec2
	HasSpeed bool

	// Extra holds trailing tokens the directive does not use
	Extra []string
}

// ParseDirective decodes one `function:` line
func ParseDirective(line []byte, lineNo int) (Directive, error) {
	toks := NewLexer(line, lineNo, DelimDirective).Tokens()
	if len(toks) < 2 || toks[0].Literal != "function" {
		return Directive{}, errorf(lineNo, ErrMalformedRecord, "function: missing directive name")
	}

	d := Directive{Name: toks[1].Literal}
	parts := NewLexer([]byte(d.Name), lineNo, DelimName).Tokens()
	if len(parts) == 0 {
		return d, errorf(lineNo, ErrMalformedRecord, "function: empty directive name")
	}

	switch parts[0].Literal {
	case "draw":
		d.Kind = DirectiveDraw
	case "pulse":
		d.Kind = DirectivePulse
	case "influence":
		d.Kind = DirectiveInfluence
	default:
		return d, nil
	}

	ids, err := circleRefs(parts[1:], lineNo, d.Name)
	if err != nil {
		return d, err
	}
	d.Circles = ids

	rest := toks[2:]
	switch d.Kind {
	case DirectiveDraw:
		if len(ids) == 0 {
			return d, errorf(lineNo, ErrMalformedRecord, "%s: no circle referenced", d.Name)
		}
	case DirectiveInfluence:
		if len(ids) != 2 {
			return d, errorf(lineNo, ErrMalformedRecord, "%s: influence needs exactly two circles, got %d", d.Name, len(ids))
		}
	case DirectivePulse:
		if len(ids) == 0 {
			return d, errorf(lineNo, ErrMalformedRecord, "%s: no circle referenced", d.Name)
		}
		if len(rest) > 0 {
			if rest[0].Literal != "speed" {
				return d, errorf(lineNo, ErrMalformedRecord, "%s: unexpected %s", d.Name, rest[0])
			}
			if len(rest) < 3 {
				return d, errorf(lineNo, ErrMalformedRecord, "%s: speed expects 2 values, got %d", d.Name, len(rest)-1)
			}
			var v [2]float64
			for i := 0; i < 2; i++ {
				f, err := parseValue(rest[1+i], false)
				if err != nil {
					return d, errorf(lineNo, ErrMalformedRecord, "%s: speed value %d: %v", d.Name, i+1, err)
				}
				v[i] = f
			}
			d.Speed = mgl32.Vec2{float32(v[0]), float32(v[1])}
			d.HasSpeed = true
			rest = rest[3:]
		}
	}
	for _, t := range rest {
		d.Extra = append(d.Extra, t.Literal)
	}
	return d, nil
}

// circleRefs reads `circle N` pairs from a split directive name
func circleRefs(parts []Token, lineNo int, name string) ([]int, error) {
	if len(parts)%2 != 0 {
		return nil, errorf(lineNo, ErrMalformedRecord, "%s: dangling circle reference", name)
	}
	ids := make([]int, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		if parts[i].Literal != "circle" {
			return nil, errorf(lineNo, ErrMalformedRecord, "%s: expected circle, got %s", name, parts[i])
		}
		if parts[i+1].Type != TokenInteger {
			return nil, errorf(lineNo, ErrMalformedRecord, "%s: circle id %s is not an integer", name, parts[i+1])
		}
		n, err := strconv.Atoi(parts[i+1].Literal)
		if err != nil || n < 1 {
			return nil, errorf(lineNo, ErrMalformedRecord, "%s: circle id %s out of range", name, parts[i+1].Literal)
		}
		ids = append(ids, n-1)
	}
	return ids, nil
}
