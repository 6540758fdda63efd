package world

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const maxLineSize = 1 << 20

// Options controls a world load. The zero value sniffs the variant and
// tolerates malformed headers.
type Options struct {
	// Variant forces the record family instead of sniffing the first header
	Variant Variant
	// Strict promotes recoverable header problems to ErrMalformedHeader failures
	Strict bool
}

type sourceLine struct {
	num  int
	text string
}

// builder accumulates one World; it is discarded after Parse returns
type builder struct {
	opts  Options
	world *World
	lines []sourceLine
	next  int
}

// Parse reads a world description. Loading is single-shot: the returned World
// is complete and every declared count has been checked against the records.
func Parse(r io.Reader, o Options) (*World, error) {
	b := &builder{opts: o, world: &World{}}
	if err := b.readLines(r); err != nil {
		return nil, err
	}

	variant := o.Variant
	if variant == VariantAuto {
		variant = b.sniffVariant()
	}
	b.world.Variant = variant

	var err error
	switch variant {
	case VariantCircles:
		err = b.buildCircles()
	default:
		err = b.buildPoints()
	}
	if err != nil {
		return nil, err
	}
	return b.world, nil
}

func (b *builder) readLines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), "\r")
		if isSkippable(text) {
			continue
		}
		b.lines = append(b.lines, sourceLine{num: n, text: text})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read world: %w", err)
	}
	return nil
}

// isSkippable tolerates blank and comment lines anywhere in the file
func isSkippable(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//")
}

func (b *builder) sniffVariant() Variant {
	if len(b.lines) > 0 && strings.HasPrefix(strings.TrimSpace(b.lines[0].text), "no_circles") {
		return VariantCircles
	}
	return VariantPoints
}

func (b *builder) warn(line int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if line > 0 {
		msg = fmt.Sprintf("line %d: %s", line, msg)
	}
	b.world.Warnings = append(b.world.Warnings, msg)
	log.Printf("[WORLD] %s", msg)
}

// recordTag returns the leading word of a line as a record tag
func recordTag(text string) string {
	t := NewLexer([]byte(text), 0, DelimCircle).NextToken()
	if t.Type != TokenIdent {
		return ""
	}
	return t.Literal
}

func isRecordTag(tag string) bool {
	switch tag {
	case "dot", "obstacle", "circle", "function":
		return true
	}
	return false
}

// headerSlot consumes the next line as the header named name. A line that does
// not carry that header is consumed and lost, leaving the count at zero, unless
// it is a record line, which is left for the record pass.
func (b *builder) headerSlot(name string) (int, error) {
	if b.next >= len(b.lines) {
		return b.malformedHeader(0, "missing %s header at end of file", name)
	}
	ln := b.lines[b.next]
	if isRecordTag(recordTag(ln.text)) {
		return b.malformedHeader(ln.num, "missing %s header before records", name)
	}
	b.next++
	return b.parseHeader(ln, name)
}

func (b *builder) parseHeader(ln sourceLine, name string) (int, error) {
	toks := NewLexer([]byte(ln.text), ln.num, DelimHeader).Tokens()
	if len(toks) == 0 || strings.TrimSpace(toks[0].Literal) != name {
		return b.malformedHeader(ln.num, "expected %s header, got %q", name, ln.text)
	}
	if len(toks) < 2 {
		return b.malformedHeader(ln.num, "%s: missing count", name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(toks[1].Literal))
	if err != nil || n < 0 {
		return b.malformedHeader(ln.num, "%s: invalid count %q", name, toks[1].Literal)
	}
	log.Printf("[WORLD] %s: %d", name, n)
	return n, nil
}

func (b *builder) malformedHeader(line int, format string, args ...any) (int, error) {
	if b.opts.Strict {
		return 0, errorf(line, ErrMalformedHeader, format, args...)
	}
	b.warn(line, "%v: %s", ErrMalformedHeader, fmt.Sprintf(format, args...))
	return 0, nil
}

// --- Points variant ---

type obstacleRecord struct {
	line      int
	obstacle  Obstacle
	positions int
}

func (b *builder) buildPoints() error {
	h := &b.world.Header
	var err error
	if h.Dots, err = b.headerSlot("no_dots"); err != nil {
		return err
	}
	if h.Attractions, err = b.headerSlot("no_attractions"); err != nil {
		return err
	}
	if h.Obstacles, err = b.headerSlot("no_obstacles"); err != nil {
		return err
	}

	// Explicit per-kind counters bounded by the declared counts. Capacity is
	// bounded by the lines actually present, never by a header alone.
	points := make([]Point, 0, b.capHint(h.Dots))
	pointLines := make([]int, 0, b.capHint(h.Dots))
	obstacles := make([]obstacleRecord, 0, b.capHint(h.Obstacles))
	attractions := make([]AttractionPair, 0, b.capHint(h.Attractions))

	for ; b.next < len(b.lines); b.next++ {
		ln := b.lines[b.next]
		toks := NewLexer([]byte(ln.text), ln.num, DelimRecord).Tokens()
		if len(toks) == 0 {
			continue
		}

		switch toks[0].Literal {
		case DotSchema.Tag:
			if len(points) >= h.Dots {
				return errorf(ln.num, ErrCountMismatch, "more dot records than declared no_dots %d", h.Dots)
			}
			rec, err := DotSchema.Decode(toks[1:], ln.num, Point{Color: DefaultColor, AttractedBy: NoAttractor})
			if err != nil {
				return err
			}
			b.warnUnknown(ln.num, DotSchema.Tag, rec.Unknown)

			p := rec.Value
			if rec.Seen[FieldOldPosition] == 0 {
				p.OldPosition = p.Position
			}
			if !p.HasTarget {
				p.Target = p.Position
			}
			if rec.Seen[FieldAttractedBy] > 0 {
				if len(attractions) >= h.Attractions {
					return errorf(ln.num, ErrCountMismatch, "more attracted_by fields than declared no_attractions %d", h.Attractions)
				}
				attractions = append(attractions, AttractionPair{Point: len(points), Attractor: p.AttractedBy})
			}
			points = append(points, p)
			pointLines = append(pointLines, ln.num)

		case ObstacleSchema.Tag:
			if len(obstacles) >= h.Obstacles {
				return errorf(ln.num, ErrCountMismatch, "more obstacle records than declared no_obstacles %d", h.Obstacles)
			}
			rec, err := ObstacleSchema.Decode(toks[1:], ln.num, Obstacle{Color: DefaultColor})
			if err != nil {
				return err
			}
			b.warnUnknown(ln.num, ObstacleSchema.Tag, rec.Unknown)
			obstacles = append(obstacles, obstacleRecord{line: ln.num, obstacle: rec.Value, positions: rec.Seen[FieldPosition]})

		default:
			b.warn(ln.num, "skipping unrecognized line %q", ln.text)
		}
	}

	if len(points) != h.Dots {
		return errorf(0, ErrCountMismatch, "no_dots declares %d, file holds %d dot record(s)", h.Dots, len(points))
	}
	if len(obstacles) != h.Obstacles {
		return errorf(0, ErrCountMismatch, "no_obstacles declares %d, file holds %d obstacle record(s)", h.Obstacles, len(obstacles))
	}
	if len(attractions) != h.Attractions {
		return errorf(0, ErrCountMismatch, "no_attractions declares %d, file holds %d attracted_by field(s)", h.Attractions, len(attractions))
	}
	for _, a := range attractions {
		if a.Attractor < 0 || a.Attractor >= len(points) {
			return errorf(pointLines[a.Point], ErrMalformedRecord, "attracted_by %d is not a dot index (0..%d)", a.Attractor, len(points)-1)
		}
	}

	segments, err := pairObstacles(obstacles)
	if err != nil {
		return err
	}

	b.world.Points = points
	b.world.Attractions = attractions
	b.world.Obstacles = segments
	return nil
}

// pairObstacles resolves the obstacle layout: records with two positions are
// whole segments; records with one position are endpoints joined pairwise in
// file order, the first endpoint's color winning.
func pairObstacles(recs []obstacleRecord) ([]Obstacle, error) {
	if len(recs) == 0 {
		return []Obstacle{}, nil
	}

	endpoints := recs[0].positions == 1
	for _, r := range recs[1:] {
		if (r.positions == 1) != endpoints {
			return nil, errorf(r.line, ErrMalformedRecord, "obstacle: mixes endpoint and segment records")
		}
	}

	if !endpoints {
		segs := make([]Obstacle, len(recs))
		for i, r := range recs {
			segs[i] = r.obstacle
		}
		return segs, nil
	}

	if len(recs)%2 != 0 {
		return nil, errorf(recs[len(recs)-1].line, ErrMalformedRecord, "obstacle: odd number of endpoint records (%d)", len(recs))
	}
	segs := make([]Obstacle, len(recs)/2)
	for i := range segs {
		a, z := recs[2*i].obstacle, recs[2*i+1].obstacle
		segs[i] = Obstacle{Start: a.Start, End: z.Start, Color: a.Color}
	}
	return segs, nil
}

func (b *builder) warnUnknown(line int, tag string, unknown []string) {
	if len(unknown) > 0 {
		b.warn(line, "%s: ignoring unrecognized token(s) %s", tag, strings.Join(unknown, " "))
	}
}

// capHint bounds a preallocation by the number of remaining lines, since each
// record occupies one line
func (b *builder) capHint(declared int) int {
	return min(declared, len(b.lines)-b.next)
}

// --- Circles variant ---

// circleMask collects the behavior set on one circle by function directives
type circleMask struct {
	draw, pulse bool
	speed       mgl32.Vec2
	hasSpeed    bool
}

func (b *builder) buildCircles() error {
	h := &b.world.Header
	var err error
	if h.Circles, err = b.headerSlot("no_circles"); err != nil {
		return err
	}

	circles := make([]Circle, 0, b.capHint(h.Circles))
	// Directives may precede the records they name; masks are keyed by circle id
	// and merged once every record is read
	masks := make(map[int]*circleMask)
	mask := func(id int) *circleMask {
		m, ok := masks[id]
		if !ok {
			m = &circleMask{}
			masks[id] = m
		}
		return m
	}
	var influences []InfluencePair
	influenceDeclared := false

	for ; b.next < len(b.lines); b.next++ {
		ln := b.lines[b.next]

		switch tag := recordTag(ln.text); tag {
		case CircleSchema.Tag:
			if len(circles) >= h.Circles {
				return errorf(ln.num, ErrCountMismatch, "more circle records than declared no_circles %d", h.Circles)
			}
			toks := NewLexer([]byte(ln.text), ln.num, CircleSchema.Delims).Tokens()
			rec, err := CircleSchema.Decode(toks[1:], ln.num, Circle{Color: DefaultColor})
			if err != nil {
				return err
			}
			b.warnUnknown(ln.num, CircleSchema.Tag, rec.Unknown)
			circles = append(circles, rec.Value)

		case "function":
			d, err := ParseDirective([]byte(ln.text), ln.num)
			if err != nil {
				return err
			}
			if d.Kind == DirectiveUnknown {
				b.warn(ln.num, "skipping unknown function %q", d.Name)
				continue
			}
			b.warnUnknown(ln.num, d.Name, d.Extra)
			for _, id := range d.Circles {
				if id >= h.Circles {
					return errorf(ln.num, ErrMalformedRecord, "%s: circle %d exceeds no_circles %d", d.Name, id+1, h.Circles)
				}
			}
			switch d.Kind {
			case DirectiveDraw:
				for _, id := range d.Circles {
					mask(id).draw = true
				}
			case DirectivePulse:
				for _, id := range d.Circles {
					m := mask(id)
					m.pulse = true
					if d.HasSpeed {
						m.speed, m.hasSpeed = d.Speed, true
					}
				}
			case DirectiveInfluence:
				if influenceDeclared && len(influences) >= h.Influences {
					return errorf(ln.num, ErrCountMismatch, "more influence directives than declared influence_function %d", h.Influences)
				}
				influences = append(influences, InfluencePair{Master: d.Circles[0], Influenced: d.Circles[1]})
			}

		case "influence_function":
			if influenceDeclared {
				if _, err := b.malformedHeader(ln.num, "duplicate influence_function header"); err != nil {
					return err
				}
				continue
			}
			n, err := b.parseHeader(ln, "influence_function")
			if err != nil {
				return err
			}
			h.Influences = n
			influenceDeclared = true
			if len(influences) > n {
				return errorf(ln.num, ErrCountMismatch, "influence_function declares %d after %d influence directive(s)", n, len(influences))
			}

		default:
			b.warn(ln.num, "skipping unrecognized line %q", ln.text)
		}
	}

	if len(circles) != h.Circles {
		return errorf(0, ErrCountMismatch, "no_circles declares %d, file holds %d circle record(s)", h.Circles, len(circles))
	}
	if len(influences) != h.Influences {
		return errorf(0, ErrCountMismatch, "influence_function declares %d, file holds %d influence directive(s)", h.Influences, len(influences))
	}

	for id, m := range masks {
		c := &circles[id]
		c.Draw = m.draw
		c.Pulse = m.pulse
		if m.hasSpeed {
			c.Speed = m.speed
		}
	}
	b.world.Circles = circles
	b.world.Influences = influences
	if b.world.Influences == nil {
		b.world.Influences = []InfluencePair{}
	}
	return nil
}
