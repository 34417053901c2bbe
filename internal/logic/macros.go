package logic

import "fmt"

// Expand rewrites every Macro node in f to core, macro-free AST via a
// fixed expansion table, introducing fresh bound variables wherever a
// rewrite rule quantifies. The result is a pure function of f: a macro's
// expansion is itself re-expanded recursively so rules that nest macros
// (topen -> transitive, regular -> topen, unconflicted -> point-inter
// chains) bottom out in core AST.
func Expand(f Formula) Formula {
	fg := newFreshGen(f)
	return expand(f, fg)
}

func expand(f Formula, fg *freshGen) Formula {
	switch n := f.(type) {
	case PointIn, OpenIntersect, Nonempty, PointEq, OpenEq:
		return n
	case Not:
		return Not{Body: expand(n.Body, fg)}
	case And:
		return And{A: expand(n.A, fg), B: expand(n.B, fg)}
	case Or:
		return Or{A: expand(n.A, fg), B: expand(n.B, fg)}
	case Implies:
		return Implies{A: expand(n.A, fg), B: expand(n.B, fg)}
	case Iff:
		return Iff{A: expand(n.A, fg), B: expand(n.B, fg)}
	case Quantifier:
		return Quantifier{Kind: n.Kind, Var: n.Var, Body: expand(n.Body, fg)}
	case Macro:
		return expand(expandMacro(n, fg), fg)
	default:
		panic(fmt.Sprintf("logic: expand: unhandled formula node %T", f))
	}
}

// expandMacro performs exactly one rewrite step for m. Results may
// still contain Macro nodes (e.g. regular rewrites to topen applied to
// K p); expand's caller re-walks the result.
func expandMacro(m Macro, fg *freshGen) Formula {
	switch m.Kind {
	case MacroOpenInterChain:
		x, y, z := m.Opens[0], m.Opens[1], m.Opens[2]
		return And{A: OpenIntersect{A: x, B: y}, B: OpenIntersect{A: y, B: z}}

	case MacroPointInterPair:
		p, q := m.Points[0], m.Points[1]
		oName, pName := fg.freshOpen("O"), fg.freshOpen("P")
		o, pp := OpenVar{Name: oName}, OpenVar{Name: pName}
		body := Implies{
			A: And{A: PointIn{Point: p, Open: o}, B: PointIn{Point: q, Open: pp}},
			B: OpenIntersect{A: o, B: pp},
		}
		return Quantifier{Kind: AO, Var: oName, Body: Quantifier{Kind: AO, Var: pName, Body: body}}

	case MacroPointInterChain:
		p, q, r := m.Points[0], m.Points[1], m.Points[2]
		return And{
			A: Macro{Kind: MacroPointInterPair, Points: []PointExpr{p, q}},
			B: Macro{Kind: MacroPointInterPair, Points: []PointExpr{q, r}},
		}

	case MacroTransitive:
		t := m.Opens[0]
		oName, pName := fg.freshOpen("O"), fg.freshOpen("P")
		o, p := OpenVar{Name: oName}, OpenVar{Name: pName}
		body := Implies{
			A: And{A: OpenIntersect{A: o, B: t}, B: OpenIntersect{A: t, B: p}},
			B: OpenIntersect{A: o, B: p},
		}
		return Quantifier{Kind: AO, Var: oName, Body: Quantifier{Kind: AO, Var: pName, Body: body}}

	case MacroTopen:
		t := m.Opens[0]
		return And{A: Nonempty{Open: t}, B: Macro{Kind: MacroTransitive, Opens: []OpenExpr{t}}}

	case MacroRegular:
		p := m.Points[0]
		return Macro{Kind: MacroTopen, Opens: []OpenExpr{Community{Point: p}}}

	case MacroIrregular:
		p := m.Points[0]
		return Not{Body: Macro{Kind: MacroRegular, Points: []PointExpr{p}}}

	case MacroWeaklyRegular:
		p := m.Points[0]
		return PointIn{Point: p, Open: Community{Point: p}}

	case MacroQuasiregular:
		p := m.Points[0]
		return Nonempty{Open: Community{Point: p}}

	case MacroIndirectlyRegular:
		p := m.Points[0]
		qName := fg.freshPoint("q")
		q := PointVar{Name: qName}
		body := And{
			A: Macro{Kind: MacroPointInterPair, Points: []PointExpr{p, q}},
			B: Macro{Kind: MacroRegular, Points: []PointExpr{q}},
		}
		return Quantifier{Kind: EP, Var: qName, Body: body}

	case MacroHypertransitive:
		p := m.Points[0]
		oName, qName, pName := fg.freshOpen("O"), fg.freshOpen("Q"), fg.freshOpen("P")
		o, q, pp := OpenVar{Name: oName}, OpenVar{Name: qName}, OpenVar{Name: pName}
		inner := Quantifier{Kind: AO, Var: pName, Body: Implies{
			A: PointIn{Point: p, Open: pp},
			B: Macro{Kind: MacroOpenInterChain, Opens: []OpenExpr{o, pp, q}},
		}}
		body := Implies{A: inner, B: OpenIntersect{A: o, B: q}}
		return Quantifier{Kind: AO, Var: oName, Body: Quantifier{Kind: AO, Var: qName, Body: body}}

	case MacroUnconflicted:
		p := m.Points[0]
		xName, yName := fg.freshPoint("x"), fg.freshPoint("y")
		x, y := PointVar{Name: xName}, PointVar{Name: yName}
		body := Implies{
			A: Macro{Kind: MacroPointInterChain, Points: []PointExpr{x, p, y}},
			B: Macro{Kind: MacroPointInterPair, Points: []PointExpr{x, y}},
		}
		return Quantifier{Kind: AP, Var: xName, Body: Quantifier{Kind: AP, Var: yName, Body: body}}

	case MacroConflicted:
		p := m.Points[0]
		return Not{Body: Macro{Kind: MacroUnconflicted, Points: []PointExpr{p}}}

	case MacroSpace:
		pName := fg.freshPoint("p")
		p := PointVar{Name: pName}
		return Quantifier{Kind: AP, Var: pName, Body: Macro{Kind: m.Inner, Points: []PointExpr{p}}}

	default:
		panic(fmt.Sprintf("logic: expandMacro: unhandled macro kind %v", m.Kind))
	}
}

// freshGen produces bound-variable names guaranteed not to collide with
// any name free or bound anywhere in the formula being expanded, nor
// with any name freshGen has already handed out. The '#' separator can
// never appear in a lexer-produced identifier, so these names are
// unreachable from formula text.
type freshGen struct {
	usedPoints map[string]bool
	usedOpens  map[string]bool
	counter    int
}

func newFreshGen(f Formula) *freshGen {
	pts, opens := map[string]bool{}, map[string]bool{}
	collectNames(f, pts, opens)
	return &freshGen{usedPoints: pts, usedOpens: opens}
}

func (g *freshGen) freshPoint(base string) string {
	for {
		g.counter++
		name := fmt.Sprintf("%s#%d", base, g.counter)
		if !g.usedPoints[name] {
			g.usedPoints[name] = true
			return name
		}
	}
}

func (g *freshGen) freshOpen(base string) string {
	for {
		g.counter++
		name := fmt.Sprintf("%s#%d", base, g.counter)
		if !g.usedOpens[name] {
			g.usedOpens[name] = true
			return name
		}
	}
}

func collectNames(f Formula, pts, opens map[string]bool) {
	switch n := f.(type) {
	case PointIn:
		collectPointExpr(n.Point, pts)
		collectOpenExpr(n.Open, pts, opens)
	case OpenIntersect:
		collectOpenExpr(n.A, pts, opens)
		collectOpenExpr(n.B, pts, opens)
	case Nonempty:
		collectOpenExpr(n.Open, pts, opens)
	case PointEq:
		collectPointExpr(n.A, pts)
		collectPointExpr(n.B, pts)
	case OpenEq:
		collectOpenExpr(n.A, pts, opens)
		collectOpenExpr(n.B, pts, opens)
	case Not:
		collectNames(n.Body, pts, opens)
	case And:
		collectNames(n.A, pts, opens)
		collectNames(n.B, pts, opens)
	case Or:
		collectNames(n.A, pts, opens)
		collectNames(n.B, pts, opens)
	case Implies:
		collectNames(n.A, pts, opens)
		collectNames(n.B, pts, opens)
	case Iff:
		collectNames(n.A, pts, opens)
		collectNames(n.B, pts, opens)
	case Quantifier:
		if n.Kind.IsPointSort() {
			pts[n.Var] = true
		} else {
			opens[n.Var] = true
		}
		collectNames(n.Body, pts, opens)
	case Macro:
		for _, p := range n.Points {
			collectPointExpr(p, pts)
		}
		for _, o := range n.Opens {
			collectOpenExpr(o, pts, opens)
		}
	}
}

func collectPointExpr(e PointExpr, pts map[string]bool) {
	if v, ok := e.(PointVar); ok {
		pts[v.Name] = true
	}
}

func collectOpenExpr(e OpenExpr, pts, opens map[string]bool) {
	switch v := e.(type) {
	case OpenVar:
		opens[v.Name] = true
	case Community:
		collectPointExpr(v.Point, pts)
	case InteriorComplement:
		collectOpenExpr(v.Open, pts, opens)
	}
}
