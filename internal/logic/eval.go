package logic

import (
	"fmt"

	"github.com/anoma/Semitopology-Checker/internal/openset"
)

// Env threads point and open variable bindings through evaluation.
// Copy-on-write: withPoint/withOpen never mutate the receiver, so a
// single Env can be safely reused across sibling branches of a
// quantifier search.
type Env struct {
	Points map[string]int
	Opens  map[string]openset.Open
}

func newEnv() Env {
	return Env{Points: map[string]int{}, Opens: map[string]openset.Open{}}
}

func (e Env) withPoint(name string, v int) Env {
	pts := make(map[string]int, len(e.Points)+1)
	for k, val := range e.Points {
		pts[k] = val
	}
	pts[name] = v
	return Env{Points: pts, Opens: e.Opens}
}

func (e Env) withOpen(name string, v openset.Open) Env {
	opens := make(map[string]openset.Open, len(e.Opens)+1)
	for k, val := range e.Opens {
		opens[k] = val
	}
	opens[name] = v
	return Env{Points: e.Points, Opens: opens}
}

// Evaluator decides a macro-free Formula's truth against one concrete
// family. It caches Community and InteriorComplement per argument:
// Community is O(|F|^2) to recompute, InteriorComplement O(|F|).
type Evaluator struct {
	N int
	F openset.Family

	communityCache map[int]openset.Open
	icCache        map[openset.Open]openset.Open
}

func NewEvaluator(n int, f openset.Family) *Evaluator {
	return &Evaluator{
		N:              n,
		F:              f,
		communityCache: make(map[int]openset.Open),
		icCache:        make(map[openset.Open]openset.Open),
	}
}

// Eval parses nothing; it decides an already-built, macro-free formula.
func Eval(n int, f openset.Family, formula Formula) bool {
	return NewEvaluator(n, f).eval(formula, newEnv())
}

// Community computes K p: the union of opens containing p that pairwise
// intersect with every open containing p.
func (ev *Evaluator) Community(p int) openset.Open {
	if c, ok := ev.communityCache[p]; ok {
		return c
	}
	var result openset.Open
	for _, o := range ev.F {
		if !o.Contains(p) {
			continue
		}
		interconnected := true
		for _, other := range ev.F {
			if !other.Contains(p) {
				continue
			}
			if !o.Intersects(other) {
				interconnected = false
				break
			}
		}
		if interconnected {
			result = result.Union(o)
		}
	}
	ev.communityCache[p] = result
	return result
}

// InteriorComplement computes IC O: the union of opens in F disjoint
// from O.
func (ev *Evaluator) InteriorComplement(o openset.Open) openset.Open {
	if c, ok := ev.icCache[o]; ok {
		return c
	}
	var result openset.Open
	for _, other := range ev.F {
		if !o.Intersects(other) {
			result = result.Union(other)
		}
	}
	ev.icCache[o] = result
	return result
}

func (ev *Evaluator) eval(f Formula, env Env) bool {
	switch n := f.(type) {
	case PointIn:
		return ev.evalOpen(n.Open, env).Contains(ev.evalPoint(n.Point, env))
	case OpenIntersect:
		return ev.evalOpen(n.A, env).Intersects(ev.evalOpen(n.B, env))
	case Nonempty:
		return ev.evalOpen(n.Open, env) != 0
	case PointEq:
		eq := ev.evalPoint(n.A, env) == ev.evalPoint(n.B, env)
		if n.Negate {
			return !eq
		}
		return eq
	case OpenEq:
		eq := ev.evalOpen(n.A, env) == ev.evalOpen(n.B, env)
		if n.Negate {
			return !eq
		}
		return eq
	case Not:
		return !ev.eval(n.Body, env)
	case And:
		return ev.eval(n.A, env) && ev.eval(n.B, env)
	case Or:
		return ev.eval(n.A, env) || ev.eval(n.B, env)
	case Implies:
		return !ev.eval(n.A, env) || ev.eval(n.B, env)
	case Iff:
		return ev.eval(n.A, env) == ev.eval(n.B, env)
	case Quantifier:
		return ev.evalQuantifier(n, env)
	case Macro:
		panic("logic: eval called on an un-expanded macro node; call Expand first")
	default:
		panic(fmt.Sprintf("logic: eval: unhandled formula node %T", f))
	}
}

func (ev *Evaluator) evalQuantifier(q Quantifier, env Env) bool {
	if q.Kind.IsPointSort() {
		for p := 1; p <= ev.N; p++ {
			r := ev.eval(q.Body, env.withPoint(q.Var, p))
			if q.Kind.IsExistential() == r {
				return q.Kind.IsExistential()
			}
		}
		return !q.Kind.IsExistential()
	}
	for _, o := range ev.F {
		r := ev.eval(q.Body, env.withOpen(q.Var, o))
		if q.Kind.IsExistential() == r {
			return q.Kind.IsExistential()
		}
	}
	return !q.Kind.IsExistential()
}

func (ev *Evaluator) evalPoint(e PointExpr, env Env) int {
	v, ok := e.(PointVar)
	if !ok {
		panic(fmt.Sprintf("logic: evalPoint: unhandled node %T", e))
	}
	p, bound := env.Points[v.Name]
	if !bound {
		panic(fmt.Sprintf("logic: unbound point variable %q", v.Name))
	}
	return p
}

func (ev *Evaluator) evalOpen(e OpenExpr, env Env) openset.Open {
	switch v := e.(type) {
	case OpenVar:
		o, bound := env.Opens[v.Name]
		if !bound {
			panic(fmt.Sprintf("logic: unbound open variable %q", v.Name))
		}
		return o
	case Community:
		return ev.Community(ev.evalPoint(v.Point, env))
	case InteriorComplement:
		return ev.InteriorComplement(ev.evalOpen(v.Open, env))
	default:
		panic(fmt.Sprintf("logic: evalOpen: unhandled node %T", e))
	}
}

// Witness binds one outermost existential variable to a concrete value
//.
type Witness struct {
	Var   string
	Kind  QuantKind
	Point int
	Open  openset.Open
}

// Result is the outcome of Check: whether the formula is satisfied, and
// (when satisfiable) the bindings for its outermost existential prefix.
type Result struct {
	Satisfied bool
	Witnesses []Witness
}

// Check decides formula against F, extracting witnesses for the
// formula's maximal outermost contiguous prefix of EP/EO quantifiers:
// witnesses are returned only when those outermost existentials are
// satisfiable. Anything past that prefix — a universal, or an
// existential not at the root — is evaluated normally with no witness
// extracted for it.
func Check(n int, f openset.Family, formula Formula) Result {
	ev := NewEvaluator(n, f)
	prefix, rest := peelExistentialPrefix(formula)
	if len(prefix) == 0 {
		return Result{Satisfied: ev.eval(formula, newEnv())}
	}
	witnesses := make([]Witness, len(prefix))
	if !searchWitnesses(ev, prefix, 0, rest, newEnv(), witnesses) {
		return Result{Satisfied: false}
	}
	return Result{Satisfied: true, Witnesses: witnesses}
}

func peelExistentialPrefix(f Formula) (prefix []Quantifier, rest Formula) {
	for {
		q, ok := f.(Quantifier)
		if !ok || !q.Kind.IsExistential() {
			return prefix, f
		}
		prefix = append(prefix, q)
		f = q.Body
	}
}

func searchWitnesses(ev *Evaluator, prefix []Quantifier, idx int, rest Formula, env Env, witnesses []Witness) bool {
	if idx == len(prefix) {
		return ev.eval(rest, env)
	}
	q := prefix[idx]
	if q.Kind.IsPointSort() {
		for p := 1; p <= ev.N; p++ {
			if searchWitnesses(ev, prefix, idx+1, rest, env.withPoint(q.Var, p), witnesses) {
				witnesses[idx] = Witness{Var: q.Var, Kind: q.Kind, Point: p}
				return true
			}
		}
		return false
	}
	for _, o := range ev.F {
		if searchWitnesses(ev, prefix, idx+1, rest, env.withOpen(q.Var, o), witnesses) {
			witnesses[idx] = Witness{Var: q.Var, Kind: q.Kind, Open: o}
			return true
		}
	}
	return false
}
