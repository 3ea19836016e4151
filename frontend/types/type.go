// Package types holds the structure of types, kinds and constraints as the type
// environment stores them. Inference over these types lives elsewhere.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cottand/typenv/frontend/names"
)

type Type interface {
	fmt.Stringer
	isType()
}

type TypeVar struct {
	Name string
}

// TypeLevelString is a Symbol literal at the type level
type TypeLevelString struct {
	Value string
}

type TypeConstructor struct {
	Name names.Qualified[names.ProperName]
}

type TypeApp struct {
	Func Type
	Arg  Type
}

type ForAll struct {
	Var  string
	Body Type
}

// ConstrainedType is a type with a class constraint, like `Show a => a -> String`
type ConstrainedType struct {
	Constraint Constraint
	Body       Type
}

// REmpty is the empty row
type REmpty struct{}

// RCons extends the row Tail with Label :: Head
type RCons struct {
	Label string
	Head  Type
	Tail  Type
}

type KindedType struct {
	Type Type
	Kind Kind
}

func (TypeVar) isType()         {}
func (TypeLevelString) isType() {}
func (TypeConstructor) isType() {}
func (TypeApp) isType()         {}
func (ForAll) isType()          {}
func (ConstrainedType) isType() {}
func (REmpty) isType()          {}
func (RCons) isType()           {}
func (KindedType) isType()      {}

func (t TypeVar) String() string { return t.Name }
func (t TypeLevelString) String() string {
	return strconv.Quote(t.Value)
}
func (t TypeConstructor) String() string { return t.Name.String() }
func (t TypeApp) String() string {
	if arg, res, ok := AsFunction(t); ok {
		return showFunctionArg(arg) + " -> " + res.String()
	}
	return t.Func.String() + " " + showTypeAtom(t.Arg)
}
func (t ForAll) String() string {
	vars := []string{t.Var}
	body := t.Body
	for {
		inner, ok := body.(ForAll)
		if !ok {
			break
		}
		vars = append(vars, inner.Var)
		body = inner.Body
	}
	return "forall " + strings.Join(vars, " ") + ". " + body.String()
}
func (t ConstrainedType) String() string {
	return t.Constraint.String() + " => " + t.Body.String()
}
func (REmpty) String() string { return "()" }
func (t RCons) String() string {
	sb := &strings.Builder{}
	sb.WriteString("( ")
	var row Type = t
	first := true
	for {
		cons, ok := row.(RCons)
		if !ok {
			break
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(cons.Label)
		sb.WriteString(" :: ")
		sb.WriteString(cons.Head.String())
		row = cons.Tail
	}
	if _, ok := row.(REmpty); !ok {
		sb.WriteString(" | ")
		sb.WriteString(row.String())
	}
	sb.WriteString(" )")
	return sb.String()
}
func (t KindedType) String() string {
	return "(" + t.Type.String() + " :: " + t.Kind.String() + ")"
}

func showTypeAtom(t Type) string {
	switch t.(type) {
	case TypeApp, ForAll, ConstrainedType:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

func showFunctionArg(t Type) string {
	if _, _, ok := AsFunction(t); ok {
		return "(" + t.String() + ")"
	}
	switch t.(type) {
	case ForAll, ConstrainedType:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

// Function builds the type `arg -> result`
func Function(arg, result Type) Type {
	return TypeApp{Func: TypeApp{Func: TyFunction, Arg: arg}, Arg: result}
}

// Functions builds a curried function type taking args, in order, and returning result
func Functions(result Type, args ...Type) Type {
	t := result
	for i := len(args) - 1; i >= 0; i-- {
		t = Function(args[i], t)
	}
	return t
}

// AsFunction destructures `arg -> result`
func AsFunction(t Type) (arg, result Type, ok bool) {
	outer, ok := t.(TypeApp)
	if !ok {
		return nil, nil, false
	}
	inner, ok := outer.Func.(TypeApp)
	if !ok || !IsTypeConstructor(inner.Func, TyFunction.Name) {
		return nil, nil, false
	}
	return inner.Arg, outer.Arg, true
}

// Apply applies f to args, left to right
func Apply(f Type, args ...Type) Type {
	for _, arg := range args {
		f = TypeApp{Func: f, Arg: arg}
	}
	return f
}

// IsTypeConstructor holds when t is exactly the constructor named name
func IsTypeConstructor(t Type, name names.Qualified[names.ProperName]) bool {
	c, ok := t.(TypeConstructor)
	return ok && c.Name == name
}

// IsTypeOrApplied holds when t is the constructor named name, possibly applied to arguments
func IsTypeOrApplied(t Type, name names.Qualified[names.ProperName]) bool {
	for {
		app, ok := t.(TypeApp)
		if !ok {
			return IsTypeConstructor(t, name)
		}
		t = app.Func
	}
}

// Quantify binds every variable in vars, outermost first
func Quantify(body Type, vars ...string) Type {
	for i := len(vars) - 1; i >= 0; i-- {
		body = ForAll{Var: vars[i], Body: body}
	}
	return body
}

// Constructors visits every type constructor mentioned by t
func Constructors(t Type, visit func(names.Qualified[names.ProperName])) {
	switch t := t.(type) {
	case TypeConstructor:
		visit(t.Name)
	case TypeApp:
		Constructors(t.Func, visit)
		Constructors(t.Arg, visit)
	case ForAll:
		Constructors(t.Body, visit)
	case ConstrainedType:
		for _, arg := range t.Constraint.Args {
			Constructors(arg, visit)
		}
		Constructors(t.Body, visit)
	case RCons:
		Constructors(t.Head, visit)
		Constructors(t.Tail, visit)
	case KindedType:
		Constructors(t.Type, visit)
	}
}
