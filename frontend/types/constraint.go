package types

import (
	"strings"

	"github.com/cottand/typenv/frontend/names"
)

// Constraint is a type class constraint, like `Show a`
type Constraint struct {
	Class names.Qualified[names.ProperName]
	Args  []Type
	// Data is set for solver-generated constraints only
	Data *PartialConstraintData
}

// PartialConstraintData describes the binders a Partial constraint was generated for
type PartialConstraintData struct {
	Binders   [][]string
	Truncated bool
}

func (c Constraint) String() string {
	sb := &strings.Builder{}
	sb.WriteString(c.Class.String())
	for _, arg := range c.Args {
		sb.WriteString(" ")
		sb.WriteString(showTypeAtom(arg))
	}
	return sb.String()
}
