// Package names holds the identifiers used as keys of the type environment
package names

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/benbjohnson/immutable"
)

// ModuleName is a dotted module name, like Data.Maybe
type ModuleName string

// Segments returns the dotted components of the module name
func (m ModuleName) Segments() []string {
	if m == "" {
		return nil
	}
	return strings.Split(string(m), ".")
}

// ModuleNameFromSegments is the inverse of ModuleName.Segments
func ModuleNameFromSegments(segments []string) ModuleName {
	return ModuleName(strings.Join(segments, "."))
}

// Ident names a value
type Ident string

// ProperName names a type, a type class, a data constructor or a kind
type ProperName string

// Name is anything that can be qualified by a module
type Name interface {
	~string
}

// Qualified pairs a name with the module defining it.
// An empty Module means the name is not qualified.
type Qualified[N Name] struct {
	Module ModuleName
	Name   N
}

func Qualify[N Name](module ModuleName, name N) Qualified[N] {
	return Qualified[N]{Module: module, Name: name}
}

func Unqualified[N Name](name N) Qualified[N] {
	return Qualified[N]{Name: name}
}

func (q Qualified[N]) IsQualified() bool {
	return q.Module != ""
}

func (q Qualified[N]) IsQualifiedWith(module ModuleName) bool {
	return q.Module == module
}

func (q Qualified[N]) String() string {
	if q.Module == "" {
		return string(q.Name)
	}
	return string(q.Module) + "." + string(q.Name)
}

// MarshalJSON writes the qualified name as [moduleSegments, name],
// the same shape interface files use for qualified references
func (q Qualified[N]) MarshalJSON() ([]byte, error) {
	segments := q.Module.Segments()
	if segments == nil {
		segments = []string{}
	}
	return json.Marshal([]any{segments, string(q.Name)})
}

func (q *Qualified[N]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("qualified name: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("qualified name: expected [module, name], got %s", string(data))
	}
	var segments []string
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return fmt.Errorf("qualified name module: %w", err)
	}
	var name string
	if err := json.Unmarshal(raw[1], &name); err != nil {
		return fmt.Errorf("qualified name: %w", err)
	}
	q.Module = ModuleNameFromSegments(segments)
	q.Name = N(name)
	return nil
}

var _ immutable.Hasher[Qualified[Ident]] = QualifiedHasher[Ident]{}

// QualifiedHasher lets Qualified names key an immutable.Map
type QualifiedHasher[N Name] struct{}

func (QualifiedHasher[N]) Hash(key Qualified[N]) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key.Module))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(key.Name))
	return h.Sum32()
}

func (QualifiedHasher[N]) Equal(a, b Qualified[N]) bool {
	return a == b
}

// Compare orders qualified names by module, then by name
func Compare[N Name](a, b Qualified[N]) int {
	if c := strings.Compare(string(a.Module), string(b.Module)); c != 0 {
		return c
	}
	return strings.Compare(string(a.Name), string(b.Name))
}
