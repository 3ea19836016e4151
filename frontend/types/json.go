package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
)

// Types and kinds are persisted as {"tag": <constructor>, "contents": <fields>},
// where several fields are written as an array in declaration order.

type tagged struct {
	Tag      string          `json:"tag"`
	Contents json.RawMessage `json:"contents,omitempty"`
}

func encodeTagged(tag string, contents any) ([]byte, error) {
	if contents == nil {
		return json.Marshal(tagged{Tag: tag})
	}
	raw, err := json.Marshal(contents)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", tag, err)
	}
	return json.Marshal(tagged{Tag: tag, Contents: raw})
}

func decodeTagged(data []byte, what string, code enverr.ErrCode) (tagged, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil || t.Tag == "" {
		return tagged{}, enverr.NewDecode(code, what, string(data))
	}
	return t, nil
}

// decodeFields splits contents into exactly n raw fields
func decodeFields(t tagged, n int, what string, code enverr.ErrCode) ([]json.RawMessage, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(t.Contents, &fields); err != nil || len(fields) != n {
		return nil, enverr.NewDecode(code, what+" "+t.Tag, string(t.Contents))
	}
	return fields, nil
}

func isNull(data []byte) bool {
	return len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func (k KUnknown) MarshalJSON() ([]byte, error)  { return encodeTagged("KUnknown", k.ID) }
func (k NamedKind) MarshalJSON() ([]byte, error) { return encodeTagged("NamedKind", k.Name) }
func (k Row) MarshalJSON() ([]byte, error)       { return encodeTagged("Row", k.Kind) }
func (k FunKind) MarshalJSON() ([]byte, error) {
	return encodeTagged("FunKind", []Kind{k.Arg, k.Result})
}

// UnmarshalKind decodes a persisted kind
func UnmarshalKind(data []byte) (Kind, error) {
	t, err := decodeTagged(data, "kind", enverr.UnknownKindTag)
	if err != nil {
		return nil, err
	}
	switch t.Tag {
	case "KUnknown":
		var id int
		if err := json.Unmarshal(t.Contents, &id); err != nil {
			return nil, enverr.NewDecode(enverr.UnknownKindTag, "kind KUnknown", string(t.Contents))
		}
		return KUnknown{ID: id}, nil
	case "NamedKind":
		var name names.Qualified[names.ProperName]
		if err := json.Unmarshal(t.Contents, &name); err != nil {
			return nil, enverr.NewDecode(enverr.UnknownKindTag, "kind NamedKind", string(t.Contents))
		}
		return NamedKind{Name: name}, nil
	case "Row":
		inner, err := UnmarshalKind(t.Contents)
		if err != nil {
			return nil, err
		}
		return Row{Kind: inner}, nil
	case "FunKind":
		fields, err := decodeFields(t, 2, "kind", enverr.UnknownKindTag)
		if err != nil {
			return nil, err
		}
		arg, err := UnmarshalKind(fields[0])
		if err != nil {
			return nil, err
		}
		res, err := UnmarshalKind(fields[1])
		if err != nil {
			return nil, err
		}
		return FunKind{Arg: arg, Result: res}, nil
	}
	return nil, enverr.NewDecode(enverr.UnknownKindTag, "kind", t.Tag)
}

// UnmarshalOptionalKind decodes a kind that may be null
func UnmarshalOptionalKind(data []byte) (Kind, error) {
	if isNull(data) {
		return nil, nil
	}
	return UnmarshalKind(data)
}

func (t TypeVar) MarshalJSON() ([]byte, error) { return encodeTagged("TypeVar", t.Name) }
func (t TypeLevelString) MarshalJSON() ([]byte, error) {
	return encodeTagged("TypeLevelString", t.Value)
}
func (t TypeConstructor) MarshalJSON() ([]byte, error) {
	return encodeTagged("TypeConstructor", t.Name)
}
func (t TypeApp) MarshalJSON() ([]byte, error) {
	return encodeTagged("TypeApp", []Type{t.Func, t.Arg})
}
func (t ForAll) MarshalJSON() ([]byte, error) {
	return encodeTagged("ForAll", []any{t.Var, t.Body})
}
func (t ConstrainedType) MarshalJSON() ([]byte, error) {
	return encodeTagged("ConstrainedType", []any{t.Constraint, t.Body})
}
func (REmpty) MarshalJSON() ([]byte, error) { return encodeTagged("REmpty", nil) }
func (t RCons) MarshalJSON() ([]byte, error) {
	return encodeTagged("RCons", []any{t.Label, t.Head, t.Tail})
}
func (t KindedType) MarshalJSON() ([]byte, error) {
	return encodeTagged("KindedType", []any{t.Type, t.Kind})
}

// UnmarshalType decodes a persisted type
func UnmarshalType(data []byte) (Type, error) {
	t, err := decodeTagged(data, "type", enverr.UnknownTypeTag)
	if err != nil {
		return nil, err
	}
	str := func() (string, error) {
		var s string
		if err := json.Unmarshal(t.Contents, &s); err != nil {
			return "", enverr.NewDecode(enverr.UnknownTypeTag, "type "+t.Tag, string(t.Contents))
		}
		return s, nil
	}

	switch t.Tag {
	case "TypeVar":
		name, err := str()
		return TypeVar{Name: name}, err
	case "TypeLevelString":
		value, err := str()
		return TypeLevelString{Value: value}, err
	case "TypeConstructor":
		var name names.Qualified[names.ProperName]
		if err := json.Unmarshal(t.Contents, &name); err != nil {
			return nil, enverr.NewDecode(enverr.UnknownTypeTag, "type TypeConstructor", string(t.Contents))
		}
		return TypeConstructor{Name: name}, nil
	case "TypeApp":
		fields, err := decodeFields(t, 2, "type", enverr.UnknownTypeTag)
		if err != nil {
			return nil, err
		}
		f, err := UnmarshalType(fields[0])
		if err != nil {
			return nil, err
		}
		arg, err := UnmarshalType(fields[1])
		if err != nil {
			return nil, err
		}
		return TypeApp{Func: f, Arg: arg}, nil
	case "ForAll":
		fields, err := decodeFields(t, 2, "type", enverr.UnknownTypeTag)
		if err != nil {
			return nil, err
		}
		var v string
		if err := json.Unmarshal(fields[0], &v); err != nil {
			return nil, enverr.NewDecode(enverr.UnknownTypeTag, "type ForAll", string(fields[0]))
		}
		body, err := UnmarshalType(fields[1])
		if err != nil {
			return nil, err
		}
		return ForAll{Var: v, Body: body}, nil
	case "ConstrainedType":
		fields, err := decodeFields(t, 2, "type", enverr.UnknownTypeTag)
		if err != nil {
			return nil, err
		}
		var c Constraint
		if err := json.Unmarshal(fields[0], &c); err != nil {
			return nil, err
		}
		body, err := UnmarshalType(fields[1])
		if err != nil {
			return nil, err
		}
		return ConstrainedType{Constraint: c, Body: body}, nil
	case "REmpty":
		return REmpty{}, nil
	case "RCons":
		fields, err := decodeFields(t, 3, "type", enverr.UnknownTypeTag)
		if err != nil {
			return nil, err
		}
		var label string
		if err := json.Unmarshal(fields[0], &label); err != nil {
			return nil, enverr.NewDecode(enverr.UnknownTypeTag, "type RCons", string(fields[0]))
		}
		head, err := UnmarshalType(fields[1])
		if err != nil {
			return nil, err
		}
		tail, err := UnmarshalType(fields[2])
		if err != nil {
			return nil, err
		}
		return RCons{Label: label, Head: head, Tail: tail}, nil
	case "KindedType":
		fields, err := decodeFields(t, 2, "type", enverr.UnknownTypeTag)
		if err != nil {
			return nil, err
		}
		inner, err := UnmarshalType(fields[0])
		if err != nil {
			return nil, err
		}
		kind, err := UnmarshalKind(fields[1])
		if err != nil {
			return nil, err
		}
		return KindedType{Type: inner, Kind: kind}, nil
	}
	return nil, enverr.NewDecode(enverr.UnknownTypeTag, "type", t.Tag)
}

// UnmarshalTypes decodes a JSON array of types. An empty array decodes to nil.
func UnmarshalTypes(data []byte) ([]Type, error) {
	if isNull(data) {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, enverr.NewDecode(enverr.UnknownTypeTag, "type list", string(data))
	}
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]Type, 0, len(raws))
	for _, raw := range raws {
		t, err := UnmarshalType(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type constraintJSON struct {
	Class names.Qualified[names.ProperName] `json:"constraintClass"`
	Args  json.RawMessage                   `json:"constraintArgs"`
	Data  *constraintDataJSON               `json:"constraintData"`
}

type constraintDataJSON struct {
	Partial *[2]json.RawMessage `json:"PartialConstraintData"`
}

func (c Constraint) MarshalJSON() ([]byte, error) {
	args := c.Args
	if args == nil {
		args = []Type{}
	}
	rawArgs, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	out := constraintJSON{Class: c.Class, Args: rawArgs}
	if c.Data != nil {
		binders, err := json.Marshal(c.Data.Binders)
		if err != nil {
			return nil, err
		}
		truncated, _ := json.Marshal(c.Data.Truncated)
		out.Data = &constraintDataJSON{Partial: &[2]json.RawMessage{binders, truncated}}
	}
	return json.Marshal(out)
}

func (c *Constraint) UnmarshalJSON(data []byte) error {
	var raw constraintJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return enverr.NewDecode(enverr.UnknownTypeTag, "constraint", string(data))
	}
	args, err := UnmarshalTypes(raw.Args)
	if err != nil {
		return err
	}
	c.Class = raw.Class
	c.Args = args
	c.Data = nil
	if raw.Data != nil && raw.Data.Partial != nil {
		partial := &PartialConstraintData{}
		if err := json.Unmarshal(raw.Data.Partial[0], &partial.Binders); err != nil {
			return enverr.NewDecode(enverr.UnknownTypeTag, "constraint data", string(data))
		}
		if err := json.Unmarshal(raw.Data.Partial[1], &partial.Truncated); err != nil {
			return enverr.NewDecode(enverr.UnknownTypeTag, "constraint data", string(data))
		}
		c.Data = partial
	}
	return nil
}
