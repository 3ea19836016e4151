package util

import (
	"encoding/json"
	"fmt"
)

type Pair[A, B any] struct {
	Fst A
	Snd B
}

func NewPair[A, B any](fst A, snd B) Pair[A, B] {
	return Pair[A, B]{
		Fst: fst,
		Snd: snd,
	}
}

// MarshalJSON writes the pair as a two element array
func (p Pair[A, B]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Fst, p.Snd})
}

func (p *Pair[A, B]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected a pair, found %d elements in %s", len(raw), string(data))
	}
	if err := json.Unmarshal(raw[0], &p.Fst); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Snd)
}
