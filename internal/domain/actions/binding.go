package actions

import (
	"encoding/json"
	"fmt"
)

// BindingKind distinguishes a single action from an ordered macro.
type BindingKind string

const (
	KindSingle BindingKind = "single"
	KindMacro  BindingKind = "macro"
)

// Binding is what a control triggers when pressed.
//
// A single binding always carries exactly one action. A macro may be
// empty: invalid steps are dropped at normalization instead of failing the
// whole macro.
type Binding struct {
	Kind   BindingKind
	Action Action
	Steps  []Action
}

// NewSingle returns a single-action binding.
func NewSingle(a Action) *Binding {
	return &Binding{Kind: KindSingle, Action: a}
}

// NewMacro returns a macro binding with the given steps in order.
func NewMacro(steps ...Action) *Binding {
	if steps == nil {
		steps = []Action{}
	}
	return &Binding{Kind: KindMacro, Steps: steps}
}

// NormalizeBinding normalizes an untrusted, decoded JSON binding. It
// returns nil when the binding is rejected.
func NormalizeBinding(raw map[string]any) *Binding {
	if raw == nil {
		return nil
	}
	kind, _ := raw["kind"].(string)
	switch BindingKind(kind) {
	case KindSingle:
		obj, _ := raw["action"].(map[string]any)
		a := Normalize(obj)
		if a == nil {
			return nil
		}
		return NewSingle(a)
	case KindMacro:
		steps := []Action{}
		list, _ := raw["steps"].([]any)
		for _, item := range list {
			obj, _ := item.(map[string]any)
			if a := Normalize(obj); a != nil {
				steps = append(steps, a)
			}
		}
		return NewMacro(steps...)
	default:
		return nil
	}
}

// ParseBinding decodes and normalizes a JSON binding.
func ParseBinding(data []byte) (*Binding, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid binding JSON: %w", err)
	}
	b := NormalizeBinding(raw)
	if b == nil {
		return nil, ErrRejected
	}
	return b, nil
}

// Actions returns the actions in execution order.
func (b *Binding) Actions() []Action {
	if b == nil {
		return nil
	}
	if b.Kind == KindSingle {
		if b.Action == nil {
			return nil
		}
		return []Action{b.Action}
	}
	return b.Steps
}

// Clone returns a deep copy of the binding.
func (b *Binding) Clone() *Binding {
	if b == nil {
		return nil
	}
	out := &Binding{Kind: b.Kind}
	if b.Action != nil {
		out.Action = Clone(b.Action)
	}
	if b.Steps != nil {
		out.Steps = make([]Action, len(b.Steps))
		for i, s := range b.Steps {
			out.Steps[i] = Clone(s)
		}
	}
	return out
}

type wireBinding struct {
	Kind   BindingKind  `json:"kind"`
	Action *wireAction  `json:"action,omitempty"`
	Steps  []wireAction `json:"steps,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (b Binding) MarshalJSON() ([]byte, error) {
	w := wireBinding{Kind: b.Kind}
	switch b.Kind {
	case KindSingle:
		if b.Action == nil {
			return nil, fmt.Errorf("single binding without action")
		}
		a := b.Action.wire()
		w.Action = &a
	case KindMacro:
		w.Steps = make([]wireAction, 0, len(b.Steps))
		for _, s := range b.Steps {
			w.Steps = append(w.Steps, s.wire())
		}
	default:
		return nil, fmt.Errorf("unknown binding kind: %q", string(b.Kind))
	}
	if b.Kind == KindMacro && len(w.Steps) == 0 {
		// keep "steps": [] for empty macros
		return json.Marshal(struct {
			Kind  BindingKind  `json:"kind"`
			Steps []wireAction `json:"steps"`
		}{Kind: KindMacro, Steps: w.Steps})
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Input is normalized; a
// rejected binding is an error.
func (b *Binding) UnmarshalJSON(data []byte) error {
	parsed, err := ParseBinding(data)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
