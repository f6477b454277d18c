package artifact

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the builder artifact variants.
type Kind uint8

const (
	KindModel Kind = iota
	KindSlice
	KindOperation
	KindInlineOperation
)

var kindNames = map[Kind]string{
	KindModel:           "model",
	KindSlice:           "slice",
	KindOperation:       "operation",
	KindInlineOperation: "inlineOperation",
}

var kindByName = map[string]Kind{
	"model":           KindModel,
	"slice":           KindSlice,
	"operation":       KindOperation,
	"inlineOperation": KindInlineOperation,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ModelPrebuild is the offline descriptor for a model definition.
type ModelPrebuild struct {
	Typename string `json:"typename"`
}

// SlicePrebuild is the offline descriptor for a query/mutation slice.
type SlicePrebuild struct {
	OperationType string `json:"operationType"`
}

// OperationPrebuild is the offline descriptor for a composed operation. The
// whole struct is re-serialized into the rewritten call site, so its field
// set and tags are part of the output contract.
type OperationPrebuild struct {
	OperationName string `json:"operationName"`
	OperationType string `json:"operationType"`
	Document      string `json:"document"`
}

// InlineOperationPrebuild is the offline descriptor for an inline operation.
type InlineOperationPrebuild struct {
	OperationName string `json:"operationName"`
	Document      string `json:"document"`
}

// Element is one entry of the builder artifact. Exactly one payload pointer
// is set, selected by Kind.
type Element struct {
	Kind            Kind
	Model           *ModelPrebuild
	Slice           *SlicePrebuild
	Operation       *OperationPrebuild
	InlineOperation *InlineOperationPrebuild
}

// elementWire mirrors the JSON layout produced by the builder: a `type`
// discriminator plus the kind-specific `prebuild` object.
type elementWire struct {
	Type     string          `json:"type"`
	Prebuild json.RawMessage `json:"prebuild"`
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var wire elementWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	kind, ok := kindByName[wire.Type]
	if !ok {
		return fmt.Errorf("unknown artifact element type %q", wire.Type)
	}
	if len(wire.Prebuild) == 0 {
		return fmt.Errorf("artifact element %q has no prebuild payload", wire.Type)
	}

	*e = Element{Kind: kind}
	switch kind {
	case KindModel:
		e.Model = &ModelPrebuild{}
		return json.Unmarshal(wire.Prebuild, e.Model)
	case KindSlice:
		e.Slice = &SlicePrebuild{}
		return json.Unmarshal(wire.Prebuild, e.Slice)
	case KindOperation:
		e.Operation = &OperationPrebuild{}
		return json.Unmarshal(wire.Prebuild, e.Operation)
	case KindInlineOperation:
		e.InlineOperation = &InlineOperationPrebuild{}
		return json.Unmarshal(wire.Prebuild, e.InlineOperation)
	}
	return nil
}

func (e Element) MarshalJSON() ([]byte, error) {
	var payload any
	switch e.Kind {
	case KindModel:
		payload = e.Model
	case KindSlice:
		payload = e.Slice
	case KindOperation:
		payload = e.Operation
	case KindInlineOperation:
		payload = e.InlineOperation
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementWire{Type: e.Kind.String(), Prebuild: raw})
}
