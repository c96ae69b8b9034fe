package movecall

import (
	"encoding/json"
	"fmt"
)

type TypeTag string

const (
	TypeString TypeTag = "string"
	TypeU64    TypeTag = "u64"
	TypeF64    TypeTag = "f64"
)

// Target names a Move function independently of the network it is deployed on.
type Target struct {
	Package  string
	Module   string
	Function string
}

func (t Target) String() string {
	return fmt.Sprintf("%s::%s::%s", t.Package, t.Module, t.Function)
}

func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t Target) MarshalYAML() (any, error) {
	return t.String(), nil
}

// Pure is a literal argument passed by value with an explicit type tag.
type Pure struct {
	Value any     `json:"value" yaml:"value"`
	Type  TypeTag `json:"type" yaml:"type"`
}

// Argument holds exactly one of Pure or ObjectID.
type Argument struct {
	Pure     *Pure  `json:"Pure,omitempty" yaml:"Pure,omitempty"`
	ObjectID string `json:"ObjectId,omitempty" yaml:"ObjectId,omitempty"`
}

func PureArg(value any, typ TypeTag) Argument {
	return Argument{Pure: &Pure{Value: value, Type: typ}}
}

func ObjectArg(id string) Argument {
	return Argument{ObjectID: id}
}

func (a Argument) IsObject() bool {
	return a.Pure == nil
}

// Descriptor is a fully shaped call, ready to be signed and submitted once.
type Descriptor struct {
	Target    Target     `json:"target" yaml:"target"`
	Arguments []Argument `json:"arguments" yaml:"arguments"`
}
