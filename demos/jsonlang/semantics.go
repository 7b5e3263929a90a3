package jsonlang

import (
	"fmt"

	"github.com/mfroeh/gogram/lang"
)

// Value is a node of the semantic tree of a JSON document.
type Value interface {
	Kind() string
}

type String struct {
	Value string
}

// Number keeps the literal of the source, without a leading '+'.
type Number struct {
	Literal string
	Float64 float64
}

type Boolean struct {
	Value bool
}

type Null struct{}

type Array struct {
	Items []Value
}

// Object keeps its properties in source order. Names may repeat.
type Object struct {
	Properties []Property
}

type Property struct {
	Name  string
	Value Value
}

func (String) Kind() string  { return "string" }
func (Number) Kind() string  { return "number" }
func (Boolean) Kind() string { return "boolean" }
func (Null) Kind() string    { return "null" }
func (Array) Kind() string   { return "array" }
func (Object) Kind() string  { return "object" }

// Get returns the value of the last property named name.
func (o Object) Get(name string) (Value, bool) {
	for i := len(o.Properties) - 1; i >= 0; i-- {
		if o.Properties[i].Name == name {
			return o.Properties[i].Value, true
		}
	}
	return nil, false
}

// FromSyntax builds the semantic tree of a value parsed by NewSyntax.
func FromSyntax(n lang.SyntaxNode) (Value, error) {
	switch s := n.(type) {
	case *ScalarSyntax:
		return fromScalar(s.Token)
	case *ArraySyntax:
		a := Array{Items: make([]Value, 0, len(s.Items))}
		for _, it := range s.Items {
			v, err := FromSyntax(it)
			if err != nil {
				return nil, err
			}
			a.Items = append(a.Items, v)
		}
		return a, nil
	case *ObjectSyntax:
		o := Object{Properties: make([]Property, 0, len(s.Properties))}
		for _, p := range s.Properties {
			v, err := FromSyntax(p.Value)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", p.Name.Value, err)
			}
			o.Properties = append(o.Properties, Property{Name: p.Name.Value, Value: v})
		}
		return o, nil
	case nil:
		return nil, fmt.Errorf("no syntax")
	}
	return nil, fmt.Errorf("unrecognized syntax node %T", n)
}

func fromScalar(t ScalarToken) (Value, error) {
	switch v := t.Scalar().(type) {
	case string:
		return String{Value: v}, nil
	case *NumberToken:
		return Number{Literal: v.Literal, Float64: v.Float64()}, nil
	case bool:
		return Boolean{Value: v}, nil
	case nil:
		return Null{}, nil
	}
	return nil, fmt.Errorf("unrecognized scalar token %s", t.Name())
}
