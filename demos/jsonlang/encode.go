package jsonlang

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the formats Encode supports.
var Formats = []Format{FormatXML, FormatYAML, FormatJSON}

// Encode writes v to w in format. Object properties keep their order.
func Encode(w io.Writer, v Value, format Format) error {
	switch format {
	case FormatXML:
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := encodeXML(enc, v); err != nil {
			return fmt.Errorf("encoding xml: %w", err)
		}
		if err := enc.Flush(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlNode(v)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonValue{v}); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func encodeXML(enc *xml.Encoder, v Value) error {
	start := xml.StartElement{Name: xml.Name{Local: v.Kind()}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch v := v.(type) {
	case String:
		if err := enc.EncodeToken(xml.CharData(v.Value)); err != nil {
			return err
		}
	case Number:
		if err := enc.EncodeToken(xml.CharData(v.Literal)); err != nil {
			return err
		}
	case Boolean:
		if err := enc.EncodeToken(xml.CharData(strconv.FormatBool(v.Value))); err != nil {
			return err
		}
	case Array:
		for _, it := range v.Items {
			if err := encodeXML(enc, it); err != nil {
				return err
			}
		}
	case Object:
		for _, p := range v.Properties {
			prop := xml.StartElement{
				Name: xml.Name{Local: "property"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: p.Name}},
			}
			if err := enc.EncodeToken(prop); err != nil {
				return err
			}
			if err := encodeXML(enc, p.Value); err != nil {
				return err
			}
			if err := enc.EncodeToken(prop.End()); err != nil {
				return err
			}
		}
	}

	return enc.EncodeToken(start.End())
}

func yamlNode(v Value) *yaml.Node {
	switch v := v.(type) {
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Value}
	case Number:
		tag := "!!float"
		if isInteger(v.Literal) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Literal}
	case Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Value)}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range v.Items {
			n.Content = append(n.Content, yamlNode(it))
		}
		return n
	case Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.Properties {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name},
				yamlNode(p.Value))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// jsonValue marshals a Value keeping the order of object properties.
type jsonValue struct {
	v Value
}

func (j jsonValue) MarshalJSON() ([]byte, error) {
	switch v := j.v.(type) {
	case String:
		return json.Marshal(v.Value)
	case Number:
		return []byte(v.Literal), nil
	case Boolean:
		return json.Marshal(v.Value)
	case Array:
		items := make([]jsonValue, len(v.Items))
		for i, it := range v.Items {
			items[i] = jsonValue{it}
		}
		return json.Marshal(items)
	case Object:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, p := range v.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(p.Name)
			if err != nil {
				return nil, err
			}
			value, err := jsonValue{p.Value}.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}
