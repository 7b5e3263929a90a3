package jsonlang

import (
	"bytes"
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

func lex(t *testing.T, input string) []lang.Token {
	t.Helper()
	lexer := lang.LexicalAnalysis{Grammar: NewLexicon()}
	tokens, msgs, err := lexer.Lex(lang.NewSource("test.json", input), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	return tokens
}

func parse(t *testing.T, input string) Value {
	t.Helper()
	v, res, err := Parse(lang.NewSource("test.json", input), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", res.Messages)
	}
	if v == nil {
		t.Fatalf("no value")
	}
	return v
}

func TestLexicon(t *testing.T) {
	tests := map[string]struct {
		givenInput string
		wantNames  []string
	}{
		"flat object": {
			givenInput: `{"a": 1, "b": "c"}`,
			wantNames:  []string{"OPENOBJ", "STR", "COLON", "WS", "NUM", "COMMA", "WS", "STR", "COLON", "WS", "STR", "CLOSEOBJ"},
		},
		"flat array": {
			givenInput: `[true, false, null]`,
			wantNames:  []string{"OPENARR", "TRUE", "COMMA", "WS", "FALSE", "COMMA", "WS", "NULL", "CLOSEARR"},
		},
		"nested objects and arrays": {
			givenInput: "{\"a\": [{}, []],\n\t\"b\": {\"c\": [1]}}",
			wantNames: []string{
				"OPENOBJ", "STR", "COLON", "WS", "OPENARR", "OPENOBJ", "CLOSEOBJ", "COMMA", "WS", "OPENARR", "CLOSEARR", "CLOSEARR", "COMMA", "WS",
				"STR", "COLON", "WS", "OPENOBJ", "STR", "COLON", "WS", "OPENARR", "NUM", "CLOSEARR", "CLOSEOBJ", "CLOSEOBJ",
			},
		},
		"signed and fractional": {
			givenInput: "123.45, -0.5, +1.25",
			wantNames:  []string{"NUM", "COMMA", "WS", "NUM", "COMMA", "WS", "NUM"},
		},
		"exponents": {
			givenInput: "1e5 2.5E-3",
			wantNames:  []string{"NUM", "WS", "NUM"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.wantNames, lang.Names(lex(t, tc.givenInput))); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumberToken(t *testing.T) {
	var got []float64
	var literals []string
	for _, tok := range lex(t, "123.45, -0.5, +1.25, 7, 2e3") {
		if n, ok := tok.(*NumberToken); ok {
			got = append(got, n.Float64())
			literals = append(literals, n.Literal)
		}
	}
	if diff := cmp.Diff([]float64{123.45, -0.5, 1.25, 7, 2000}, got); diff != "" {
		t.Errorf("values: got diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"123.45", "-0.5", "1.25", "7", "2e3"}, literals); diff != "" {
		t.Errorf("literals: got diff (-want +got):\n%s", diff)
	}
}

func TestStringToken(t *testing.T) {
	tests := map[string]struct {
		givenInput string
		wantValue  string
		wantParts  int
	}{
		"plain": {
			givenInput: `"hello world"`,
			wantValue:  "hello world",
			wantParts:  1,
		},
		"empty": {
			givenInput: `""`,
			wantValue:  "",
		},
		"escaped chars": {
			givenInput: `"before\t\"after\"\r\n"`,
			wantValue:  "before\t\"after\"\r\n",
			wantParts:  7,
		},
		"utf16 escapes": {
			givenInput: `"\u0041,B,C,\u0044"`,
			wantValue:  "A,B,C,D",
			wantParts:  3,
		},
		"surrogate pair": {
			givenInput: `"\ud83d\ude00!"`,
			wantValue:  "\U0001F600!",
			wantParts:  3,
		},
		"solidus and backslash": {
			givenInput: `"a\/b\\c"`,
			wantValue:  `a/b\c`,
			wantParts:  5,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tokens := lex(t, tc.givenInput)
			if len(tokens) != 1 {
				t.Fatalf("want 1 token, got %d", len(tokens))
			}
			s, ok := tokens[0].(*StringToken)
			if !ok {
				t.Fatalf("want a *StringToken, got %T", tokens[0])
			}
			if diff := cmp.Diff(tc.wantValue, s.Value); diff != "" {
				t.Errorf("value: got diff (-want +got):\n%s", diff)
			}
			if got := len(s.Parts); got != tc.wantParts {
				t.Errorf("want %d parts, got %d", tc.wantParts, got)
			}
		})
	}
}

func TestLexiconUnexpectedCharacter(t *testing.T) {
	lexer := lang.LexicalAnalysis{Grammar: NewLexicon()}
	tokens, msgs, err := lexer.Lex(lang.NewSource("test.json", `{"a": @}`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"OPENOBJ", "STR", "COLON", "WS"}, lang.Names(tokens)); diff != "" {
		t.Errorf("tokens: got diff (-want +got):\n%s", diff)
	}
	if len(msgs) != 1 {
		t.Fatalf("want 1 message, got %v", msgs)
	}
	if msgs[0].Level != grammar.Error {
		t.Errorf("want an error, got %s", msgs[0].Level)
	}
	if diff := cmp.Diff(lang.Location{File: "test.json", Line: 1, Column: 7}, msgs[0].Location); diff != "" {
		t.Errorf("location: got diff (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		givenInput string
		want       Value
	}{
		"number": {
			givenInput: "123",
			want:       Number{Literal: "123", Float64: 123},
		},
		"string": {
			givenInput: `"abc"`,
			want:       String{Value: "abc"},
		},
		"null": {
			givenInput: " null ",
			want:       Null{},
		},
		"empty array": {
			givenInput: "[]",
			want:       Array{Items: []Value{}},
		},
		"single item": {
			givenInput: "[123]",
			want:       Array{Items: []Value{Number{Literal: "123", Float64: 123}}},
		},
		"two items": {
			givenInput: "[123,true]",
			want:       Array{Items: []Value{Number{Literal: "123", Float64: 123}, Boolean{Value: true}}},
		},
		"empty object": {
			givenInput: "{}",
			want:       Object{Properties: []Property{}},
		},
		"single property": {
			givenInput: `{"num":123}`,
			want:       Object{Properties: []Property{{Name: "num", Value: Number{Literal: "123", Float64: 123}}}},
		},
		"nested empty array": {
			givenInput: "[[]]",
			want:       Array{Items: []Value{Array{Items: []Value{}}}},
		},
		"nested arrays": {
			givenInput: "[11,[22,33],44]",
			want: Array{Items: []Value{
				Number{Literal: "11", Float64: 11},
				Array{Items: []Value{Number{Literal: "22", Float64: 22}, Number{Literal: "33", Float64: 33}}},
				Number{Literal: "44", Float64: 44},
			}},
		},
		"object in array": {
			givenInput: `[{"a": false, "b": [null]}]`,
			want: Array{Items: []Value{Object{Properties: []Property{
				{Name: "a", Value: Boolean{Value: false}},
				{Name: "b", Value: Array{Items: []Value{Null{}}}},
			}}}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, parse(t, tc.givenInput)); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDeepNesting(t *testing.T) {
	const depth = 50

	tests := map[string]struct {
		givenInput string
		wantLeaf   Value
	}{
		"arrays": {
			givenInput: strings.Repeat("[", depth) + "1" + strings.Repeat("]", depth),
			wantLeaf:   Number{Literal: "1", Float64: 1},
		},
		"objects": {
			givenInput: strings.Repeat(`{"a": `, depth) + "true" + strings.Repeat("}", depth),
			wantLeaf:   Boolean{Value: true},
		},
		"mixed with siblings": {
			givenInput: strings.Repeat(`[0, {"a": `, depth) + "null" + strings.Repeat("}, 2]", depth),
			wantLeaf:   Null{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, containers := leafOf(parse(t, tc.givenInput))
			if containers < depth {
				t.Errorf("want at least %d levels, got %d", depth, containers)
			}
			if diff := cmp.Diff(tc.wantLeaf, v); diff != "" {
				t.Errorf("leaf: got diff (-want +got):\n%s", diff)
			}
		})
	}
}

// leafOf descends through the second item of arrays, or their only one, and
// the first property of objects down to a scalar. It counts the containers
// on the way.
func leafOf(v Value) (Value, int) {
	for n := 0; ; n++ {
		switch c := v.(type) {
		case Array:
			v = c.Items[min(1, len(c.Items)-1)]
		case Object:
			v = c.Properties[0].Value
		default:
			return v, n
		}
	}
}

func TestParseSyntaxNodes(t *testing.T) {
	res, err := NewAnalysis(nil).Run(lang.NewSource("test.json", `{"a": [1, "x"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected messages: %v", res.Messages)
	}

	obj, ok := res.Node.(*ObjectSyntax)
	if !ok {
		t.Fatalf("want an *ObjectSyntax, got %T", res.Node)
	}
	if len(obj.Properties) != 1 {
		t.Fatalf("want 1 property, got %d", len(obj.Properties))
	}
	prop := obj.Properties[0]
	arr, ok := prop.Value.(*ArraySyntax)
	if !ok {
		t.Fatalf("want an *ArraySyntax, got %T", prop.Value)
	}
	if len(arr.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(arr.Items))
	}

	got := []string{
		obj.Span().Text(),
		prop.Name.Value,
		prop.Span().Text(),
		arr.Items[0].Span().Text(),
		arr.Items[1].Span().Text(),
	}
	want := []string{`{"a": [1, "x"]}`, "a", `"a": [1, "x"]`, "1", `"x"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("got diff (-want +got):\n%s", diff)
	}
}

// The leaves of a syntax tree are the tokens of the input in order.
func TestSyntaxLeavesRoundTrip(t *testing.T) {
	tests := map[string]string{
		"scalar":        " 42 ",
		"flat array":    "[1, true, null]",
		"flat object":   `{"a": 1, "b": "x"}`,
		"nested":        "{\"a\": [{}, []],\n\t\"b\": {\"c\": [1, [2, 3]]}}",
		"empty strings": `["", {"": ""}]`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := NewAnalysis(nil).Run(lang.NewSource("test.json", input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.HasErrors() {
				t.Fatalf("unexpected messages: %v", res.Messages)
			}

			var got strings.Builder
			lang.Walk(res.Node, func(n lang.SyntaxNode) bool {
				if ts, ok := n.(*lang.TokenSyntax); ok {
					got.WriteString(ts.Token.Span().Text())
				}
				return true
			})

			want := strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return -1
				}
				return r
			}, input)
			if diff := cmp.Diff(want, got.String()); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("trailing token", func(t *testing.T) {
		v, res, err := Parse(lang.NewSource("test.json", "1 2"), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != nil {
			t.Errorf("want no value, got %v", v)
		}
		want := []lang.Message{{
			Location: lang.Location{File: "test.json", Line: 1, Column: 3},
			Level:    grammar.Error,
			Code:     "LL002",
			Text:     "Unexpected token: '2'",
		}}
		if diff := cmp.Diff(want, res.Messages); diff != "" {
			t.Errorf("got diff (-want +got):\n%s", diff)
		}
	})

	for name, input := range map[string]string{
		"trailing comma":  "[1,]",
		"missing comma":   "[1 2]",
		"missing colon":   `{"a" 1}`,
		"unclosed object": `{"a": 1`,
		"bad character":   "[1, ?]",
	} {
		t.Run(name, func(t *testing.T) {
			v, res, err := Parse(lang.NewSource("test.json", input), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != nil {
				t.Errorf("want no value, got %v", v)
			}
			if !res.HasErrors() {
				t.Errorf("want errors")
			}
		})
	}
}

func TestObjectGet(t *testing.T) {
	obj, ok := parse(t, `{"a": 1, "b": 2, "a": 3}`).(Object)
	if !ok {
		t.Fatal("want an Object")
	}

	v, ok := obj.Get("a")
	if !ok {
		t.Fatal("want property a")
	}
	if diff := cmp.Diff(Value(Number{Literal: "3", Float64: 3}), v); diff != "" {
		t.Errorf("got diff (-want +got):\n%s", diff)
	}
	if _, ok := obj.Get("c"); ok {
		t.Errorf("want no property c")
	}
}

func TestEncode(t *testing.T) {
	tests := map[string]struct {
		givenInput  string
		givenFormat Format
		want        string
	}{
		"json": {
			givenInput:  `{"a": [1, {"b": null}], "c": "x\ty", "d": 1.5e3}`,
			givenFormat: FormatJSON,
			want: `{
  "a": [
    1,
    {
      "b": null
    }
  ],
  "c": "x\ty",
  "d": 1.5e3
}
`,
		},
		"xml": {
			givenInput:  `{"a": [1, true], "b": "x<y", "c": null}`,
			givenFormat: FormatXML,
			want: `<object>
  <property name="a">
    <array>
      <number>1</number>
      <boolean>true</boolean>
    </array>
  </property>
  <property name="b">
    <string>x&lt;y</string>
  </property>
  <property name="c">
    <null></null>
  </property>
</object>
`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, parse(t, tc.givenInput), tc.givenFormat); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	v := parse(t, `{"z": [1, {"b": null}], "c": "x", "t": "true", "f": 0.25}`)

	var buf bytes.Buffer
	if err := Encode(&buf, v, FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"z": []any{1, map[string]any{"b": nil}},
		"c": "x",
		"t": "true",
		"f": 0.25,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("got diff (-want +got):\n%s", diff)
	}

	out := buf.String()
	if strings.Index(out, "z:") > strings.Index(out, "c:") {
		t.Errorf("properties out of order:\n%s", out)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Null{}, Format("toml")); err == nil {
		t.Errorf("want an error")
	}
}
