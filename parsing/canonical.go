package parsing

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"gopkg.in/yaml.v3"
)

// Canonicalize re-serializes a YAML or JSON document so that documents which are equal
// apart from key order, comments, anchors or formatting produce identical bytes.
// Mapping keys are sorted recursively, aliases are expanded and the result is block
// style YAML indented with 2 spaces. Canonicalize(Canonicalize(x)) == Canonicalize(x).
func Canonicalize(content []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse as YAML or JSON: %s", err.Error())
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	root, err := canonicalNode(doc.Content[0], 0)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(nil)
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode canonical YAML: %s", err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush canonical YAML: %s", err.Error())
	}

	return buf.Bytes(), nil
}

// maxAliasDepth bounds alias expansion
const maxAliasDepth = 64

// canonicalNode returns a copy of n without comments, styles or aliases, with mapping keys sorted
func canonicalNode(n *yaml.Node, depth int) (*yaml.Node, error) {
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("document nests too deeply")
	}

	switch n.Kind {
	case yaml.AliasNode:
		return canonicalNode(n.Alias, depth+1)

	case yaml.MappingNode:
		type pair struct {
			key   *yaml.Node
			value *yaml.Node
		}

		pairs := []pair{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := canonicalNode(n.Content[i], depth+1)
			if err != nil {
				return nil, err
			}
			value, err := canonicalNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, pair{key: key, value: value})
		}

		sort.SliceStable(pairs, func(i, j int) bool {
			return pairs[i].key.Value < pairs[j].key.Value
		})

		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range pairs {
			out.Content = append(out.Content, p.key, p.value)
		}

		return out, nil

	case yaml.SequenceNode:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Content {
			c, err := canonicalNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, c)
		}

		return out, nil

	case yaml.ScalarNode:
		return canonicalScalar(n), nil

	default:
		return nil, fmt.Errorf("unexpected YAML node kind %d", n.Kind)
	}
}

// yaml11Bools are the plain scalars YAML 1.1 reads as booleans. Config schemas are
// validated with YAML 1.1 rules, so these are written as true or false.
var yaml11Bools = map[string]string{
	"y": "true", "Y": "true", "yes": "true", "Yes": "true", "YES": "true",
	"true": "true", "True": "true", "TRUE": "true",
	"on": "true", "On": "true", "ON": "true",
	"n": "false", "N": "false", "no": "false", "No": "false", "NO": "false",
	"false": "false", "False": "false", "FALSE": "false",
	"off": "false", "Off": "false", "OFF": "false",
}

// canonicalScalar returns a copy of n in a single spelling per value. Nulls become null,
// booleans true or false and integers decimal. Other scalars keep their text, which
// keeps floats and big integers intact.
func canonicalScalar(n *yaml.Node) *yaml.Node {
	plain := n.Style&(yaml.TaggedStyle|yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|
		yaml.LiteralStyle|yaml.FoldedStyle) == 0

	if plain {
		if b, ok := yaml11Bools[n.Value]; ok {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: b}
		}
	}

	switch n.ShortTag() {
	case "!!null":
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}

	case "!!int":
		if i, ok := new(big.Int).SetString(n.Value, 0); ok {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: i.String()}
		}

	case "!!str":
		// Strings keep their tag so the encoder quotes values like "123" or "true"
		// which would otherwise be read back as another type
		out := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Value}
		if _, ok := yaml11Bools[n.Value]; ok {
			out.Style = yaml.DoubleQuotedStyle
		}
		return out
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Value: n.Value}
}
