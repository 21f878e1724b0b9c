package yamlstore

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/laydown/internal/model"
)

// Header is written above every record so a human editing the file keeps its shape.
const Header = "# Do not rename or delete lists. Only update elements.\n"

// requiredFields lists the top-level keys in declaration order.
var requiredFields = []string{"did", "doing", "blockers", "sidebars", "history"}

// Encode renders s as an indented YAML document preceded by Header.
func Encode(s model.Standup) ([]byte, error) {
	s.Normalize()

	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a document produced by Encode or edited by hand.
//
// Failures are ErrEmptyInput or a *ParseError whose Kind tells the caller
// whether the content is recoverable.
func Decode(data []byte) (model.Standup, error) {
	root, err := parseRoot(data)
	if err != nil {
		return model.Standup{}, err
	}

	if err := checkFields(root); err != nil {
		return model.Standup{}, err
	}

	var s model.Standup
	if err := root.Decode(&s); err != nil {
		return model.Standup{}, &ParseError{Kind: KindSyntax, Line: root.Line, Err: err}
	}
	for i, h := range s.History {
		if !h.Category.Valid() {
			return model.Standup{}, &ParseError{
				Kind:  KindInvalidValue,
				Field: "history",
				Msg:   fmt.Sprintf("history entry %d: unknown category %q", i+1, string(h.Category)),
			}
		}
	}
	s.Normalize()
	return s, nil
}

// parseRoot returns the top-level mapping node of data.
func parseRoot(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Kind: KindSyntax, Err: err}
	}
	// A file with only comments parses to an empty document.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, ErrEmptyInput
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" && root.Value == "" {
		return nil, ErrEmptyInput
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Kind: KindExpectedStruct,
			Line: root.Line,
			Msg:  fmt.Sprintf("expected a mapping, found %s", nodeKind(root)),
		}
	}
	return root, nil
}

func checkFields(root *yaml.Node) error {
	present := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		present[root.Content[i].Value] = true
	}
	for _, f := range requiredFields {
		if !present[f] {
			return &ParseError{
				Kind:  KindMissingField,
				Field: f,
				Line:  root.Line,
				Msg:   fmt.Sprintf("missing field %q", f),
			}
		}
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	}
	return "an unknown node"
}
