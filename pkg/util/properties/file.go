package properties

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const keySeparator = "."

// ReadFile reads properties from a YAML file. See Unmarshal.
func ReadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	m, err := Unmarshal(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return m, nil
}

// Unmarshal decodes a YAML mapping into properties. Nested mappings are
// flattened by joining the keys with dots, hence the two documents below are
// the same:
//
//	ot.otel.exporter.jaeger.address: localhost:14250
//
//	ot:
//	  otel:
//	    exporter:
//	      jaeger:
//	        address: localhost:14250
//
// Scalars keep their literal text, and null becomes an empty value. Sequences
// and keys that collide after flattening are errors.
func Unmarshal(data []byte) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "properties")
	}

	m := make(Map)
	if doc.Kind == 0 {
		// empty document
		return m, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return m, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("properties: line %d: top level must be a mapping", root.Line)
	}
	if err := flatten(m, "", root); err != nil {
		return nil, err
	}
	return m, nil
}

func flatten(m Map, prefix string, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if len(prefix) > 0 {
			key = prefix + keySeparator + key
		}
		for valueNode.Kind == yaml.AliasNode {
			valueNode = valueNode.Alias
		}

		switch valueNode.Kind {
		case yaml.MappingNode:
			if err := flatten(m, key, valueNode); err != nil {
				return err
			}
		case yaml.ScalarNode:
			if _, ok := m[key]; ok {
				return errors.Errorf("properties: line %d: duplicate key %s", keyNode.Line, key)
			}
			value := valueNode.Value
			if valueNode.ShortTag() == "!!null" {
				value = ""
			}
			m[key] = value
		default:
			return errors.Errorf("properties: line %d: unsupported value for key %s", valueNode.Line, key)
		}
	}
	return nil
}
