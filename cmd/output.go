package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/minipas/internal/compiler/runtime"
	"github.com/arnavsurve/minipas/internal/config"
)

// writeBindings prints the final store sorted by name.
func writeBindings(w io.Writer, bindings map[string]runtime.Value, format string) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	switch format {
	case config.OutputText:
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "%s = %s\n", name, bindings[name]); err != nil {
				return err
			}
		}
		return nil
	case config.OutputJSON:
		return writeJSON(w, names, bindings)
	case config.OutputYAML:
		return writeYAML(w, names, bindings)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, names []string, bindings map[string]runtime.Value) error {
	object := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		v := bindings[name]
		if r, ok := v.(runtime.Real); ok && (math.IsInf(float64(r), 0) || math.IsNaN(float64(r))) {
			return fmt.Errorf("%s = %s has no JSON representation", name, v)
		}
		object[name] = json.RawMessage(v.String())
	}
	data, err := json.MarshalIndent(object, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeYAML(w io.Writer, names []string, bindings map[string]runtime.Value) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range names {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			yamlValue(bindings[name]))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func yamlValue(v runtime.Value) *yaml.Node {
	switch n := v.(type) {
	case runtime.Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: n.String()}
	case runtime.Real:
		f := float64(n)
		value := n.String()
		switch {
		case math.IsNaN(f):
			value = ".nan"
		case math.IsInf(f, 1):
			value = ".inf"
		case math.IsInf(f, -1):
			value = "-.inf"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value}
	default:
		panic(fmt.Sprintf("cmd: unknown value type %T", v))
	}
}
