package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/vedit/internal/log"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
)

// settable lists the dotted keys accepted by SetValue.
var settable = map[string]valueKind{
	"editor.tab_width":   kindInt,
	"editor.kill_key":    kindString,
	"editor.undo_levels": kindInt,
	"ui.show_status_bar": kindBool,
	"ui.highlight":       kindBool,
	"ui.theme":           kindString,
	"watch":              kindBool,
	"log.path":           kindString,
	"log.level":          kindString,
}

// Keys returns the dotted keys accepted by SetValue.
func Keys() []string {
	out := make([]string, 0, len(settable))
	for k := range settable {
		out = append(out, k)
	}
	return out
}

// SetValue updates a single dotted key (e.g. "ui.theme") in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
// The file is created if it does not exist.
func SetValue(configPath, key, value string) error {
	kind, ok := settable[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	scalar, err := scalarNode(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	setPath(root, strings.Split(key, "."), scalar)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}

	log.Info(log.CatConfig, "Updated config", "path", configPath, "key", key, "value", value)
	return nil
}

func scalarNode(kind valueKind, value string) (*yaml.Node, error) {
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q", value)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", value)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}, nil
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}, nil
	}
}

// setPath walks or creates nested mappings under node and stores value at
// the last path element. An existing scalar keeps its comments.
func setPath(node *yaml.Node, path []string, value *yaml.Node) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value != path[0] {
			continue
		}
		child := node.Content[i+1]
		if len(path) == 1 {
			if child.Kind == yaml.ScalarNode {
				child.Tag = value.Tag
				child.Value = value.Value
				child.Style = 0
			} else {
				node.Content[i+1] = value
			}
			return
		}
		if child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode}
			node.Content[i+1] = child
		}
		setPath(child, path[1:], value)
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: path[0]}
	if len(path) == 1 {
		node.Content = append(node.Content, keyNode, value)
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, keyNode, child)
	setPath(child, path[1:], value)
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vedit.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
