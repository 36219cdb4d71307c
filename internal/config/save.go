package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/reltime/internal/log"
)

// SaveOptions writes every set field of o into the config file, leaving
// unrelated keys and comments untouched. The file is created if missing.
func SaveOptions(configPath string, o Options) error {
	if err := Validate(o); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user-supplied config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	updates := []struct {
		key   string
		value any
		set   bool
	}{
		{KeyLocales, o.Locales, len(o.Locales) > 0},
		{KeyStyle, o.Style, o.Style != nil},
		{KeyNumeric, o.Numeric, o.Numeric != nil},
		{KeyAllowFuture, o.AllowFuture, o.AllowFuture != nil},
		{KeyHideSeconds, o.HideSeconds, o.HideSeconds != nil},
		{KeyHideSecondsPast, o.HideSecondsText.Past, o.HideSecondsText.Past != nil},
		{KeyHideSecondsFuture, o.HideSecondsText.Future, o.HideSecondsText.Future != nil},
		{KeyRoundStrategy, o.RoundStrategy, o.RoundStrategy != nil},
		{KeyTimeElement, o.TimeElement, o.TimeElement != nil},
	}
	for _, u := range updates {
		if !u.set {
			continue
		}
		var value yaml.Node
		if err := value.Encode(u.value); err != nil {
			return fmt.Errorf("encoding %s: %w", u.key, err)
		}
		if value.Kind == yaml.SequenceNode {
			value.Style = yaml.FlowStyle
		}
		setPath(root, strings.Split(u.key, "."), &value)
		log.Debug(log.CatConfig, "Updated config key", "key", u.key)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setPath replaces or appends the value at path inside a mapping node,
// creating intermediate mappings as needed.
func setPath(m *yaml.Node, path []string, value *yaml.Node) {
	key := path[0]
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		if len(path) == 1 {
			// Keep the line comment attached to the old value.
			value.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = value
			return
		}
		child := m.Content[i+1]
		if child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode}
			m.Content[i+1] = child
		}
		setPath(child, path[1:], value)
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
	if len(path) == 1 {
		m.Content = append(m.Content, keyNode, value)
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, keyNode, child)
	setPath(child, path[1:], value)
}

// writeAtomic writes to a temp file in the same directory and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".reltime.yaml.tmp.*")
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

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
