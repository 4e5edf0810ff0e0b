package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveBindings updates the bindings configuration in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveBindings(configPath string, bindings []BindingConfig) error {
	// Read existing file content
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

	// Build the new bindings node
	bindingsNode, err := buildBindingsNode(bindings)
	if err != nil {
		return fmt.Errorf("building bindings node: %w", err)
	}

	// Update or create the bindings section
	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "bindings"},
						bindingsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace bindings key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "bindings" {
					root.Content[i+1] = bindingsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "bindings"},
					bindingsNode,
				)
			}
		}
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".plume.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
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

// buildBindingsNode creates a yaml.Node representing the bindings array.
// Modifier keys are only written when set so saved bindings read the way
// users write them by hand.
func buildBindingsNode(bindings []BindingConfig) (*yaml.Node, error) {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(bindings)),
	}

	for _, b := range bindings {
		bindingNode := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0),
		}

		// Always include key
		bindingNode.Content = append(bindingNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "key"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: b.Key},
		)

		if b.Mod {
			bindingNode.Content = append(bindingNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "mod"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: "true"},
			)
		}
		if b.Shift {
			bindingNode.Content = append(bindingNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "shift"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: "true"},
			)
		}
		if b.Alt {
			bindingNode.Content = append(bindingNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "alt"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: "true"},
			)
		}

		// Always include command
		bindingNode.Content = append(bindingNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "command"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: b.Command},
		)

		if len(b.Args) > 0 {
			argsNode := &yaml.Node{}
			if err := argsNode.Encode(b.Args); err != nil {
				return nil, fmt.Errorf("encoding binding args: %w", err)
			}
			bindingNode.Content = append(bindingNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "args"},
				argsNode,
			)
		}

		node.Content = append(node.Content, bindingNode)
	}

	return node, nil
}

// UpdateBinding replaces a single binding in the config and saves.
func UpdateBinding(configPath string, index int, newBinding BindingConfig, allBindings []BindingConfig) error {
	if index < 0 || index >= len(allBindings) {
		return fmt.Errorf("binding index %d out of range (have %d bindings)", index, len(allBindings))
	}

	// Create copy and update
	updated := make([]BindingConfig, len(allBindings))
	copy(updated, allBindings)
	updated[index] = newBinding

	return SaveBindings(configPath, updated)
}

// DeleteBinding removes a binding from the config and saves.
// Deleting the last binding is allowed - the keymap defaults still apply.
func DeleteBinding(configPath string, index int, allBindings []BindingConfig) error {
	if index < 0 || index >= len(allBindings) {
		return fmt.Errorf("binding index %d out of range (have %d bindings)", index, len(allBindings))
	}

	// Create new slice without the deleted binding
	updated := make([]BindingConfig, 0, len(allBindings)-1)
	for i, b := range allBindings {
		if i != index {
			updated = append(updated, b)
		}
	}

	return SaveBindings(configPath, updated)
}

// SwapBindings swaps two bindings by index and saves the config.
// Binding order is significant: resolution is first-match-wins.
func SwapBindings(configPath string, idxA, idxB int, allBindings []BindingConfig) error {
	if idxA < 0 || idxA >= len(allBindings) || idxB < 0 || idxB >= len(allBindings) {
		return fmt.Errorf("binding index out of range")
	}
	if idxA == idxB {
		return nil // No-op
	}

	updated := make([]BindingConfig, len(allBindings))
	copy(updated, allBindings)
	updated[idxA], updated[idxB] = updated[idxB], updated[idxA]

	return SaveBindings(configPath, updated)
}

// InsertBinding inserts a new binding at the specified position and saves.
// Position 0 inserts at the beginning of the binding list.
func InsertBinding(configPath string, position int, newBinding BindingConfig, allBindings []BindingConfig) error {
	// Validate position (0 to len(allBindings) inclusive)
	if position < 0 || position > len(allBindings) {
		return fmt.Errorf("position %d out of range (valid: 0 to %d)", position, len(allBindings))
	}

	// Create new slice with space for the new binding
	updated := make([]BindingConfig, 0, len(allBindings)+1)

	for i, b := range allBindings {
		if i == position {
			updated = append(updated, newBinding)
		}
		updated = append(updated, b)
	}

	// Handle insertion at the end
	if position == len(allBindings) {
		updated = append(updated, newBinding)
	}

	return SaveBindings(configPath, updated)
}
