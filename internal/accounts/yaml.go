package accounts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kontor-dev/kontor/internal/apperrors"
)

// ParseYAML reads an account tree. Mapping keys are accounts, their values are
// the sub-accounts as a mapping, a sequence or nothing:
//
//	Income:
//	  - Sales
//	  - Consulting
//	Expenses:
//	  Office:
//	    - Supplies
//	  Travel:
//
// Document order is kept.
func ParseYAML(r io.Reader) ([]Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding account tree: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return parseChildren(doc.Content[0])
}

func parseChildren(n *yaml.Node) ([]Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		var nodes []Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			name, err := scalarName(n.Content[i])
			if err != nil {
				return nil, err
			}
			children, err := parseChildren(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			nodes = append(nodes, Node{Name: name, Children: children})
		}
		return nodes, nil

	case yaml.SequenceNode:
		var nodes []Node
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode {
				name, err := scalarName(item)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, Node{Name: name})
				continue
			}
			sub, err := parseChildren(item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, sub...)
		}
		return nodes, nil

	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		name, err := scalarName(n)
		if err != nil {
			return nil, err
		}
		return []Node{{Name: name}}, nil

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node: %w", n.Line, apperrors.ErrValidation)
	}
}

func scalarName(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", fmt.Errorf("line %d: account name %q must be a string: %w", n.Line, n.Value, apperrors.ErrValidation)
	}
	if err := ValidateName(n.Value); err != nil {
		return "", fmt.Errorf("line %d: %w", n.Line, err)
	}
	return n.Value, nil
}

// ImportYAML reads an account tree and creates the missing accounts in one transaction.
func (s *Service) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	nodes, err := ParseYAML(r)
	if err != nil {
		return 0, err
	}
	return s.Seed(ctx, nodes)
}
