package yamlfile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// number writes a decimal as a plain YAML number without float rounding.
type number decimal.Decimal

func (n number) MarshalYAML() (interface{}, error) {
	text := decimal.Decimal(n).String()
	tag := "!!int"
	if strings.ContainsAny(text, ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}, nil
}

func (n *number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("yamlfile: line %d: expected a number", node.Line)
	}
	if node.Tag == "!!null" || node.Value == "" {
		*n = number(decimal.Zero)
		return nil
	}
	parsed, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("yamlfile: line %d: %w", node.Line, err)
	}
	*n = number(parsed)
	return nil
}

func (n number) value() decimal.Decimal { return decimal.Decimal(n) }
