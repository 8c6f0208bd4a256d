package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

// Width is a key width in key units. Table files may write it as a number
// (1.25) or as a rational string ("5/4").
type Width float64

func parseWidth(s string) (Width, error) {
	s = strings.TrimSpace(s)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fmt.Errorf("invalid key width %q", s)
	}
	f, _ := r.Float64()
	return Width(f), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Width) UnmarshalText(text []byte) error {
	v, err := parseWidth(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (w *Width) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return w.UnmarshalText([]byte(s))
	}
	return w.UnmarshalText(data)
}

// UnmarshalYAML accepts both YAML numbers and strings.
func (w *Width) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: key width must be a scalar", node.Line)
	}
	return w.UnmarshalText([]byte(node.Value))
}
