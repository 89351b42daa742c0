package transform

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is a single preprocessing step. Concrete kinds carry their own
// parameter records so downstream code can switch on the type instead of
// dispatching on string tags.
type Spec interface {
	// Kind returns the tag name the transform is written as in a document.
	Kind() string

	// Validate checks the transform's parameters.
	Validate() error
}

// Zero zeroes out the sample. Takes no parameters.
type Zero struct{}

func (Zero) Kind() string    { return "Zero" }
func (Zero) Validate() error { return nil }

// Pad pads the sample on all sides.
type Pad struct {
	Padding int `yaml:"padding"`
}

func (Pad) Kind() string { return "Pad" }

func (t Pad) Validate() error {
	if t.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", t.Padding)
	}
	return nil
}

// ToTensor converts the sample to tensor form. Takes no parameters.
type ToTensor struct{}

func (ToTensor) Kind() string    { return "ToTensor" }
func (ToTensor) Validate() error { return nil }

// Normalize standardizes the sample channel-wise.
type Normalize struct {
	Mean []float64 `yaml:"mean"`
	Std  []float64 `yaml:"std"`
}

func (Normalize) Kind() string { return "Normalize" }

func (t Normalize) Validate() error {
	if len(t.Mean) == 0 {
		return fmt.Errorf("mean cannot be empty")
	}
	if len(t.Std) != len(t.Mean) {
		return fmt.Errorf("mean and std must have the same length, got %d and %d", len(t.Mean), len(t.Std))
	}
	for i, s := range t.Std {
		if s <= 0 {
			return fmt.Errorf("std[%d] must be positive, got %v", i, s)
		}
	}
	return nil
}

// Resize scales the sample to size x size.
type Resize struct {
	Size int `yaml:"size"`
}

func (Resize) Kind() string { return "Resize" }

func (t Resize) Validate() error {
	if t.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", t.Size)
	}
	return nil
}

// CenterCrop crops a size x size region from the center of the sample.
type CenterCrop struct {
	Size int `yaml:"size"`
}

func (CenterCrop) Kind() string { return "CenterCrop" }

func (t CenterCrop) Validate() error {
	if t.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", t.Size)
	}
	return nil
}

// RandomCrop crops a size x size region at a random offset, optionally
// padding first.
type RandomCrop struct {
	Size    int `yaml:"size"`
	Padding int `yaml:"padding,omitempty"`
}

func (RandomCrop) Kind() string { return "RandomCrop" }

func (t RandomCrop) Validate() error {
	if t.Size < 1 {
		return fmt.Errorf("size must be at least 1, got %d", t.Size)
	}
	if t.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", t.Padding)
	}
	return nil
}

// RandomHorizontalFlip mirrors the sample horizontally with probability P.
// A zero P means the harness default (0.5).
type RandomHorizontalFlip struct {
	P float64 `yaml:"p,omitempty"`
}

func (RandomHorizontalFlip) Kind() string { return "RandomHorizontalFlip" }

func (t RandomHorizontalFlip) Validate() error {
	if t.P < 0 || t.P > 1 {
		return fmt.Errorf("p must be between 0 and 1, got %v", t.P)
	}
	return nil
}

// Kinds returns the names of all known transform kinds.
func Kinds() []string {
	return []string{
		"Zero", "Pad", "ToTensor", "Normalize",
		"Resize", "CenterCrop", "RandomCrop", "RandomHorizontalFlip",
	}
}

// Pipeline is an ordered sequence of transforms. Application order matters,
// so decoding preserves the document order exactly.
type Pipeline []Spec

// Kinds returns the kind names of the pipeline's transforms in order.
func (p Pipeline) Kinds() []string {
	kinds := make([]string, len(p))
	for i, t := range p {
		kinds[i] = t.Kind()
	}
	return kinds
}

// Validate checks every transform in the pipeline. The returned error names
// the offending position.
func (p Pipeline) Validate() error {
	for i, t := range p {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transforms[%d] (%s): %w", i, t.Kind(), err)
		}
	}
	return nil
}

// UnmarshalYAML decodes a sequence of tagged transform nodes. Each entry is
// either a local-tagged node (!Pad {padding: 2}, !Zero) or, for parameterless
// kinds, a plain scalar (ToTensor).
func (p *Pipeline) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("transforms must be a sequence, got %s", nodeKindName(value.Kind))
	}

	out := make(Pipeline, 0, len(value.Content))
	for i, node := range value.Content {
		spec, err := decodeSpec(node)
		if err != nil {
			return fmt.Errorf("transforms[%d]: %w", i, err)
		}
		out = append(out, spec)
	}

	*p = out
	return nil
}

// MarshalYAML encodes the pipeline back to tagged flow-style nodes so a
// loaded document round-trips.
func (p Pipeline) MarshalYAML() (interface{}, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, t := range p {
		node := &yaml.Node{}
		if err := node.Encode(t); err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.Kind(), err)
		}
		node.Tag = "!" + t.Kind()
		node.Style = yaml.FlowStyle
		seq.Content = append(seq.Content, node)
	}
	return seq, nil
}

// kindOf extracts the transform kind name from a node: the local tag if one
// is present, otherwise the scalar value.
func kindOf(node *yaml.Node) (string, error) {
	if strings.HasPrefix(node.Tag, "!") && !strings.HasPrefix(node.Tag, "!!") {
		return strings.TrimPrefix(node.Tag, "!"), nil
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		return node.Value, nil
	}
	return "", fmt.Errorf("transform entry must be a tagged node or a kind name, got %s", nodeKindName(node.Kind))
}

func decodeSpec(node *yaml.Node) (Spec, error) {
	kind, err := kindOf(node)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "Zero":
		return Zero{}, nil
	case "ToTensor":
		return ToTensor{}, nil
	case "Pad":
		var t Pad
		err = decodeParams(node, &t)
		return t, err
	case "Normalize":
		var t Normalize
		err = decodeParams(node, &t)
		return t, err
	case "Resize":
		var t Resize
		err = decodeParams(node, &t)
		return t, err
	case "CenterCrop":
		var t CenterCrop
		err = decodeParams(node, &t)
		return t, err
	case "RandomCrop":
		var t RandomCrop
		err = decodeParams(node, &t)
		return t, err
	case "RandomHorizontalFlip":
		var t RandomHorizontalFlip
		err = decodeParams(node, &t)
		return t, err
	default:
		return nil, fmt.Errorf("unknown transform kind %q (known: %s)", kind, strings.Join(Kinds(), ", "))
	}
}

// decodeParams decodes a tagged mapping node into the transform's parameter
// struct. Scalar nodes carry no parameters and decode to the zero value.
func decodeParams(node *yaml.Node, into interface{}) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	// Strip the local tag so the decoder treats the node as a plain mapping.
	plain := *node
	plain.Tag = "!!map"
	return plain.Decode(into)
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
