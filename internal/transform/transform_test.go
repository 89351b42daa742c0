package transform

import (
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPipelineUnmarshal(t *testing.T) {
	doc := `
- !Zero
- !Pad {padding: 2}
- ToTensor
- !Normalize {mean: [0.1307], std: [0.3081]}
- !RandomCrop {size: 32, padding: 4}
- !RandomHorizontalFlip
- !Resize {size: 28}
- !CenterCrop {size: 24}
`
	var p Pipeline
	if err := yaml.Unmarshal([]byte(doc), &p); err != nil {
		t.Fatalf("Failed to unmarshal pipeline: %v", err)
	}

	want := Pipeline{
		Zero{},
		Pad{Padding: 2},
		ToTensor{},
		Normalize{Mean: []float64{0.1307}, Std: []float64{0.3081}},
		RandomCrop{Size: 32, Padding: 4},
		RandomHorizontalFlip{},
		Resize{Size: 28},
		CenterCrop{Size: 24},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Expected %+v, got %+v", want, p)
	}
}

func TestPipelinePreservesOrder(t *testing.T) {
	doc := `
- !Normalize {mean: [0.5], std: [0.5]}
- !Pad {padding: 1}
- !Zero
`
	var p Pipeline
	if err := yaml.Unmarshal([]byte(doc), &p); err != nil {
		t.Fatalf("Failed to unmarshal pipeline: %v", err)
	}

	want := []string{"Normalize", "Pad", "Zero"}
	if !reflect.DeepEqual(p.Kinds(), want) {
		t.Errorf("Expected order %v, got %v", want, p.Kinds())
	}
}

func TestPipelineUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		errorMsg string
	}{
		{
			name:     "unknown kind",
			doc:      "- !Blur {radius: 3}",
			errorMsg: "unknown transform kind \"Blur\"",
		},
		{
			name:     "not a sequence",
			doc:      "padding: 2",
			errorMsg: "must be a sequence",
		},
		{
			name:     "untagged mapping entry",
			doc:      "- {padding: 2}",
			errorMsg: "must be a tagged node or a kind name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pipeline
			err := yaml.Unmarshal([]byte(tt.doc), &p)
			if err == nil {
				t.Fatalf("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error to contain %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestPipelineMarshalRoundTrip(t *testing.T) {
	original := Pipeline{
		Zero{},
		Pad{Padding: 2},
		ToTensor{},
		Normalize{Mean: []float64{0.1307}, Std: []float64{0.3081}},
	}

	data, err := yaml.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal pipeline: %v", err)
	}

	var reloaded Pipeline
	if err := yaml.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("Failed to unmarshal marshaled pipeline: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(original, reloaded) {
		t.Errorf("Round trip changed pipeline.\noriginal: %+v\nreloaded: %+v\nencoded:\n%s", original, reloaded, data)
	}
}

func TestSpecValidation(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		valid    bool
		errorMsg string
	}{
		{name: "zero", spec: Zero{}, valid: true},
		{name: "valid pad", spec: Pad{Padding: 2}, valid: true},
		{name: "negative pad", spec: Pad{Padding: -1}, valid: false, errorMsg: "padding must be non-negative"},
		{name: "valid normalize", spec: Normalize{Mean: []float64{0.5}, Std: []float64{0.5}}, valid: true},
		{name: "empty mean", spec: Normalize{}, valid: false, errorMsg: "mean cannot be empty"},
		{
			name:     "mismatched mean and std",
			spec:     Normalize{Mean: []float64{0.5, 0.5}, Std: []float64{0.5}},
			valid:    false,
			errorMsg: "same length",
		},
		{
			name:     "zero std",
			spec:     Normalize{Mean: []float64{0.5}, Std: []float64{0}},
			valid:    false,
			errorMsg: "std[0] must be positive",
		},
		{name: "zero resize", spec: Resize{}, valid: false, errorMsg: "size must be at least 1"},
		{name: "valid random crop", spec: RandomCrop{Size: 32, Padding: 4}, valid: true},
		{name: "flip probability above 1", spec: RandomHorizontalFlip{P: 1.5}, valid: false, errorMsg: "between 0 and 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid spec but got error: %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Errorf("Expected invalid spec but got no error")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain %q, got %q", tt.errorMsg, err.Error())
				}
			}
		})
	}
}

func TestPipelineValidateNamesPosition(t *testing.T) {
	p := Pipeline{Zero{}, Pad{Padding: -3}}
	err := p.Validate()
	if err == nil {
		t.Fatalf("Expected error but got none")
	}
	if !strings.Contains(err.Error(), "transforms[1] (Pad)") {
		t.Errorf("Expected error to name the offending position, got %q", err.Error())
	}
}
