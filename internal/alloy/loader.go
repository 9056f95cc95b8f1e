package alloy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/steelcct/internal/chem"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Spec is an alloy definition as found in an alloy file, before validation
type Spec struct {
	Name        string
	GrainSize   float64 // ASTM grain size
	Composition chem.Composition
}

// fileSpec is the JSON and YAML form of a Spec. The composition is read
// as a symbol map so unknown elements are reported instead of dropped.
type fileSpec struct {
	Name        string             `json:"name" yaml:"name"`
	GrainSize   float64            `json:"gs" yaml:"gs"`
	Composition map[string]float64 `json:"composition" yaml:"composition"`
}

func (f fileSpec) spec() (Spec, error) {
	c, err := chem.FromMap(f.Composition)
	if err != nil {
		if f.Name != "" {
			return Spec{}, fmt.Errorf("alloy %q: %w", f.Name, err)
		}
		return Spec{}, err
	}
	return Spec{Name: f.Name, GrainSize: f.GrainSize, Composition: c}, nil
}

// Build validates the specification into an Alloy
func (s Spec) Build() (*Alloy, error) {
	a, err := New(s.GrainSize, s.Composition)
	if err != nil {
		if s.Name != "" {
			return nil, fmt.Errorf("alloy %q: %w", s.Name, err)
		}
		return nil, err
	}
	return a, nil
}

// LoadFile loads alloy definitions from a JSON, YAML or INI file.
//
// JSON and YAML files hold either a single alloy or a list of alloys:
//
//	{"name": "1040", "gs": 7, "composition": {"C": 0.4, "Mn": 0.75}}
//
// INI files hold one section per alloy with a "gs" key and one key per
// element symbol:
//
//	[1040]
//	gs = 7
//	C  = 0.4
//	Mn = 0.75
func LoadFile(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var specs []Spec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		specs, err = decodeList(data, json.Unmarshal)
	case ".yaml", ".yml":
		specs, err = decodeList(data, yaml.Unmarshal)
	case ".ini":
		specs, err = decodeINI(data)
	default:
		return nil, fmt.Errorf("unsupported alloy file format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s: no alloy definitions found", path)
	}

	for i := range specs {
		if specs[i].GrainSize == 0 {
			specs[i].GrainSize = DefaultGrainSize
		}
		if e, v, bad := specs[i].Composition.Invalid(); bad {
			return nil, fmt.Errorf("%s: alloy %q: %w", path, specs[i].Name, &CompositionError{Element: e, Value: v})
		}
	}
	return specs, nil
}

// Find returns the spec with the given name. An empty name selects the
// first spec.
func Find(specs []Spec, name string) (Spec, error) {
	if len(specs) == 0 {
		return Spec{}, fmt.Errorf("no alloys defined")
	}
	if name == "" {
		return specs[0], nil
	}
	for _, s := range specs {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("alloy %q not found", name)
}

func decodeList(data []byte, unmarshal func([]byte, any) error) ([]Spec, error) {
	var files []fileSpec
	if err := unmarshal(data, &files); err != nil {
		var f fileSpec
		if err := unmarshal(data, &f); err != nil {
			return nil, err
		}
		files = []fileSpec{f}
	}

	specs := make([]Spec, 0, len(files))
	for _, f := range files {
		s, err := f.spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func decodeINI(data []byte) ([]Spec, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	var specs []Spec
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		s := Spec{
			Name:      section.Name(),
			GrainSize: section.Key("gs").MustFloat64(DefaultGrainSize),
		}
		for _, key := range section.Keys() {
			if strings.EqualFold(key.Name(), "gs") {
				continue
			}
			e, ok := chem.ParseElement(key.Name())
			if !ok {
				return nil, fmt.Errorf("section [%s]: %w %q", section.Name(), chem.ErrUnknownElement, key.Name())
			}
			v, err := key.Float64()
			if err != nil {
				return nil, fmt.Errorf("section [%s]: %s: %w", section.Name(), key.Name(), err)
			}
			s.Composition = s.Composition.With(e, v)
		}
		specs = append(specs, s)
	}
	return specs, nil
}
