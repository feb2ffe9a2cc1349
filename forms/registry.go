// Package forms holds the named rule sets the service validates against.
//
// Forms are declared in a YAML file:
//
//	forms:
//	  register:
//	    rules:
//	      email: required|email|unique:users,email
//	      password: secure
//	    messages:
//	      required: "Please fill in the %s."
//	      email:
//	        unique: "That email is already registered."
//
// Rules keep the order of the file. A malformed rule fails the whole load.
package forms

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/fretelweb/go-validator/framework/validation"
)

var (
	ErrNoForms     = errors.New("forms: no forms defined")
	ErrUnknownForm = errors.New("forms: unknown form")
)

// Form is one named rule set with its message overrides.
type Form struct {
	Name     string               `yaml:"-"`
	Rules    validation.RuleSet   `yaml:"rules"`
	Messages validation.Overrides `yaml:"messages"`
}

// Validator builds a validator for one submission of the form.
func (f *Form) Validator(data validation.Data, opts ...validation.Option) *validation.Validator {
	all := append(f.Messages.Options(), opts...)
	return validation.New(data, f.Rules, all...)
}

// Registry is an immutable set of forms, safe for concurrent use.
type Registry struct {
	forms map[string]*Form
	names []string
}

type file struct {
	Forms map[string]*Form `yaml:"forms"`
}

// Load decodes a forms document.
func Load(r io.Reader) (*Registry, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoForms
		}
		return nil, fmt.Errorf("forms: %w", err)
	}
	if len(doc.Forms) == 0 {
		return nil, ErrNoForms
	}

	reg := &Registry{forms: make(map[string]*Form, len(doc.Forms))}
	for name, f := range doc.Forms {
		if f == nil || len(f.Rules) == 0 {
			return nil, fmt.Errorf("forms: form %q has no rules", name)
		}
		f.Name = name
		reg.forms[name] = f
		reg.names = append(reg.names, name)
	}
	slices.Sort(reg.names)
	return reg, nil
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) (*Registry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("forms: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Get returns the named form.
func (r *Registry) Get(name string) (*Form, error) {
	f, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return f, nil
}

// Names returns every form name, sorted.
func (r *Registry) Names() []string { return slices.Clone(r.names) }

// Uses reports whether any form declares a rule of kind k.
func (r *Registry) Uses(k validation.Kind) bool {
	for _, f := range r.forms {
		if f.Rules.Uses(k) {
			return true
		}
	}
	return false
}
