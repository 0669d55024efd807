package metadata

import (
	"encoding/json"
	"maps"
	"slices"
)

// Resource describes a resource need such as memory or timeout. Values keep their
// units verbatim ("256MB", "30s").
type Resource struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Value       string `json:"value" yaml:"value" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewResource creates a resource specification
func NewResource(name, value string) Resource {
	return Resource{Name: name, Value: value}
}

// WithDescription returns a copy of the resource with a description
func (r Resource) WithDescription(description string) Resource {
	r.Description = description
	return r
}

// Requirements lists what a function needs to run: resources, supported platforms
// and the environment variables it reads.
//
// The builder methods return a new value and leave the receiver untouched.
type Requirements struct {
	Recommended map[string]Resource `json:"recommended"`
	Required    map[string]Resource `json:"required"`
	Platforms   []string            `json:"platforms"`
	Environment []string            `json:"environment"`
}

// NewRequirements creates an empty requirements specification
func NewRequirements() Requirements {
	return Requirements{
		Recommended: map[string]Resource{},
		Required:    map[string]Resource{},
		Platforms:   []string{},
		Environment: []string{},
	}
}

// Recommend adds a recommended resource, replacing any with the same name
func (r Requirements) Recommend(res Resource) Requirements {
	r.Recommended = withResource(r.Recommended, res)
	return r
}

// Require adds a required resource, replacing any with the same name
func (r Requirements) Require(res Resource) Requirements {
	r.Required = withResource(r.Required, res)
	return r
}

// Platform appends a supported platform. Duplicates are kept.
func (r Requirements) Platform(name string) Requirements {
	r.Platforms = append(slices.Clip(r.Platforms), name)
	return r
}

// EnvVar appends a referenced environment variable. Duplicates are kept.
func (r Requirements) EnvVar(name string) Requirements {
	r.Environment = append(slices.Clip(r.Environment), name)
	return r
}

// GetRecommended returns a recommended resource by name
func (r Requirements) GetRecommended(name string) (Resource, bool) {
	res, ok := r.Recommended[name]
	return res, ok
}

// GetRequired returns a required resource by name
func (r Requirements) GetRequired(name string) (Resource, bool) {
	res, ok := r.Required[name]
	return res, ok
}

// SupportsPlatform reports whether name is listed in Platforms
func (r Requirements) SupportsPlatform(name string) bool {
	return slices.Contains(r.Platforms, name)
}

// IsEmpty reports whether nothing has been declared
func (r Requirements) IsEmpty() bool {
	return len(r.Recommended) == 0 && len(r.Required) == 0 &&
		len(r.Platforms) == 0 && len(r.Environment) == 0
}

// Equal compares two requirements, treating nil and empty collections alike
func (r Requirements) Equal(other Requirements) bool {
	return maps.Equal(r.Recommended, other.Recommended) &&
		maps.Equal(r.Required, other.Required) &&
		slices.Equal(r.Platforms, other.Platforms) &&
		slices.Equal(r.Environment, other.Environment)
}

// MarshalJSON always emits every collection, so consumers never see null
func (r Requirements) MarshalJSON() ([]byte, error) {
	type plain Requirements
	out := plain(r)
	if out.Recommended == nil {
		out.Recommended = map[string]Resource{}
	}
	if out.Required == nil {
		out.Required = map[string]Resource{}
	}
	if out.Platforms == nil {
		out.Platforms = []string{}
	}
	if out.Environment == nil {
		out.Environment = []string{}
	}
	return json.Marshal(out)
}

func withResource(m map[string]Resource, res Resource) map[string]Resource {
	out := make(map[string]Resource, len(m)+1)
	maps.Copy(out, m)
	out[res.Name] = res
	return out
}
