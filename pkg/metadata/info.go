package metadata

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"fnbridge/pkg/serverless"
)

// RouteInfo describes an HTTP route exposed by a function
type RouteInfo struct {
	Method      string `json:"method" yaml:"method" validate:"required,httpmethod"`
	Path        string `json:"path" yaml:"path" validate:"required,startswith=/"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewRouteInfo creates route information
func NewRouteInfo(method, path string) RouteInfo {
	return RouteInfo{Method: method, Path: path}
}

// WithDescription returns a copy of the route with a description
func (r RouteInfo) WithDescription(description string) RouteInfo {
	r.Description = description
	return r
}

// FunctionInfo is the self-description of a function reported by --info
type FunctionInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Resources   Requirements      `json:"resources"`
	Routes      []RouteInfo       `json:"routes,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewFunctionInfo creates function information with empty requirements
func NewFunctionInfo(name string) FunctionInfo {
	return FunctionInfo{Name: name, Resources: NewRequirements()}
}

// WithDescription returns a copy with a description
func (i FunctionInfo) WithDescription(description string) FunctionInfo {
	i.Description = description
	return i
}

// WithResources returns a copy with the given requirements
func (i FunctionInfo) WithResources(resources Requirements) FunctionInfo {
	i.Resources = resources
	return i
}

// AddRoute returns a copy with route appended
func (i FunctionInfo) AddRoute(route RouteInfo) FunctionInfo {
	i.Routes = append(slices.Clip(i.Routes), route)
	return i
}

// AddMetadata returns a copy with an additional metadata entry
func (i FunctionInfo) AddMetadata(key, value string) FunctionInfo {
	out := make(map[string]string, len(i.Metadata)+1)
	maps.Copy(out, i.Metadata)
	out[key] = value
	i.Metadata = out
	return i
}

// Equal compares two function descriptions structurally
func (i FunctionInfo) Equal(other FunctionInfo) bool {
	return i.Name == other.Name &&
		i.Description == other.Description &&
		i.Resources.Equal(other.Resources) &&
		slices.Equal(i.Routes, other.Routes) &&
		maps.Equal(i.Metadata, other.Metadata)
}

// ToJSON returns the indented JSON encoding. It never fails: every field is a
// string, a string map or a slice of plain structs.
func (i FunctionInfo) ToJSON() string {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"name": %s}`, strconv.Quote(i.Name))
	}
	return string(data)
}

// FromJSON decodes a FunctionInfo produced by ToJSON. The name key must be
// present; its value may be empty, as NewFunctionInfo("") is a valid value.
func FromJSON(data []byte) (FunctionInfo, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return FunctionInfo{}, serverless.NewSerializationError(err)
	}
	if _, ok := fields["name"]; !ok {
		return FunctionInfo{}, serverless.NewSerializationError(fmt.Errorf("function info has no name"))
	}

	var info FunctionInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return FunctionInfo{}, serverless.NewSerializationError(err)
	}
	return info, nil
}
