package metadata

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRequirementsAccumulation(t *testing.T) {
	reqs := NewRequirements().
		Recommend(NewResource("memory", "128MB")).
		Recommend(NewResource("memory", "256MB")).
		Platform("aws").
		Platform("aws").
		EnvVar("DATABASE_URL")

	if len(reqs.Recommended) != 1 {
		t.Fatalf("Expected 1 recommended resource, got %d", len(reqs.Recommended))
	}
	if res, ok := reqs.GetRecommended("memory"); !ok || res.Value != "256MB" {
		t.Errorf("Expected memory 256MB, got %+v", res)
	}
	if len(reqs.Platforms) != 2 {
		t.Errorf("Expected duplicate platforms to be kept, got %v", reqs.Platforms)
	}
	if !reqs.SupportsPlatform("aws") || reqs.SupportsPlatform("azure") {
		t.Errorf("Unexpected platform support: %v", reqs.Platforms)
	}
	if _, ok := reqs.GetRequired("memory"); ok {
		t.Error("Expected no required resources")
	}
}

func TestRequirementsBuildersDoNotMutate(t *testing.T) {
	base := NewRequirements().Platform("aws").Recommend(NewResource("memory", "128MB"))
	_ = base.Platform("gcp").Recommend(NewResource("memory", "1GB")).Require(NewResource("cpu", "1"))

	if len(base.Platforms) != 1 {
		t.Errorf("Expected base platforms unchanged, got %v", base.Platforms)
	}
	if res, _ := base.GetRecommended("memory"); res.Value != "128MB" {
		t.Errorf("Expected base memory 128MB, got %s", res.Value)
	}
	if len(base.Required) != 0 {
		t.Errorf("Expected base required unchanged, got %v", base.Required)
	}
}

func TestRequirementsIsEmpty(t *testing.T) {
	if !NewRequirements().IsEmpty() {
		t.Error("Expected new requirements to be empty")
	}
	if (Requirements{}).IsEmpty() != true {
		t.Error("Expected zero requirements to be empty")
	}
	if NewRequirements().EnvVar("X").IsEmpty() {
		t.Error("Expected requirements with env var to be non-empty")
	}
}

func TestRequirementsJSONNeverNull(t *testing.T) {
	data, err := json.Marshal(Requirements{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("Expected no null collections, got %s", data)
	}
}

func TestResourceWithDescription(t *testing.T) {
	res := NewResource("timeout", "30s").WithDescription("Request timeout")
	if res.Name != "timeout" || res.Value != "30s" || res.Description != "Request timeout" {
		t.Errorf("Unexpected resource: %+v", res)
	}
}
