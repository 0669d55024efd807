package metadata

import (
	"strings"
	"testing"
)

func TestFormatForDisplay(t *testing.T) {
	out := sampleInfo().FormatForDisplay()

	expected := []string{
		"Function: user_api",
		"Description: API endpoints for user management",
		"Routes:",
		"  GET /users - List users",
		"  POST /users",
		"Required Resources:",
		"  database: postgres",
		"Recommended Resources:",
		"  memory: 256MB - Working memory",
		"Supported Platforms:",
		"  - aws",
		"  - cloudflare",
		"Environment Variables:",
		"  - DATABASE_URL",
		"Additional Metadata:",
		"  author: platform-team",
		"  version: 1.0",
	}

	last := -1
	for _, line := range expected {
		idx := strings.Index(out, line)
		if idx < 0 {
			t.Errorf("Expected output to contain %q\n%s", line, out)
			continue
		}
		if idx < last {
			t.Errorf("Expected %q to appear in order\n%s", line, out)
		}
		last = idx
	}
}

func TestFormatForDisplayOmitsEmptySections(t *testing.T) {
	out := NewFunctionInfo("bare").FormatForDisplay()

	if out != "Function: bare\n" {
		t.Errorf("Expected only the function line, got %q", out)
	}
	for _, section := range []string{"Routes:", "Resources:", "Platforms:", "Environment", "Metadata:"} {
		if strings.Contains(out, section) {
			t.Errorf("Expected %q to be omitted", section)
		}
	}
}
