package metadata

import (
	"fmt"
	"slices"
	"strings"
)

// FormatForDisplay renders the function information as plain text. Sections with no
// entries are left out and map entries are sorted, so the output is stable.
func (i FunctionInfo) FormatForDisplay() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Function: %s\n", i.Name)
	if i.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", i.Description)
	}

	if len(i.Routes) > 0 {
		b.WriteString("\nRoutes:\n")
		for _, r := range i.Routes {
			fmt.Fprintf(&b, "  %s %s", r.Method, r.Path)
			if r.Description != "" {
				fmt.Fprintf(&b, " - %s", r.Description)
			}
			b.WriteString("\n")
		}
	}

	writeResources(&b, "Required Resources", i.Resources.Required)
	writeResources(&b, "Recommended Resources", i.Resources.Recommended)
	writeList(&b, "Supported Platforms", i.Resources.Platforms)
	writeList(&b, "Environment Variables", i.Resources.Environment)

	if len(i.Metadata) > 0 {
		b.WriteString("\nAdditional Metadata:\n")
		for _, k := range sortedKeys(i.Metadata) {
			fmt.Fprintf(&b, "  %s: %s\n", k, i.Metadata[k])
		}
	}

	return b.String()
}

func writeResources(b *strings.Builder, title string, resources map[string]Resource) {
	if len(resources) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, name := range sortedKeys(resources) {
		res := resources[name]
		fmt.Fprintf(b, "  %s: %s", res.Name, res.Value)
		if res.Description != "" {
			fmt.Fprintf(b, " - %s", res.Description)
		}
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
