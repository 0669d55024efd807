// Package introspect renders function metadata for the --info and --json flags.
package introspect

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"fnbridge/pkg/metadata"
)

const (
	// FlagInfo requests metadata instead of running the handler
	FlagInfo = "info"
	// FlagJSON selects JSON rendering for --info
	FlagJSON = "json"
)

// Options holds the two introspection switches. The zero value runs the handler.
type Options struct {
	Info bool
	JSON bool
}

// Enabled reports whether metadata should be rendered instead of running the handler
func (o Options) Enabled() bool {
	return o.Info
}

// RegisterFlags adds --info and --json to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagInfo, false, "Print function metadata and exit")
	fs.Bool(FlagJSON, false, "Print metadata as JSON (with --info)")
}

// ParseFlags reads --info and --json from args. Other flags and positional
// arguments are ignored so platform runtimes can pass their own.
func ParseFlags(args []string) (Options, error) {
	fs := pflag.NewFlagSet("introspect", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("failed to parse introspection flags: %w", err)
	}
	return FromFlagSet(fs), nil
}

// FromFlagSet reads the options from a flag set that RegisterFlags was applied to
func FromFlagSet(fs *pflag.FlagSet) Options {
	info, _ := fs.GetBool(FlagInfo)
	asJSON, _ := fs.GetBool(FlagJSON)
	return Options{Info: info, JSON: asJSON}
}

// Render returns the metadata as JSON when opts.JSON is set and as display text otherwise
func Render(info metadata.FunctionInfo, opts Options) string {
	if opts.JSON {
		return info.ToJSON()
	}
	return info.FormatForDisplay()
}

// Display writes the rendered metadata followed by a newline
func Display(w io.Writer, info metadata.FunctionInfo, opts Options) (string, error) {
	out := Render(info, opts)
	if _, err := fmt.Fprintln(w, out); err != nil {
		return out, fmt.Errorf("failed to write function info: %w", err)
	}
	return out, nil
}
