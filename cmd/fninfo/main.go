// Command fninfo renders a function declaration file without building the function.
//
//	fninfo [--json] function.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"fnbridge/pkg/introspect"
	"fnbridge/pkg/metadata"
)

func main() {
	asJSON := pflag.Bool(introspect.FlagJSON, false, "Print metadata as JSON")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [--json] <declaration.yaml>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	decl, err := metadata.LoadDeclaration(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fninfo: %v\n", err)
		os.Exit(1)
	}

	opts := introspect.Options{Info: true, JSON: *asJSON}
	if _, err := introspect.Display(os.Stdout, decl.FunctionInfo(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "fninfo: %v\n", err)
		os.Exit(1)
	}
}
