// tagwalk lists member tags of the classes in a metadata table.
//
// Usage:
//
//	tagwalk fields  --table=<file> [--class=<name>]... [--key=<key>]... [--stop-on=<key>]
//	tagwalk methods --table=<file> [--class=<name>]...
//	tagwalk collect --table=<file> [--class=<name>]... [--output=markdown]
//	tagwalk search  --table=<file> [--class=<name>]...
//	tagwalk serve   --table=<file>
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
