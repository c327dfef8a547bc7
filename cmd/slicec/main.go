// Command slicec is the command-line front end for the semantic analyzer: it discovers
// source files from glob patterns, parses and compiles them against a shared store, and
// reports diagnostics in either human or JSON form.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
