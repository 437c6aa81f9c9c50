// Command finsight computes insights over a JSON snapshot of financial records.
//
// Usage:
//
//	finsight [-snapshot file] [-currency code] [-json] <command> [flags]
//
// Run "finsight help" for the list of commands.
package main

import (
	"context"
	"flag"
	"os"
)

func main() {
	commander := newCommander(flag.CommandLine, os.Stdout, os.Stderr)
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
