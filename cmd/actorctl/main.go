// Command actorctl runs a small demonstration supervision tree: a root
// actor with a HeartBeat lite task bound underneath it, wired to rotating
// file logging and the runtime's double-Ctrl-C shutdown discipline.
package main

import (
	"fmt"
	"os"

	"github.com/catalystlabs/meioactor/cmd/actorctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
