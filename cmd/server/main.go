// Package main implements the dayplan command: the HTTP API server that
// places tasks into the three daily slots of a user's calendar, plus the
// migration and maintenance commands that run against the same database.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
