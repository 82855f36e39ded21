// Package main provides the warehouse CLI: a catalog of versioned model
// records grouped into projects, backed by a transactional store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
