package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/prjconf/cmd/prjconf"
)

func main() {
	rootCmd := prjconf.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !prjconf.IsRendered(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
