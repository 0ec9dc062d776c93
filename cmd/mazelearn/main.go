// Command mazelearn trains maze solving agents and reports on their
// training
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	d, err := loadDefaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:          "mazelearn",
		Short:        "Train agents to solve grid mazes",
		SilenceUsage: true,
	}
	root.AddCommand(trainCommand(d), configCommand(d))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
