package main

import (
	"os"

	"github.com/cottand/typenv/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "typenv [subcommand]",
	Short:             "typenv inspects type environments and the functional dependencies of type classes",
	Args:              cobra.MinimumNArgs(1),
	PersistentPreRunE: cmd.Configure,
	SilenceUsage:      true,
}

func init() {
	cmd.AddPersistentFlags(rootCmd)
	rootCmd.AddCommand(cmd.ClassDataCmd)
	rootCmd.AddCommand(cmd.PrimCmd)
	rootCmd.AddCommand(cmd.LoadCmd)
}
