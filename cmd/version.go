package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

var (
	versionShort  bool
	versionOutput string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the timerdeck version",
	Example: `
timerdeck version
timerdeck version -s
timerdeck version -o yaml
`,
	Run: func(cmd *cobra.Command, _ []string) {
		resp := goversion.FuncWithOutput(versionShort, Version, GitCommit, BuildDate, versionOutput)
		fmt.Fprint(cmd.OutOrStdout(), resp)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Print just the version number.")
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	rootCmd.AddCommand(versionCmd)
}
