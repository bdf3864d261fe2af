package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sybrenstuvel/gorsa/meta"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		if meta.Populated() {
			fmt.Println("gorsa", meta.GitSHA)
		} else {
			fmt.Println("gorsa (build information unavailable)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
