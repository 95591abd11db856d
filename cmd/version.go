package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/concolic-labs/pathfinder/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command that displays build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long: `Print detailed version and build information for pathfinder.

This includes the semantic version, git commit hash, build timestamp,
and Go version used to compile the binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.GetInfo()
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		if !asJSON {
			fmt.Print(info.String())
			return nil
		}
		b, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "print the build information as JSON")
	rootCmd.AddCommand(versionCmd)
}
