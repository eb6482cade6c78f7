package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped with -ldflags "-X .../cmd.version=v1.2.3" in releases.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tubequiz version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tubequiz %s (%s)\n", resolvedVersion(), runtime.Version())
	},
}

// resolvedVersion falls back to the module version recorded by
// `go install`, then to "(devel)".
func resolvedVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
