package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Runtime   string `json:"runtime"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := versionInfo{
			Version:   Version,
			Commit:    Commit,
			BuildDate: BuildDate,
			Runtime:   fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		}

		if JSONOutput() {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(info)
			return
		}

		line := "aura " + info.Version
		if info.Commit != "" {
			line += " (" + info.Commit + ")"
		}
		fmt.Println(line)

		if Verbose() {
			if info.BuildDate != "" {
				fmt.Printf("  built %s\n", info.BuildDate)
			}
			fmt.Printf("  %s\n", info.Runtime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
