package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aurafm/aura/internal/config"
	"github.com/aurafm/aura/internal/wizard"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup",
	Long: `Walk through initial configuration: backend, camera source,
detection pace and broadcast channel. Writes the config file when
confirmed.`,
	// Setup must work before a config file exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	cfg := config.Default()
	saved, err := wizard.Run(cfg)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if !saved {
		fmt.Println("Nothing saved.")
		return nil
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Printf("Created config file: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Make sure the backend and camera endpoints are reachable")
		fmt.Println("  2. Run 'aura sync' to fetch audio features for the catalog")
		fmt.Println("  3. Run 'aura run' to start the pipeline")
	}

	return nil
}
