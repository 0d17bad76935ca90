package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerbench-dev/ledgerbench/internal/config"
	"github.com/ledgerbench-dev/ledgerbench/internal/llm"
)

func newModelsCommand() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available providers and configured models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("providers: %s\n", strings.Join(llm.DefaultRegistry().Providers(), ", "))

			// A config file is optional here.
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				return nil
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			fmt.Println("\nconfigured models:")
			for _, mc := range cfg.Models {
				fmt.Printf("  %-30s %s/%s (temperature %g)\n", mc.Name, mc.Provider, mc.Model, mc.Temperature)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "ledgerbench.yaml", "config file")

	return cmd
}
