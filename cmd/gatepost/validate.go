package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/gatepost/internal/runtime"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a route definition file for consistency",
	Long:  `Loads the definition (OpenAPI document or route manifest), decodes every action bag and reports the first problem found.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Route definitions are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	source, err := loadSource(path)
	if err != nil {
		return err
	}

	// Compile without a registry: controller binding belongs to the embedding
	// host, the CLI checks the definitions themselves.
	compiler := runtime.NewCompiler(nil)
	routes, err := compiler.Compile(context.Background(), source)
	if err != nil {
		return err
	}

	fmt.Printf("Compiled %d routes\n", len(routes))
	return nil
}
