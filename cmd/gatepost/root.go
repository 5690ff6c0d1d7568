package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/gatepost/pkg/adapters/manifest"
	"github.com/aretw0/gatepost/pkg/adapters/openapi"
	"github.com/aretw0/gatepost/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "gatepost",
	Short: "Gatepost is an API route metadata and policy layer",
	Long: `Gatepost normalizes route definitions from OpenAPI documents or YAML route
tables into one model carrying version, scope, auth-provider and rate-limit
metadata, and serves them with that policy enforced.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadSource picks the adapter for a definition file by sniffing its shape:
// OpenAPI documents open with an "openapi" key, manifests with "routes".
func loadSource(path string) (ports.RouteSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if bytes.Contains(data, []byte("openapi:")) || bytes.Contains(data, []byte(`"openapi"`)) {
		return openapi.FromBytes(data), nil
	}
	return manifest.FromBytes(data), nil
}
