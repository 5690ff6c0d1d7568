package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gatepost"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gatepost",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gatepost version %s\n", strings.TrimSpace(gatepost.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
