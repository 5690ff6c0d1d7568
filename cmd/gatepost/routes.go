package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/gatepost/internal/dto"
	"github.com/aretw0/gatepost/internal/presentation/tui"
	"github.com/aretw0/gatepost/internal/runtime"
)

var routesCmd = &cobra.Command{
	Use:   "routes <file>",
	Short: "List the routes a definition file compiles to",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRoutes(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <file> <route>",
	Short: "Show one route's compiled metadata",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDescribe(args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(describeCmd)
}

func compileViews(path string) ([]dto.RouteView, error) {
	source, err := loadSource(path)
	if err != nil {
		return nil, err
	}
	routes, err := runtime.NewCompiler(nil).Compile(context.Background(), source)
	if err != nil {
		return nil, err
	}
	return dto.FromRoutes(routes), nil
}

func runRoutes(path string) error {
	views, err := compileViews(path)
	if err != nil {
		return err
	}
	printMarkdown(tui.RoutesMarkdown(views))
	return nil
}

func runDescribe(path, name string) error {
	views, err := compileViews(path)
	if err != nil {
		return err
	}
	for _, v := range views {
		if v.Name == name {
			printMarkdown(tui.RouteMarkdown(v))
			return nil
		}
	}
	return fmt.Errorf("route %q not found in %s", name, path)
}

// printMarkdown renders through glamour on a TTY and prints raw markdown when
// piped.
func printMarkdown(markdown string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		render := tui.NewRenderer()
		if out, err := render(markdown); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(markdown)
}
