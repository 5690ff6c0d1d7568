package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/gatepost"
	"github.com/aretw0/gatepost/internal/logging"
	"github.com/aretw0/gatepost/internal/presentation/tui"
	redisAdapter "github.com/aretw0/gatepost/pkg/adapters/redis"
	"github.com/aretw0/gatepost/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve a route definition with its policy enforced",
	Long: `Starts an HTTP gateway over the definition file. Controller references are
bound to stub echo handlers, so responses show which controller action would
run; embed gatepost as a library to serve real handlers.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		vendor, _ := cmd.Flags().GetString("vendor")
		defVersion, _ := cmd.Flags().GetString("default-version")
		redisAddr, _ := cmd.Flags().GetString("redis")
		conditional, _ := cmd.Flags().GetBool("conditional")

		source, err := loadSource(args[0])
		if err != nil {
			fmt.Printf("Error loading definitions: %v\n", err)
			os.Exit(1)
		}

		opts := []gatepost.Option{
			gatepost.WithRegistry(stubRegistry{}),
			gatepost.WithVendor(vendor),
			gatepost.WithDefaultVersion(defVersion),
			gatepost.WithConditionalRequests(conditional),
			gatepost.WithLogger(logging.New(slog.LevelInfo)),
		}
		if redisAddr != "" {
			opts = append(opts, gatepost.WithCounterStore(redisAdapter.New(redisAddr, "", 0)))
		}

		gw, err := gatepost.New(cmd.Context(), source, opts...)
		if err != nil {
			fmt.Printf("Error initializing gateway: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: gw.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner()
			fmt.Printf("Starting Gatepost on %s\n", srv.Addr)
			fmt.Printf("Serving %d routes from: %s\n", len(gw.Routes()), args[0])
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Gatepost stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("vendor", "api", "Vendor tree for version negotiation media types")
	serveCmd.Flags().String("default-version", "v1", "API version assumed when none is negotiated")
	serveCmd.Flags().String("redis", "", "Redis address for the rate-limit counter store (in-memory when empty)")
	serveCmd.Flags().Bool("conditional", false, "Enable conditional requests by default")
}

// stubRegistry resolves every controller reference to an echo handler, so the
// CLI can exercise routing policy without real controllers.
type stubRegistry struct{}

func (stubRegistry) Resolve(ref string) (ports.Controller, string, error) {
	name, action, ok := strings.Cut(ref, "@")
	if !ok || name == "" || action == "" {
		return nil, "", fmt.Errorf("%w: %q", ports.ErrMalformedRef, ref)
	}
	return stubController{controller: name}, action, nil
}

type stubController struct {
	controller string
}

func (c stubController) Action(name string) (http.Handler, bool) {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"controller": c.controller,
			"action":     name,
			"path":       r.URL.Path,
		})
	}), true
}
