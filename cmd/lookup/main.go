// Command lookup describes the places near a coordinate from the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/usecases"
	"github.com/samirrijal/touristapi/internal/di"
	"github.com/samirrijal/touristapi/internal/pkg/config"
	"github.com/samirrijal/touristapi/internal/pkg/locale"
	"github.com/samirrijal/touristapi/internal/pkg/logging"
)

var (
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Describe places near a coordinate",
	Long: `lookup finds notable places near a coordinate and prints a short,
localized description of each.

Example usage:
  lookup --lat 48.8584 --lng 2.2945 --lang fr
  lookup --lat 43.2630 --lng -2.9350 --radius 2000 --json
  lookup events                  # Follow lookup events from NATS`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runLookup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Flags().Float64("lat", 0, "latitude (required)")
	rootCmd.Flags().Float64("lng", 0, "longitude (required)")
	rootCmd.Flags().String("lang", "", "target language (default from config)")
	rootCmd.Flags().Int("radius", usecases.DefaultRadius, "search radius in meters")
	rootCmd.Flags().Int("limit", usecases.DefaultLimit, "maximum number of places")
	rootCmd.Flags().Bool("json", false, "output as JSON")
	_ = rootCmd.MarkFlagRequired("lat")
	_ = rootCmd.MarkFlagRequired("lng")
}

// initConfig loads configuration and sends logs to stderr, as text on a
// terminal and JSON otherwise.
func initConfig() error {
	var err error
	cfg, err = config.Load("touristapi-lookup")
	if err != nil {
		return err
	}

	format := cfg.Log.Format
	if isatty.IsTerminal(os.Stderr.Fd()) {
		format = "text"
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logging.SetupWriter(os.Stderr, level, format)
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	lat, _ := cmd.Flags().GetFloat64("lat")
	lng, _ := cmd.Flags().GetFloat64("lng")
	lang, _ := cmd.Flags().GetString("lang")
	radius, _ := cmd.Flags().GetInt("radius")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	req := domain.LookupRequest{
		Lat:          lat,
		Lng:          lng,
		Lang:         locale.Resolve(lang, cfg.Lookup.DefaultLang),
		RadiusMeters: radius,
		Limit:        limit,
	}
	if err := validate(req); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components := di.NewComponents(ctx, cfg, di.Options{})
	defer components.Close()

	res := components.Lookups.Lookup(ctx, req)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return render(cmd.OutOrStdout(), req, res)
}

func validate(req domain.LookupRequest) error {
	if !(domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}).Valid() {
		return fmt.Errorf("--lat must be within [-90, 90] and --lng within [-180, 180]")
	}
	if req.RadiusMeters < usecases.MinRadius || req.RadiusMeters > usecases.MaxRadius {
		return fmt.Errorf("--radius must be between %d and %d", usecases.MinRadius, usecases.MaxRadius)
	}
	if req.Limit < usecases.MinLimit || req.Limit > usecases.MaxLimit {
		return fmt.Errorf("--limit must be between %d and %d", usecases.MinLimit, usecases.MaxLimit)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
