// Command scheduler-cli dry-runs the schedule generator against a JSON
// season description, without touching Postgres or any external
// collaborator. Operators use it to sanity-check a season's shape (team
// counts, venue availability, blackout windows) before generating through
// the HTTP API.
//
// Usage:
//
//	scheduler-cli generate --input season.json
//	scheduler-cli generate --input season.json --output plan.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/heatpolicy"
	"github.com/riskibarqy/hoopscheduler/internal/scheduler"
)

func main() {
	root := &cobra.Command{
		Use:   "scheduler-cli",
		Short: "Dry-run the hoopscheduler schedule generator against a JSON season file",
	}
	root.AddCommand(generateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run matchup construction and placement for one season",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return fmt.Errorf("--input is required")
			}

			req, err := loadRequest(inputPath)
			if err != nil {
				return fmt.Errorf("load input: %w", err)
			}

			heatEvaluator := heatpolicy.NewEvaluator(nil, heatpolicy.DefaultConfig())
			generator := scheduler.NewGenerator(heatEvaluator)

			result, err := generator.Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("generate schedule: %w", err)
			}

			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}

			if outputPath == "" {
				fmt.Println(string(encoded))
				return nil
			}

			return os.WriteFile(outputPath, encoded, 0o644)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON season description (required)")
	cmd.Flags().StringVar(&outputPath, "output", "", "path to write the resulting plan as JSON (default: stdout)")
	return cmd
}

// seasonFile is the on-disk shape scheduler.Request is built from. It
// mirrors scheduler.Request field-for-field except that the location is
// given as an IANA Timezone name, reusing the domain types
// directly so the CLI needs no separate translation layer once the file
// is decoded.
type seasonFile struct {
	SeasonStart  time.Time                       `json:"season_start"`
	SeasonEnd    time.Time                       `json:"season_end"`
	Timezone     string                          `json:"timezone"`
	Divisions    []scheduler.Division            `json:"divisions"`
	Venues       map[string]venue.Venue          `json:"venues"`
	Availability map[string][]venue.Availability `json:"availability"`
	Blackouts    []blackout.BlackoutDate         `json:"blackouts"`
	Params       scheduler.Params                `json:"params"`
}

func loadRequest(path string) (scheduler.Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scheduler.Request{}, err
	}

	var file seasonFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return scheduler.Request{}, fmt.Errorf("parse season file: %w", err)
	}

	loc := time.UTC
	if file.Timezone != "" {
		parsed, err := time.LoadLocation(file.Timezone)
		if err != nil {
			return scheduler.Request{}, fmt.Errorf("load timezone %q: %w", file.Timezone, err)
		}
		loc = parsed
	}

	params := file.Params
	if params.Algorithm == "" {
		params = scheduler.DefaultParams()
	}

	return scheduler.Request{
		SeasonStart:  file.SeasonStart,
		SeasonEnd:    file.SeasonEnd,
		Location:     loc,
		Divisions:    file.Divisions,
		Venues:       file.Venues,
		Availability: file.Availability,
		Blackouts:    file.Blackouts,
		Params:       params,
	}, nil
}
