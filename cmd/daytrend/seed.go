package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/spf13/cobra"
)

type seedOptions struct {
	days    int
	density float64
	seed    int64
}

func newSeedCommand(a *app) *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with synthetic ratings for demos",
		Long: `Write a random walk of ratings ending today. Days already recorded in the
range are replaced, so point --db at a scratch database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			if opts.density < 0 || opts.density > 1 {
				return fmt.Errorf("--density must be between 0 and 1")
			}
			seed := opts.seed
			if seed == 0 {
				seed = a.now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			samples := generateSamples(core.StartOfDay(a.now()), opts.days, a.metricNames(), opts.density, rng)

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Import(cmd.Context(), samples)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d days\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.days, "days", 90, "number of days ending today")
	cmd.Flags().Float64Var(&opts.density, "density", 0.8, "probability that a day has any ratings")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (default: time based)")
	return cmd
}

// generateSamples returns one sample per recorded day, oldest first. Each
// metric drifts from its previous value so charts show trends rather than
// noise. Skipped days are left out entirely.
func generateSamples(today time.Time, days int, metrics []core.MetricName, density float64, rng *rand.Rand) []core.RawSample {
	level := make(map[core.MetricName]float64, len(metrics))
	for _, m := range metrics {
		level[m] = 4 + rng.Float64()*3
	}

	out := make([]core.RawSample, 0, days)
	for i := days - 1; i >= 0; i-- {
		for _, m := range metrics {
			level[m] = jitterRating(level[m], 1.5, rng)
		}
		if rng.Float64() >= density {
			continue
		}
		sample := core.RawSample{Date: core.AddDays(today, -i), Ratings: make(map[core.MetricName]float64, len(metrics))}
		for _, m := range metrics {
			// Occasionally a single metric is forgotten.
			if rng.Float64() < 0.1 {
				continue
			}
			sample.Ratings[m] = math.Round(level[m])
		}
		out = append(out, sample)
	}
	return out
}

func jitterRating(v, maxDelta float64, rng *rand.Rand) float64 {
	delta := (rng.Float64()*2 - 1) * maxDelta
	return core.ClampRating(v + delta)
}
