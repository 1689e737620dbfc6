package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/solver"
	"github.com/transitkit/laxago/transitdata"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Benchmarks the solver over n random stop pairs",
	RunE:  runRandom,
}

var (
	rNtfsPath          string
	rLoadsPath         string
	rDepartureDatetime string
	rImplem            string
	rCriteriaImplem    string
	rDefaultTransfer   string
	rN                 int
	rSeed              int64
)

func init() {
	randomCmd.Flags().StringVar(&rNtfsPath, "ntfs", "", "Path or URL to a GTFS archive")
	randomCmd.Flags().StringVar(&rLoadsPath, "loads-data", "", "Path to a passenger-load CSV overlay")
	randomCmd.Flags().StringVar(&rDepartureDatetime, "departure-datetime", "", "Departure datetime, YYYYMMDDTHHMMSS")
	randomCmd.Flags().StringVar(&rImplem, "implem", "periodic", "Timetable/criteria bundle: periodic, daily, loads_periodic, loads_daily")
	randomCmd.Flags().StringVar(&rCriteriaImplem, "criteria-implem", "", "Override the criteria engine: basic, loads")
	randomCmd.Flags().StringVar(&rDefaultTransfer, "default-transfer-duration", "00:02:00", "Default transfer duration, HH:MM:SS")
	randomCmd.Flags().IntVarP(&rN, "n", "n", 100, "Number of random origin/destination pairs to solve")
	randomCmd.Flags().Int64Var(&rSeed, "seed", 1, "Random seed")
	randomCmd.MarkFlagRequired("ntfs")
	randomCmd.MarkFlagRequired("departure-datetime")
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(rImplem, rCriteriaImplem, rDefaultTransfer)
	if err != nil {
		return err
	}

	data, report, err := buildTransitData(rNtfsPath, rLoadsPath, cfg)
	if err != nil {
		return err
	}
	for _, d := range report.Dropped {
		fmt.Printf("dropped vehicle journey %s: %s\n", d.VehicleJourneyID, d.Cause)
	}

	if data.NbStops() < 2 {
		return fmt.Errorf("not enough stops to pick random pairs")
	}

	departure, err := gtfstime.ParseDatetime(rDepartureDatetime, data.Location())
	if err != nil {
		return err
	}
	departAt := gtfstime.FromTime(data.Calendar(), departure)

	provider := solver.ProviderFor(cfg.CriteriaImplem)
	rng := rand.New(rand.NewSource(rSeed))

	nbRouted := 0
	start := time.Now()
	for i := 0; i < rN; i++ {
		from := data.StopID(randomStop(rng, data.NbStops()))
		to := data.StopID(randomStop(rng, data.NbStops()))

		req := solver.Request{
			DepartureDatetime: departAt,
			Origins:           []solver.Endpoint{{StopID: from}},
			Destinations:      []solver.Endpoint{{StopID: to}},
			CriteriaImplem:    cfg.CriteriaImplem,
		}

		resp, err := solver.Solve(data, provider, req)
		if err != nil {
			return fmt.Errorf("solving %s -> %s: %w", from, to, err)
		}
		if resp.Tag != solver.TagNoRoute {
			nbRouted++
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("solved %d pairs in %s (%s/pair), %d routed\n", rN, elapsed, elapsed/time.Duration(rN), nbRouted)
	return nil
}

func randomStop(rng *rand.Rand, nbStops int) transitdata.StopIdx {
	return transitdata.StopIdx(rng.Intn(nbStops))
}
