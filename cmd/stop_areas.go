package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/gtfstime"
	"github.com/transitkit/laxago/response"
	"github.com/transitkit/laxago/solver"
	"github.com/transitkit/laxago/transitdata"
)

var stopAreasCmd = &cobra.Command{
	Use:   "stop_areas",
	Short: "Plan journeys between a start and an end stop area",
	RunE:  runStopAreas,
}

var (
	saNtfsPath          string
	saLoadsPath         string
	saStart             string
	saEnd               string
	saDepartureDatetime string
	saImplem            string
	saCriteriaImplem    string
	saDefaultTransfer   string
)

func init() {
	stopAreasCmd.Flags().StringVar(&saNtfsPath, "ntfs", "", "Path or URL to a GTFS archive")
	stopAreasCmd.Flags().StringVar(&saLoadsPath, "loads-data", "", "Path to a passenger-load CSV overlay")
	stopAreasCmd.Flags().StringVar(&saStart, "start", "", "Origin stop ID")
	stopAreasCmd.Flags().StringVar(&saEnd, "end", "", "Destination stop ID")
	stopAreasCmd.Flags().StringVar(&saDepartureDatetime, "departure-datetime", "", "Departure datetime, YYYYMMDDTHHMMSS")
	stopAreasCmd.Flags().StringVar(&saImplem, "implem", "periodic", "Timetable/criteria bundle: periodic, daily, loads_periodic, loads_daily")
	stopAreasCmd.Flags().StringVar(&saCriteriaImplem, "criteria-implem", "", "Override the criteria engine: basic, loads")
	stopAreasCmd.Flags().StringVar(&saDefaultTransfer, "default-transfer-duration", "00:02:00", "Default transfer duration, HH:MM:SS")
	stopAreasCmd.MarkFlagRequired("ntfs")
	stopAreasCmd.MarkFlagRequired("start")
	stopAreasCmd.MarkFlagRequired("end")
	stopAreasCmd.MarkFlagRequired("departure-datetime")
	rootCmd.AddCommand(stopAreasCmd)
}

func runStopAreas(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(saImplem, saCriteriaImplem, saDefaultTransfer)
	if err != nil {
		return err
	}

	data, report, err := buildTransitData(saNtfsPath, saLoadsPath, cfg)
	if err != nil {
		return err
	}
	for _, d := range report.Dropped {
		fmt.Printf("dropped vehicle journey %s: %s\n", d.VehicleJourneyID, d.Cause)
	}

	departure, err := gtfstime.ParseDatetime(saDepartureDatetime, data.Location())
	if err != nil {
		return err
	}
	departAt := gtfstime.FromTime(data.Calendar(), departure)

	req := solver.Request{
		DepartureDatetime: departAt,
		Origins:           []solver.Endpoint{{StopID: saStart}},
		Destinations:      []solver.Endpoint{{StopID: saEnd}},
		CriteriaImplem:    cfg.CriteriaImplem,
	}

	resp, err := solver.Solve(data, solver.ProviderFor(cfg.CriteriaImplem), req)
	if err != nil {
		return err
	}

	return printJourneys(data, resp, departAt)
}

// buildConfig resolves --implem and its --criteria-implem override
// into a basemodel.Config.
func buildConfig(implem, criteriaImplem, defaultTransfer string) (basemodel.Config, error) {
	tt, crit, err := parseImplem(implem)
	if err != nil {
		return basemodel.Config{}, err
	}
	if criteriaImplem != "" {
		crit, err = parseCriteriaImplem(criteriaImplem)
		if err != nil {
			return basemodel.Config{}, err
		}
	}

	transferLocal, err := gtfstime.ParseLocalTime(defaultTransfer)
	if err != nil {
		return basemodel.Config{}, fmt.Errorf("parsing --default-transfer-duration: %w", err)
	}

	return basemodel.Config{
		DefaultTransferDuration: gtfstime.NewPositiveDuration(time.Duration(transferLocal) * time.Second),
		Implem:                  tt,
		CriteriaImplem:          crit,
	}, nil
}

// printJourneys prints every Pareto-optimal journey in resp in a
// human-readable form, one line per leg.
func printJourneys(data *transitdata.TransitData, resp *solver.Response, departAt gtfstime.UTCInstant) error {
	switch resp.Tag {
	case solver.TagNoRoute:
		return fmt.Errorf("no route found")
	case solver.TagTimeout:
		fmt.Println("warning: solve timed out, results may be incomplete")
	}

	cal := data.Calendar()
	at := func(u gtfstime.UTCInstant) string { return u.Time(cal).Format(time.RFC3339) }

	journeys := response.AssembleAll(resp.Tree, resp.Arrived, departAt)
	for i, j := range journeys {
		fmt.Printf("journey %d: arrival %s, %d legs\n", i, at(j.Arrival), len(j.Legs))
		for _, leg := range j.Legs {
			switch leg.Kind {
			case response.LegVehicle:
				fmt.Printf("  %s: %s -> %s, %s -> %s, vehicle %s\n",
					leg.Kind, data.StopID(leg.FromStop), data.StopID(leg.ToStop),
					at(leg.DepartAt), at(leg.ArriveAt), data.VehicleJourneyOf(leg.Trip))
			default:
				fmt.Printf("  %s: %s -> %s, %s -> %s\n",
					leg.Kind, data.StopID(leg.FromStop), data.StopID(leg.ToStop),
					at(leg.DepartAt), at(leg.ArriveAt))
			}
		}
	}
	return nil
}
