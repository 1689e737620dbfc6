package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/transitkit/laxago/basemodel"
	"github.com/transitkit/laxago/downloader"
	"github.com/transitkit/laxago/loadsdata"
	"github.com/transitkit/laxago/parse"
	"github.com/transitkit/laxago/storage"
	"github.com/transitkit/laxago/transitdata"
)

// fetchArchive reads a GTFS zip from a local path or an http(s) URL.
// --ntfs is documented in spec.md as an NTFS archive path, but only
// the GTFS collaborator is implemented here, so the flag is treated as
// a GTFS zip location.
func fetchArchive(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return downloader.HTTPGet(ctx, path, nil, downloader.GetOptions{Timeout: 60 * time.Second})
	}
	return ioutil.ReadFile(path)
}

// buildTransitData loads a GTFS archive and an optional loads CSV
// into a queryable transitdata.TransitData, reporting any vehicle
// journeys basemodel.Builder had to drop.
func buildTransitData(ntfsPath, loadsPath string, cfg basemodel.Config) (*transitdata.TransitData, *basemodel.BuildReport, error) {
	body, err := fetchArchive(ntfsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", ntfsPath, err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(body))

	store := storage.NewMemoryStorage()
	writer, err := store.GetWriter(hash)
	if err != nil {
		return nil, nil, fmt.Errorf("getting writer: %w", err)
	}
	defer writer.Close()

	if _, err := parse.ParseStatic(writer, body); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", ntfsPath, err)
	}

	reader, err := store.GetReader(hash)
	if err != nil {
		return nil, nil, fmt.Errorf("getting reader: %w", err)
	}

	base, err := basemodel.Builder{}.FromFeed(reader, nil, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("building base model: %w", err)
	}

	if loadsPath != "" {
		f, err := os.Open(loadsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", loadsPath, err)
		}
		defer f.Close()

		loads, err := loadsdata.Load(f, base.Calendar)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", loadsPath, err)
		}
		base.Loads = loads
	}

	data, err := transitdata.Build(base)
	if err != nil {
		return nil, nil, fmt.Errorf("building transit data: %w", err)
	}

	return data, base.Report, nil
}

// parseImplem maps the --implem flag's four values onto the separate
// TimetablesStore strategy and criteria engine they each bundle.
func parseImplem(s string) (basemodel.Implem, basemodel.CriteriaImplem, error) {
	switch s {
	case "", "periodic":
		return basemodel.ImplemPeriodic, basemodel.CriteriaBasic, nil
	case "daily":
		return basemodel.ImplemDaily, basemodel.CriteriaBasic, nil
	case "loads_periodic":
		return basemodel.ImplemPeriodic, basemodel.CriteriaLoads, nil
	case "loads_daily":
		return basemodel.ImplemDaily, basemodel.CriteriaLoads, nil
	default:
		return 0, 0, fmt.Errorf("unknown --implem %q: want periodic, daily, loads_periodic or loads_daily", s)
	}
}

// parseCriteriaImplem maps the --criteria-implem override flag.
func parseCriteriaImplem(s string) (basemodel.CriteriaImplem, error) {
	switch s {
	case "basic":
		return basemodel.CriteriaBasic, nil
	case "loads":
		return basemodel.CriteriaLoads, nil
	default:
		return 0, fmt.Errorf("unknown --criteria-implem %q: want basic or loads", s)
	}
}
