package parse

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/transitkit/laxago/model"
	"github.com/transitkit/laxago/storage"
)

type TransferCSV struct {
	FromStopID      string `csv:"from_stop_id"`
	ToStopID        string `csv:"to_stop_id"`
	TransferType    string `csv:"transfer_type"`
	MinTransferTime string `csv:"min_transfer_time"`
}

// ParseTransfers parses transfers.txt. Unlike the other static
// collections, transfers.txt has no required fields beyond the stop
// IDs: agencies routinely omit min_transfer_time, leaving the default
// transfer duration to apply downstream.
func ParseTransfers(writer storage.FeedWriter, data io.Reader, stops map[string]bool) error {
	transferCsv := []*TransferCSV{}
	if err := gocsv.Unmarshal(data, &transferCsv); err != nil {
		return fmt.Errorf("unmarshaling transfers csv: %w", err)
	}

	for _, t := range transferCsv {
		if t.FromStopID == "" {
			return fmt.Errorf("empty from_stop_id")
		}
		if t.ToStopID == "" {
			return fmt.Errorf("empty to_stop_id")
		}
		if !stops[t.FromStopID] {
			return fmt.Errorf("unknown from_stop_id '%s'", t.FromStopID)
		}
		if !stops[t.ToStopID] {
			return fmt.Errorf("unknown to_stop_id '%s'", t.ToStopID)
		}

		var minTransferTime int
		if t.MinTransferTime != "" {
			v, err := strconv.Atoi(t.MinTransferTime)
			if err != nil {
				return fmt.Errorf("invalid min_transfer_time '%s' for transfer %s->%s: %w", t.MinTransferTime, t.FromStopID, t.ToStopID, err)
			}
			minTransferTime = v
		}

		err := writer.WriteTransfer(model.Transfer{
			FromStopID:      t.FromStopID,
			ToStopID:        t.ToStopID,
			MinTransferTime: minTransferTime,
		})
		if err != nil {
			return fmt.Errorf("writing transfer: %w", err)
		}
	}

	return nil
}
