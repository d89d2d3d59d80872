package sim

import (
	"fmt"
	"strconv"
	"strings"

	"stormlightlabs.org/mmoldb/internal/ingest/events"
	"stormlightlabs.org/mmoldb/internal/ingest/taxa"
	"stormlightlabs.org/mmoldb/internal/ingest/types"
)

// resolveFielderSlots maps each fielder credited on a play to its taxon:
// a "place" like "Pitcher" maps directly; a numbered place
// like "Reliever 2" splits off the trailing number and falls back to the
// generic numbered taxon when the number is out of the known range.
func resolveFielderSlots(tx taxa.Taxa, fielders []events.PlacedPlayer, logs *types.IngestLogs) []types.EventDetailFielder {
	out := make([]types.EventDetailFielder, 0, len(fielders))
	for _, f := range fielders {
		base, number, numbered := splitNumberedPlace(f.Place)
		attrs, ok := tx.ResolveSlot(base, number, numbered)
		if !ok {
			logs.Warn(fmt.Sprintf("could not resolve fielder slot %q for %s, using generic", f.Place, f.Name))
		}
		out = append(out, types.EventDetailFielder{Name: f.Name, Slot: attrs.ID})
	}
	return out
}

// splitNumberedPlace splits a place string like "Reliever 2" into its base
// name and trailing number, or reports !numbered for a plain place like
// "Catcher".
func splitNumberedPlace(place string) (base string, number int, numbered bool) {
	idx := strings.LastIndexByte(place, ' ')
	if idx < 0 {
		return place, 0, false
	}
	tail := place[idx+1:]
	n, err := strconv.Atoi(tail)
	if err != nil {
		return place, 0, false
	}
	return place[:idx], n, true
}
