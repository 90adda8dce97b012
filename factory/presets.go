package factory

import (
	"encoding/json"

	"github.com/warp/jobstack/tycoon"
)

// ClassicProfileJSON returns the classic console profile as JSON.
func ClassicProfileJSON() string {
	return presetJSON(tycoon.ClassicProfile())
}

// MarketplaceProfileJSON returns the marketplace profile as JSON.
func MarketplaceProfileJSON() string {
	return presetJSON(tycoon.MarketplaceProfile())
}

func presetJSON(p tycoon.Profile) string {
	b, _ := json.MarshalIndent(NewProfileFactory().ToJSON(p), "", "  ")
	return string(b)
}
