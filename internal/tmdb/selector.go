package tmdb

import (
	"strings"

	"github.com/lepinkainen/unroll/internal/locale"
)

const providerSeparator = " - "

// ForRegion returns the bucket for a region code. Lookup is case-insensitive.
func (r *WatchProvidersResponse) ForRegion(code string) (WatchProviderResult, bool) {
	if r == nil || r.Results == nil {
		return WatchProviderResult{}, false
	}
	if result, ok := r.Results[code]; ok {
		return result, true
	}
	for key, result := range r.Results {
		if strings.EqualFold(key, code) {
			return result, true
		}
	}
	return WatchProviderResult{}, false
}

// FlatrateNames renders the subscription providers of loc as "Netflix - Hulu".
// A missing region or category yields "".
func FlatrateNames(resp *WatchProvidersResponse, loc locale.Location) string {
	result, ok := resp.ForRegion(loc.RegionCode())
	if !ok {
		return ""
	}
	return JoinProviderNames(result.Flatrate)
}

// JoinProviderNames joins provider names in list order.
func JoinProviderNames(providers []WatchProvider) string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return strings.Join(names, providerSeparator)
}
