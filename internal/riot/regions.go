package riot

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Platform is a game server cluster code such as NA1 or EUW1
type Platform string

// Region is the routing domain that hosts match-history and account services
type Region string

const (
	RegionAmericas Region = "AMERICAS"
	RegionEurope   Region = "EUROPE"
	RegionAsia     Region = "ASIA"
)

// ErrUnknownPlatform is returned when a platform code is not in the routing table
var ErrUnknownPlatform = errors.New("unknown platform")

// platformRegions routes every supported platform to exactly one region
var platformRegions = map[Platform]Region{
	"NA1":  RegionAmericas,
	"LA1":  RegionAmericas,
	"LA2":  RegionAmericas,
	"BR1":  RegionAmericas,
	"OC1":  RegionAmericas,
	"EUW1": RegionEurope,
	"EUN1": RegionEurope,
	"TR1":  RegionEurope,
	"RU":   RegionEurope, // Riot routes RU through europe, not asia
	"JP1":  RegionAsia,
	"KR":   RegionAsia,
}

// ParsePlatform upper-normalizes a platform code and checks it against the routing table
func ParsePlatform(code string) (Platform, error) {
	p := Platform(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := platformRegions[p]; !ok {
		return "", unknownPlatformError(code)
	}
	return p, nil
}

// RegionFor returns the region hosting the given platform's match history
func RegionFor(code string) (Region, error) {
	p, err := ParsePlatform(code)
	if err != nil {
		return "", err
	}
	return platformRegions[p], nil
}

// Platforms lists every routable platform code in sorted order
func Platforms() []Platform {
	out := make([]Platform, 0, len(platformRegions))
	for p := range platformRegions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func unknownPlatformError(code string) error {
	known := make([]string, 0, len(platformRegions))
	for _, p := range Platforms() {
		known = append(known, string(p))
	}

	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(code), known)
	if len(ranks) == 0 {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownPlatform, code, strings.Join(known, ", "))
	}
	sort.Sort(ranks)

	suggestions := make([]string, 0, len(ranks))
	for _, r := range ranks {
		suggestions = append(suggestions, r.Target)
	}
	return fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownPlatform, code, strings.Join(suggestions, ", "))
}

// platformBaseURL and regionBaseURL build the lowercase API hosts Riot routes by
func platformBaseURL(p Platform) string {
	return "https://" + strings.ToLower(string(p)) + ".api.riotgames.com"
}

func regionBaseURL(r Region) string {
	return "https://" + strings.ToLower(string(r)) + ".api.riotgames.com"
}
