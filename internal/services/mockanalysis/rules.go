package mockanalysis

import "strings"

// FixtureID names a canned dataset.
type FixtureID string

const (
	FixtureMoutai  FixtureID = "moutai"
	FixtureBitcoin FixtureID = "bitcoin"
	FixturePingAn  FixtureID = "pingan"
	FixtureGold    FixtureID = "gold"
	FixtureTencent FixtureID = "tencent"
	FixtureDefault FixtureID = "default"
)

type rule struct {
	match func(key string) bool
	id    FixtureID
}

func containsAny(patterns ...string) func(string) bool {
	return func(key string) bool {
		for _, p := range patterns {
			if strings.Contains(key, p) {
				return true
			}
		}
		return false
	}
}

// Evaluated in order; the first match wins. An input such as "BTC700"
// matches two rules and resolves to the earlier one.
var rules = []rule{
	{match: containsAny("600519", "茅台"), id: FixtureMoutai},
	{match: containsAny("BTC", "BITCOIN"), id: FixtureBitcoin},
	{match: containsAny("000001", "平安"), id: FixturePingAn},
	{match: containsAny("GOLD", "黄金"), id: FixtureGold},
	{match: containsAny("700", "腾讯"), id: FixtureTencent},
}

// Classify maps a free-form user input to a fixture. Matching is
// case-insensitive substring search over the upper-cased input.
func Classify(input string) FixtureID {
	key := normalizeInput(input)
	for _, r := range rules {
		if r.match(key) {
			return r.id
		}
	}
	return FixtureDefault
}

func normalizeInput(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
