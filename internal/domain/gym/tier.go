package gym

import (
	"fmt"
	"strconv"
	"strings"
)

type Tier int

const (
	TierNone Tier = iota
	TierStandard
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "None"
	case TierStandard:
		return "Standard"
	case TierPremium:
		return "Premium"
	default:
		return "Tier(" + strconv.Itoa(int(t)) + ")"
	}
}

func (t Tier) Valid() bool {
	return t >= TierNone && t <= TierPremium
}

// ParseTier normalizes free-text tier input. Matching is case-insensitive and
// accepts the tier name, a prefix abbreviation or the numeric code.
func ParseTier(input string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "0", "n", "no", "none":
		return TierNone, nil
	case "1", "s", "std", "stand", "standard":
		return TierStandard, nil
	case "2", "p", "prem", "premium":
		return TierPremium, nil
	}
	return TierNone, fmt.Errorf("%w: %q", ErrInvalidTier, input)
}
