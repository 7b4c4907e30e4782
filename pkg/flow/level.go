package flow

import (
	"fmt"

	"github.com/transferflow/transferflow/pkg/network"
)

// Level selects the aggregation granularity for category extraction.
type Level string

// Aggregation levels, finest to coarsest.
const (
	LevelClub      Level = "club"
	LevelLeague    Level = "league"
	LevelCountry   Level = "country"
	LevelContinent Level = "continent"
)

// ValidLevels is the set of supported aggregation levels.
var ValidLevels = map[Level]bool{
	LevelClub:      true,
	LevelLeague:    true,
	LevelCountry:   true,
	LevelContinent: true,
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !ValidLevels[l] {
		return "", fmt.Errorf("invalid level: %q (must be one of: club, league, country, continent)", s)
	}
	return l, nil
}

// Category maps a node to its category label at this level.
//
// Category is pure and never fails: a node with a missing attribute falls
// back to an explicit "Unknown <Level>" label instead of an error, so clubs
// with incomplete metadata still aggregate into a visible bucket.
func (l Level) Category(n *network.Node) string {
	var attr string
	switch l {
	case LevelLeague:
		attr = n.League
	case LevelCountry:
		attr = n.Country
	case LevelContinent:
		attr = n.Continent
	default: // club, the finest level
		attr = n.DisplayName()
	}
	if attr == "" {
		return l.unknownLabel()
	}
	return attr
}

// unknownLabel returns the fallback category for nodes missing the
// attribute this level aggregates by.
func (l Level) unknownLabel() string {
	switch l {
	case LevelLeague:
		return "Unknown League"
	case LevelCountry:
		return "Unknown Country"
	case LevelContinent:
		return "Unknown Continent"
	default:
		return "Unknown Club"
	}
}
