package riot

import (
	"errors"
	"strings"
)

type Region string

const (
	LAN Region = "LAN"
	LAS Region = "LAS"
	NA  Region = "NA"
	BR  Region = "BR"
)

// RoutingAmericas is the regional routing value shared by every supported region.
const RoutingAmericas = "americas"

var ErrInvalidRegion = errors.New("riot: unsupported region")

var Regions = []Region{LAN, LAS, NA, BR}

var platforms = map[Region]string{
	LAN: "la1",
	LAS: "la2",
	NA:  "na1",
	BR:  "br1",
}

// ParseRegion accepts a region code in any case, surrounded by optional whitespace.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := platforms[r]; !ok {
		return "", ErrInvalidRegion
	}
	return r, nil
}

func (r Region) Platform() string {
	return platforms[r]
}

func (r Region) Routing() string {
	return RoutingAmericas
}

func (r Region) String() string {
	return string(r)
}
