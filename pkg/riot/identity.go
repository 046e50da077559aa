package riot

import (
	"errors"
	"strings"
)

var (
	ErrMissingTag      = errors.New("riot: riot id has no #tag")
	ErrMalformedRiotID = errors.New("riot: riot id needs both a name and a tag")
)

// Identity is what a player registers with: gameName#tagLine plus a region.
type Identity struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	Region   Region `json:"region"`
}

func (i Identity) RiotID() string {
	return i.GameName + "#" + i.TagLine
}

// ParseRiotID splits "name#tag" on the first '#'. Both sides must be non-empty.
func ParseRiotID(s string) (gameName, tagLine string, err error) {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, "#")
	if idx < 0 {
		return "", "", ErrMissingTag
	}
	gameName = strings.TrimSpace(s[:idx])
	tagLine = strings.TrimSpace(s[idx+1:])
	if gameName == "" || tagLine == "" {
		return "", "", ErrMalformedRiotID
	}
	return gameName, tagLine, nil
}

// Handle is the LoL-scoped puuid of an account.
type Handle string

// TFTHandle is the puuid issued under the TFT key. It is never interchangeable with Handle.
type TFTHandle string
