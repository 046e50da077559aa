package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrRowNotFound    = errors.New("storage: registration row not found")
	ErrUnknownColumn  = errors.New("storage: column cannot be updated")
	ErrBadSequenceTag = errors.New("storage: sequence number must look like #N")
)

// Registration is one row of the registration table. Rank columns hold display
// text, not structured standings.
type Registration struct {
	RowIndex       int64  `db:"row_id"`
	SequenceNumber string `db:"sequence_number"`
	DiscordID      string `db:"discord_id"`
	Username       string `db:"username"`
	RiotID         string `db:"riot_id"`
	Region         string `db:"region"`
	SoloQ          string `db:"soloq"`
	Flex           string `db:"flex"`
	TFT            string `db:"tft"`
	RegisteredAt   string `db:"registered_at"`
	PUUID          string `db:"puuid"`
	Color          string `db:"color"`
}

type Column string

const (
	ColumnUsername Column = "username"
	ColumnRiotID   Column = "riot_id"
	ColumnRegion   Column = "region"
	ColumnSoloQ    Column = "soloq"
	ColumnFlex     Column = "flex"
	ColumnTFT      Column = "tft"
	ColumnPUUID    Column = "puuid"
	ColumnColor    Column = "color"
)

var updatableColumns = map[Column]bool{
	ColumnUsername: true,
	ColumnRiotID:   true,
	ColumnRegion:   true,
	ColumnSoloQ:    true,
	ColumnFlex:     true,
	ColumnTFT:      true,
	ColumnPUUID:    true,
	ColumnColor:    true,
}

func (c Column) Valid() bool {
	return updatableColumns[c]
}

func FormatSequenceNumber(n int64) string {
	return "#" + strconv.FormatInt(n, 10)
}

// ParseSequenceNumber accepts "#N" or "N".
func ParseSequenceNumber(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadSequenceTag, s)
	}
	return n, nil
}
