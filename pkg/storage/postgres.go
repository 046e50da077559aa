package storage

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

//go:embed postgres.sql
var schema string

const registrationColumns = "row_id, sequence_number, discord_id, username, riot_id, region, soloq, flex, tft, registered_at, puuid, color"

type PgxIface interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	Ping(context.Context) error
	Prepare(context.Context, string, string) (*pgconn.StatementDescription, error)
}

type PsqlInterface struct {
	Pool *pgxpool.Pool
}

func ConstructPsqlConnectURL(addr, username, password string) string {
	return fmt.Sprintf("postgres://%s?user=%s&password=%s", addr, username, password)
}

func (psqlInterface *PsqlInterface) Init(addr string) error {
	dbpool, err := pgxpool.Connect(context.Background(), addr)
	if err != nil {
		return err
	}
	psqlInterface.Pool = dbpool
	return nil
}

func (psqlInterface *PsqlInterface) Close() {
	if psqlInterface.Pool != nil {
		psqlInterface.Pool.Close()
	}
}

// EnsureSchema creates the registration table when it does not exist yet.
func (psqlInterface *PsqlInterface) EnsureSchema(ctx context.Context) error {
	_, err := psqlInterface.Pool.Exec(ctx, schema)
	return err
}

func (psqlInterface *PsqlInterface) LoadAndExecFromFile(ctx context.Context, filepath string) error {
	bytes, err := os.ReadFile(filepath)
	if err != nil {
		return err
	}
	_, err = psqlInterface.Pool.Exec(ctx, string(bytes))
	return err
}

func (psqlInterface *PsqlInterface) withConn(ctx context.Context, fn func(conn PgxIface) error) error {
	conn, err := psqlInterface.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return fn(conn.Conn())
}

func (psqlInterface *PsqlInterface) AppendRow(ctx context.Context, r *Registration) (rowIndex int64, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		rowIndex, err = appendRow(ctx, conn, r)
		return err
	})
	return rowIndex, err
}

func (psqlInterface *PsqlInterface) FindRowByUserID(ctx context.Context, discordID string) (r *Registration, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		r, err = findRowByUserID(ctx, conn, discordID)
		return err
	})
	return r, err
}

func (psqlInterface *PsqlInterface) FindRowBySequenceNumber(ctx context.Context, n int64) (r *Registration, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		r, err = findRowBySequenceNumber(ctx, conn, n)
		return err
	})
	return r, err
}

func (psqlInterface *PsqlInterface) UpdateCell(ctx context.Context, rowIndex int64, column Column, value string) error {
	return psqlInterface.withConn(ctx, func(conn PgxIface) error {
		return updateCell(ctx, conn, rowIndex, column, value)
	})
}

func (psqlInterface *PsqlInterface) NextSequenceNumber(ctx context.Context) (seq string, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		seq, err = nextSequenceNumber(ctx, conn)
		return err
	})
	return seq, err
}

func (psqlInterface *PsqlInterface) CountRows(ctx context.Context) (count int64, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		count, err = countRows(ctx, conn)
		return err
	})
	return count, err
}

func (psqlInterface *PsqlInterface) AllUserIDs(ctx context.Context) (ids []string, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		ids, err = allUserIDs(ctx, conn)
		return err
	})
	return ids, err
}

func (psqlInterface *PsqlInterface) AllRows(ctx context.Context) (rows []*Registration, err error) {
	err = psqlInterface.withConn(ctx, func(conn PgxIface) error {
		rows, err = allRows(ctx, conn)
		return err
	})
	return rows, err
}

func appendRow(ctx context.Context, conn PgxIface, r *Registration) (int64, error) {
	t, err := conn.Query(ctx,
		"INSERT INTO registrations (sequence_number, discord_id, username, riot_id, region, soloq, flex, tft, registered_at, puuid, color) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING row_id;",
		r.SequenceNumber, r.DiscordID, r.Username, r.RiotID, r.Region, r.SoloQ, r.Flex, r.TFT, r.RegisteredAt, r.PUUID, r.Color)
	if err != nil {
		return 0, err
	}
	defer t.Close()
	if !t.Next() {
		if err := t.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("insert registration for %s returned no row", r.DiscordID)
	}
	var rowIndex int64
	if err := t.Scan(&rowIndex); err != nil {
		return 0, err
	}
	return rowIndex, nil
}

func findRowByUserID(ctx context.Context, conn PgxIface, discordID string) (*Registration, error) {
	var rows []*Registration
	err := pgxscan.Select(ctx, conn, &rows, "SELECT "+registrationColumns+" FROM registrations WHERE discord_id = $1", discordID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func findRowBySequenceNumber(ctx context.Context, conn PgxIface, n int64) (*Registration, error) {
	var rows []*Registration
	err := pgxscan.Select(ctx, conn, &rows, "SELECT "+registrationColumns+" FROM registrations WHERE sequence_number = $1", FormatSequenceNumber(n))
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows[0], nil
	}
	return nil, nil
}

func updateCell(ctx context.Context, conn PgxIface, rowIndex int64, column Column, value string) error {
	if !column.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	tag, err := conn.Exec(ctx, fmt.Sprintf("UPDATE registrations SET %s = $1 WHERE row_id = $2;", column), value, rowIndex)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

func countRows(ctx context.Context, conn PgxIface) (int64, error) {
	var count int64
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM registrations;").Scan(&count)
	return count, err
}

// nextSequenceNumber is "#<row count>", so the first registration is #0.
func nextSequenceNumber(ctx context.Context, conn PgxIface) (string, error) {
	count, err := countRows(ctx, conn)
	if err != nil {
		return "", err
	}
	return FormatSequenceNumber(count), nil
}

func allUserIDs(ctx context.Context, conn PgxIface) ([]string, error) {
	rows, err := conn.Query(ctx, "SELECT discord_id FROM registrations ORDER BY row_id ASC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func allRows(ctx context.Context, conn PgxIface) ([]*Registration, error) {
	var rows []*Registration
	err := pgxscan.Select(ctx, conn, &rows, "SELECT "+registrationColumns+" FROM registrations ORDER BY row_id ASC")
	return rows, err
}
