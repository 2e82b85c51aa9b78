package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"StarSpin/internal/domain/models"
	domainrepo "StarSpin/internal/domain/repository"
)

// ClickHouseResultStore persists classification results and their
// significant peaks, and serves the read API.
type ClickHouseResultStore struct {
	db         *sql.DB
	table      string
	peaksTable string
}

// NewClickHouseResultStore creates a ClickHouse-backed result store.
func NewClickHouseResultStore(db *sql.DB, table, peaksTable string) domainrepo.Store {
	return &ClickHouseResultStore{db: db, table: table, peaksTable: peaksTable}
}

// Init ensures the result tables exist (idempotent).
func (s *ClickHouseResultStore) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			target String,
			file String,
			aperture Int32,
			fund_period Float64,
			fund_power Float64,
			sig_period Float64,
			sig_power Float64,
			sec_period Float64,
			sec_power Float64,
			num_sig Int32,
			harm_type LowCardinality(String),
			threshold Float64,
			created_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(created_at)
		ORDER BY target`, s.table),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			target String,
			period Float64,
			power Float64,
			threshold Float64,
			created_at DateTime DEFAULT now()
		) ENGINE = MergeTree
		ORDER BY (target, period)`, s.peaksTable),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init result schema: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseResultStore) Store(ctx context.Context, res *models.RotationResult) error {
	row := res.Row()

	q := fmt.Sprintf(`INSERT INTO %s
		(target, file, aperture, fund_period, fund_power, sig_period, sig_power,
		 sec_period, sec_power, num_sig, harm_type, threshold, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	if _, err := s.db.ExecContext(ctx, q,
		row.Target, row.File, int32(row.Aperture),
		row.FundPeriod, row.FundPower,
		row.SigPeriod, row.SigPower,
		row.SecPeriod, row.SecPower,
		int32(row.NumSig), row.HarmType, row.Threshold,
		time.Now(),
	); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	if len(res.SigPeaks) == 0 {
		return nil
	}

	values := make([]string, 0, len(res.SigPeaks))
	args := make([]interface{}, 0, len(res.SigPeaks)*4)
	for _, p := range res.SigPeaks {
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, row.Target, p.Period, p.Power, res.Threshold)
	}
	q = fmt.Sprintf("INSERT INTO %s (target, period, power, threshold) VALUES %s",
		s.peaksTable, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert peaks: %w", err)
	}
	return nil
}

func (s *ClickHouseResultStore) Get(ctx context.Context, target string) (*models.ResultRow, error) {
	q := fmt.Sprintf(`SELECT target, file, aperture, fund_period, fund_power,
		sig_period, sig_power, sec_period, sec_power, num_sig, harm_type, threshold
		FROM %s FINAL WHERE target = ? LIMIT 1`, s.table)

	var row models.ResultRow
	var aperture, numSig int32
	err := s.db.QueryRowContext(ctx, q, target).Scan(
		&row.Target, &row.File, &aperture,
		&row.FundPeriod, &row.FundPower,
		&row.SigPeriod, &row.SigPower,
		&row.SecPeriod, &row.SecPower,
		&numSig, &row.HarmType, &row.Threshold,
	)
	if err != nil {
		return nil, err
	}
	row.Aperture = int(aperture)
	row.NumSig = int(numSig)
	return &row, nil
}

func (s *ClickHouseResultStore) List(ctx context.Context, harmType string, limit, offset int) ([]models.ResultRow, int64, error) {
	where := ""
	args := []interface{}{}
	if harmType != "" {
		where = "WHERE harm_type = ?"
		args = append(args, harmType)
	}

	var total int64
	countQ := fmt.Sprintf("SELECT count() FROM %s FINAL %s", s.table, where)
	if err := s.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count results: %w", err)
	}

	q := fmt.Sprintf(`SELECT target, file, aperture, fund_period, fund_power,
		sig_period, sig_power, sec_period, sec_power, num_sig, harm_type, threshold
		FROM %s FINAL %s ORDER BY target LIMIT ? OFFSET ?`, s.table, where)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []models.ResultRow
	for rows.Next() {
		var row models.ResultRow
		var aperture, numSig int32
		if err := rows.Scan(
			&row.Target, &row.File, &aperture,
			&row.FundPeriod, &row.FundPower,
			&row.SigPeriod, &row.SigPower,
			&row.SecPeriod, &row.SecPower,
			&numSig, &row.HarmType, &row.Threshold,
		); err != nil {
			return nil, 0, err
		}
		row.Aperture = int(aperture)
		row.NumSig = int(numSig)
		out = append(out, row)
	}
	return out, total, rows.Err()
}

func (s *ClickHouseResultStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseResultStore) Close() error {
	return nil // Managed by pkg
}
