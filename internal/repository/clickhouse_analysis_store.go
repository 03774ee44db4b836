package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	pkgch "RiskDash/pkg/clickhouse"
	applogger "RiskDash/pkg/logger"
)

const analysisRunsTable = "riskdash.analysis_runs"

// AnalysisRunsSchema creates the analysis history table.
var AnalysisRunsSchema = []string{
	`CREATE DATABASE IF NOT EXISTS riskdash`,
	`CREATE TABLE IF NOT EXISTS riskdash.analysis_runs (
        run_id         String,
        view_id        String,
        symbol         LowCardinality(String),
        fixture        LowCardinality(String),
        signal_value   Float64,
        total_score    Float64,
        weighted_score Float64,
        stock_cycle    String,
        source         LowCardinality(String),
        created_at     DateTime64(3)
    ) ENGINE = MergeTree
    ORDER BY (symbol, created_at)`,
}

// CHAnalysisStore implements AnalysisHistory backed by ClickHouse.
type CHAnalysisStore struct {
	db *sql.DB
	l  *applogger.Logger
}

var _ domrepo.AnalysisHistory = (*CHAnalysisStore)(nil)

func NewCHAnalysisStore(ch *pkgch.Client) *CHAnalysisStore {
	return &CHAnalysisStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHAnalysisStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHAnalysisStore) Name() string { return "clickhouse" }

func (s *CHAnalysisStore) Record(ctx context.Context, run models.AnalysisRun, _ models.AnalysisResult) error {
	const q = `INSERT INTO ` + analysisRunsTable + `
        (run_id, view_id, symbol, fixture, signal_value, total_score, weighted_score, stock_cycle, source, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		run.RunID, run.ViewID, run.Symbol, run.Fixture,
		run.SignalValue, run.TotalScore, run.WeightedScore,
		run.StockCycle, run.Source, run.CreatedAt,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse record_analysis error",
				applogger.String("symbol", run.Symbol),
				applogger.String("run_id", run.RunID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("record analysis: %w", err)
	}
	return nil
}

// Recent lists the newest runs for symbol, newest first.
func (s *CHAnalysisStore) Recent(ctx context.Context, symbol string, limit int) ([]models.AnalysisRun, error) {
	start := time.Now()
	limit = clampLimit(limit, 20, 500)
	const q = `
        SELECT run_id, view_id, symbol, fixture, signal_value, total_score, weighted_score, stock_cycle, source, created_at
        FROM ` + analysisRunsTable + `
        WHERE symbol = ?
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("recent analyses: %w", err)
	}
	defer rows.Close()

	out := make([]models.AnalysisRun, 0, limit)
	for rows.Next() {
		var r models.AnalysisRun
		if err := rows.Scan(&r.RunID, &r.ViewID, &r.Symbol, &r.Fixture, &r.SignalValue,
			&r.TotalScore, &r.WeightedScore, &r.StockCycle, &r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse recent_analyses ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration", time.Since(start)),
		)
	}
	return out, nil
}

func clampLimit(n, def, max int) int {
	switch {
	case n <= 0:
		return def
	case n > max:
		return max
	default:
		return n
	}
}
