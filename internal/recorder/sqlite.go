package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the scheduler writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.WithField("component", "recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS asset_risk_snapshots (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp             INTEGER NOT NULL,
			asset_id              TEXT NOT NULL,
			symbol                TEXT,
			current_price         REAL,
			annualized_volatility REAL,
			max_drawdown          REAL,
			var_95                REAL,
			correlation_risk      REAL,
			risk_score            INTEGER,
			risk_level            TEXT,
			rsi_14                REAL,
			sma_50                REAL,
			sma_200               REAL,
			momentum_30d          REAL,
			signal                TEXT,
			confidence            REAL,
			trend_short           TEXT,
			trend_medium          TEXT,
			trend_long            TEXT,
			cycle_phase           TEXT,
			dca_grade             TEXT,
			dca_recommended_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_asset_risk_ts ON asset_risk_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_asset_risk_asset ON asset_risk_snapshots(asset_id)`,

		`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			risk_score      INTEGER,
			risk_level      TEXT,
			volatility      REAL,
			var_95          REAL,
			sharpe          REAL,
			max_drawdown    REAL,
			avg_correlation REAL,
			confidence      REAL,
			total_value     REAL,
			asset_count     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_ts ON portfolio_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAssetRisk(snap *AssetRiskSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	risk := snap.Risk
	var trendShort, trendMedium, trendLong string
	if snap.Trend != nil {
		trendShort = string(snap.Trend.ShortTerm.Direction)
		trendMedium = string(snap.Trend.MediumTerm.Direction)
		trendLong = string(snap.Trend.LongTerm.Direction)
	}
	var cyclePhase, dcaGrade string
	var dcaPrice float64
	if snap.DCA != nil {
		cyclePhase = string(snap.DCA.CyclePhase)
		dcaGrade = string(snap.DCA.CurrentGrade)
		dcaPrice = snap.DCA.DCARecommendedPrice
	}

	_, err := r.db.Exec(`INSERT INTO asset_risk_snapshots
		(timestamp, asset_id, symbol, current_price,
		 annualized_volatility, max_drawdown, var_95, correlation_risk,
		 risk_score, risk_level, rsi_14, sma_50, sma_200, momentum_30d,
		 signal, confidence, trend_short, trend_medium, trend_long,
		 cycle_phase, dca_grade, dca_recommended_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.AssetID, snap.Symbol, risk.Technicals.CurrentPrice,
		risk.Metrics.AnnualizedVolatility, risk.Metrics.MaxDrawdown,
		risk.Metrics.VaR95, risk.Metrics.CorrelationRisk,
		risk.RiskScore, string(risk.RiskLevel),
		risk.Technicals.RSI14, risk.Technicals.SMA50, risk.Technicals.SMA200,
		risk.Technicals.Momentum30d,
		string(risk.Signal), risk.Confidence,
		trendShort, trendMedium, trendLong,
		cyclePhase, dcaGrade, dcaPrice,
	)
	return err
}

func (r *SQLiteRecorder) RecordPortfolio(snap *PortfolioSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := snap.Summary
	_, err := r.db.Exec(`INSERT INTO portfolio_snapshots
		(timestamp, risk_score, risk_level, volatility, var_95, sharpe,
		 max_drawdown, avg_correlation, confidence, total_value, asset_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), s.RiskScore, string(s.RiskLevel),
		s.Volatility, s.VaR95, s.Sharpe,
		s.MaxDrawdown, s.AvgCorrelation, s.Confidence,
		snap.TotalValue, snap.AssetCount,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
