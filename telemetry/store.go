package telemetry

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/pthm-cable/predprey/config"
)

// RunStore is an SQLite ledger of runs, their window stats, and captures.
// Several runs can share one database file.
type RunStore struct {
	conn *sqlx.DB
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID            string `db:"id"`
	StartedAt     string `db:"started_at"`
	FinishedAt    string `db:"finished_at"`
	Seed          int64  `db:"seed"`
	Prey          int    `db:"prey"`
	Predators     int    `db:"predators"`
	Ticks         int32  `db:"ticks"`
	CapturesTotal int    `db:"captures_total"`
	ConfigYAML    string `db:"config_yaml"`
}

// windowRow ties a WindowStats record to its run.
type windowRow struct {
	RunID string `db:"run_id"`
	WindowStats
}

// captureRow ties a CaptureEvent to its run.
type captureRow struct {
	RunID string `db:"run_id"`
	CaptureEvent
}

// OpenRunStore opens or creates a run ledger at the given path.
// Returns nil if path is empty (ledger disabled).
func OpenRunStore(path string) (*RunStore, error) {
	if path == "" {
		return nil, nil
	}

	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}

	s := &RunStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate run store: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	if s == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *RunStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL DEFAULT '',
		seed INTEGER NOT NULL,
		prey INTEGER NOT NULL,
		predators INTEGER NOT NULL,
		ticks INTEGER NOT NULL DEFAULT 0,
		captures_total INTEGER NOT NULL DEFAULT 0,
		config_yaml TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS windows (
		run_id TEXT NOT NULL,
		window_start INTEGER NOT NULL,
		window_end INTEGER NOT NULL,
		prey INTEGER NOT NULL,
		pred INTEGER NOT NULL,
		captures INTEGER NOT NULL,
		captures_total INTEGER NOT NULL,
		capture_rate REAL NOT NULL,
		survival_mean REAL NOT NULL,
		polarization REAL NOT NULL,
		neighbor_dist_mean REAL NOT NULL,
		neighbor_dist_std REAL NOT NULL,
		neighbor_dist_p10 REAL NOT NULL,
		neighbor_dist_p50 REAL NOT NULL,
		neighbor_dist_p90 REAL NOT NULL,
		predator_dist_mean REAL NOT NULL,
		predator_dist_min REAL NOT NULL,
		PRIMARY KEY (run_id, window_end)
	);

	CREATE TABLE IF NOT EXISTS captures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		predator_id INTEGER NOT NULL,
		prey_id INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		survival_ticks INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_captures_run ON captures(run_id, tick);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// BeginRun records the start of a run with its seed and configuration.
func (s *RunStore) BeginRun(runID string, seed int64, cfg *config.Config) error {
	if s == nil {
		return nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err := s.conn.NamedExec(`INSERT INTO runs
		(id, started_at, seed, prey, predators, config_yaml)
		VALUES (:id, :started_at, :seed, :prey, :predators, :config_yaml)`,
		RunRecord{
			ID:         runID,
			StartedAt:  time.Now().UTC().Format(time.RFC3339),
			Seed:       seed,
			Prey:       cfg.Prey.Number,
			Predators:  cfg.Predator.Number,
			ConfigYAML: buf.String(),
		})
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// SaveWindow appends one window of stats to a run.
func (s *RunStore) SaveWindow(runID string, stats WindowStats) error {
	if s == nil {
		return nil
	}
	_, err := s.conn.NamedExec(`INSERT OR REPLACE INTO windows
		(run_id, window_start, window_end, prey, pred, captures, captures_total,
		 capture_rate, survival_mean, polarization,
		 neighbor_dist_mean, neighbor_dist_std, neighbor_dist_p10, neighbor_dist_p50, neighbor_dist_p90,
		 predator_dist_mean, predator_dist_min)
		VALUES (:run_id, :window_start, :window_end, :prey, :pred, :captures, :captures_total,
		 :capture_rate, :survival_mean, :polarization,
		 :neighbor_dist_mean, :neighbor_dist_std, :neighbor_dist_p10, :neighbor_dist_p50, :neighbor_dist_p90,
		 :predator_dist_mean, :predator_dist_min)`,
		windowRow{RunID: runID, WindowStats: stats})
	if err != nil {
		return fmt.Errorf("insert window: %w", err)
	}
	return nil
}

// SaveCaptures appends capture events to a run.
func (s *RunStore) SaveCaptures(runID string, events []CaptureEvent) error {
	if s == nil || len(events) == 0 {
		return nil
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ev := range events {
		_, err := tx.NamedExec(`INSERT INTO captures
			(run_id, tick, predator_id, prey_id, x, y, survival_ticks)
			VALUES (:run_id, :tick, :predator_id, :prey_id, :x, :y, :survival_ticks)`,
			captureRow{RunID: runID, CaptureEvent: ev})
		if err != nil {
			return fmt.Errorf("insert capture: %w", err)
		}
	}

	return tx.Commit()
}

// FinishRun stamps the end of a run with its final tick and capture count.
func (s *RunStore) FinishRun(runID string, ticks int32, capturesTotal int) error {
	if s == nil {
		return nil
	}
	_, err := s.conn.Exec(
		"UPDATE runs SET finished_at = ?, ticks = ?, captures_total = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), ticks, capturesTotal, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	slog.Info("run recorded", "run_id", runID, "ticks", ticks, "captures", capturesTotal)
	return nil
}

// Runs returns every recorded run, most recent first.
func (s *RunStore) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	err := s.conn.Select(&runs,
		`SELECT id, started_at, finished_at, seed, prey, predators, ticks, captures_total, config_yaml
		 FROM runs ORDER BY started_at DESC, id`)
	return runs, err
}

// Windows returns the window stats of a run in tick order.
func (s *RunStore) Windows(runID string) ([]WindowStats, error) {
	var stats []WindowStats
	err := s.conn.Select(&stats,
		`SELECT window_start, window_end, prey, pred, captures, captures_total,
		 capture_rate, survival_mean, polarization,
		 neighbor_dist_mean, neighbor_dist_std, neighbor_dist_p10, neighbor_dist_p50, neighbor_dist_p90,
		 predator_dist_mean, predator_dist_min
		 FROM windows WHERE run_id = ? ORDER BY window_end`,
		runID)
	return stats, err
}

// Captures returns the capture events of a run in tick order.
func (s *RunStore) Captures(runID string) ([]CaptureEvent, error) {
	var events []CaptureEvent
	err := s.conn.Select(&events,
		`SELECT tick, predator_id, prey_id, x, y, survival_ticks
		 FROM captures WHERE run_id = ? ORDER BY tick, id`,
		runID)
	return events, err
}
