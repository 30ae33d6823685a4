// Package store archives SED runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-sed/sed"
	"github.com/cwbudde/algo-sed/sed/bins"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("store: run not found")

// Run is one archived SED computation.
type Run struct {
	ID        int64
	Source    string
	Model     string
	CreatedAt time.Time
	Emin      float64 // MeV
	Emax      float64 // MeV
	Points    int

	Decorrelation sed.Decorrelation
}

// Bin is one archived energy-bin point of a run.
type Bin struct {
	Index          int
	Energy         float64
	EnergyErrMinus float64
	EnergyErrPlus  float64
	Flux           float64
	FluxErrMinus   float64
	FluxErrPlus    float64
	UpperLimit     bool
	Valid          bool
	ErrorKind      string
}

// BinsFromPoints converts aggregated bin points into archive rows, one per
// bin including invalid ones.
func BinsFromPoints(p *bins.Points) []Bin {
	if p == nil {
		return nil
	}
	out := make([]Bin, p.Len())
	for i := range out {
		out[i] = Bin{
			Index:          i,
			Energy:         p.Energy[i],
			EnergyErrMinus: p.EnergyErrMinus[i],
			EnergyErrPlus:  p.EnergyErrPlus[i],
			Flux:           p.Flux[i],
			FluxErrMinus:   p.FluxErrMinus[i],
			FluxErrPlus:    p.FluxErrPlus[i],
			UpperLimit:     p.UpperLimit[i],
			Valid:          p.Valid[i],
			ErrorKind:      p.ErrorKind[i].String(),
		}
	}
	return out
}

// Store wraps SQLite access for archived runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sed_runs (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			model TEXT NOT NULL,
			created_at TEXT NOT NULL,
			emin REAL NOT NULL,
			emax REAL NOT NULL,
			points INTEGER NOT NULL,
			decorr_index INTEGER NOT NULL,
			decorr_energy REAL,
			decorr_flux REAL,
			decorr_flux_err REAL,
			decorr_sed REAL,
			decorr_sed_err REAL
		);`,
		`CREATE TABLE IF NOT EXISTS sed_bins (
			run_id INTEGER NOT NULL REFERENCES sed_runs(id) ON DELETE CASCADE,
			bin INTEGER NOT NULL,
			energy REAL NOT NULL,
			energy_err_minus REAL NOT NULL,
			energy_err_plus REAL NOT NULL,
			flux REAL NOT NULL,
			flux_err_minus REAL NOT NULL,
			flux_err_plus REAL NOT NULL,
			upper_limit INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			error_kind TEXT NOT NULL,
			PRIMARY KEY (run_id, bin)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sed_runs_source ON sed_runs(source, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its bins in one transaction and returns the
// new run id.
func (s *Store) InsertRun(ctx context.Context, run Run, binRows []Bin) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	d := run.Decorrelation
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sed_runs (source, model, created_at, emin, emax, points,
			decorr_index, decorr_energy, decorr_flux, decorr_flux_err, decorr_sed, decorr_sed_err)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Source,
		run.Model,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Emin,
		run.Emax,
		run.Points,
		d.Index,
		nullable(d.Energy),
		nullable(d.Flux),
		nullable(d.FluxError),
		nullable(d.SED),
		nullable(d.SEDError),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(binRows) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO sed_bins (run_id, bin, energy, energy_err_minus, energy_err_plus,
				flux, flux_err_minus, flux_err_plus, upper_limit, valid, error_kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() { _ = stmt.Close() }()

		for _, b := range binRows {
			if _, err := stmt.ExecContext(ctx, id, b.Index, b.Energy, b.EnergyErrMinus, b.EnergyErrPlus,
				b.Flux, b.FluxErrMinus, b.FluxErrPlus, b.UpperLimit, b.Valid, b.ErrorKind); err != nil {
				return 0, fmt.Errorf("store: insert bin %d: %w", b.Index, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return id, nil
}

// ListRuns returns the most recent runs, newest first. An empty source
// lists all sources; limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, source string, limit int) ([]Run, error) {
	query := `SELECT id, source, model, created_at, emin, emax, points,
			decorr_index, decorr_energy, decorr_flux, decorr_flux_err, decorr_sed, decorr_sed_err
		FROM sed_runs`
	args := []any{}
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, model, created_at, emin, emax, points,
			decorr_index, decorr_energy, decorr_flux, decorr_flux_err, decorr_sed, decorr_sed_err
		FROM sed_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return run, err
}

// Bins returns the bins of a run ordered by bin index.
func (s *Store) Bins(ctx context.Context, runID int64) ([]Bin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bin, energy, energy_err_minus, energy_err_plus, flux, flux_err_minus, flux_err_plus,
			upper_limit, valid, error_kind
		FROM sed_bins WHERE run_id = ? ORDER BY bin`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Bin
	for rows.Next() {
		var b Bin
		if err := rows.Scan(&b.Index, &b.Energy, &b.EnergyErrMinus, &b.EnergyErrPlus,
			&b.Flux, &b.FluxErrMinus, &b.FluxErrPlus, &b.UpperLimit, &b.Valid, &b.ErrorKind); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		created string
		energy  sql.NullFloat64
		flux    sql.NullFloat64
		fluxErr sql.NullFloat64
		sedVal  sql.NullFloat64
		sedErr  sql.NullFloat64
	)
	if err := sc.Scan(&run.ID, &run.Source, &run.Model, &created, &run.Emin, &run.Emax, &run.Points,
		&run.Decorrelation.Index, &energy, &flux, &fluxErr, &sedVal, &sedErr); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("store: run %d: created_at: %w", run.ID, err)
	}
	run.CreatedAt = t
	run.Decorrelation.Energy = fromNull(energy)
	run.Decorrelation.Flux = fromNull(flux)
	run.Decorrelation.FluxError = fromNull(fluxErr)
	run.Decorrelation.SED = fromNull(sedVal)
	run.Decorrelation.SEDError = fromNull(sedErr)
	return run, nil
}

// nullable maps non-finite values to SQL NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
