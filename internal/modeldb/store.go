package modeldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports a model or run id with no database record.
var ErrNotFound = errors.New("model record not found")

// CoolingRecord is the stellar parameter set a cooling model was
// computed with. Radii are stored in centimetres, exactly as the solver
// echoes them.
type CoolingRecord struct {
	ModelID         string
	TStar           float64
	RStarCM         float64
	MdotGas         float64
	TemdustFilename string
	CreatedAt       time.Time
}

// LineRun is one ray-traced transition run registered against a cooling
// model.
type LineRun struct {
	ID        string
	ModelID   string
	Molecule  string
	RunKey    string
	CreatedAt time.Time
}

// DB manages model run persistence backed by SQLite.
type DB struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the model database and applies
// migrations. The parent directory is created when missing.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure database dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	d := &DB{db: db, path: path, lock: flock.New(path + ".lock")}
	if err := d.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// NewModelID returns a fresh cooling model id in the solver's
// timestamped naming scheme.
func NewModelID(t time.Time) string {
	return t.UTC().Format("model_2006-01-02h15-04-05")
}

// AddCooling registers a finished cooling model. Re-registering an
// existing id overwrites its parameters.
func (d *DB) AddCooling(ctx context.Context, rec CoolingRecord) error {
	if rec.ModelID == "" {
		return fmt.Errorf("cooling record needs a model id")
	}
	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("lock model db: %w", err)
	}
	defer func() {
		_ = d.lock.Unlock()
	}()

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := d.db.ExecContext(
		ctx,
		`INSERT INTO cooling_models (model_id, t_star, r_star_cm, mdot_gas, temdust_filename, created_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(model_id) DO UPDATE SET
             t_star = excluded.t_star,
             r_star_cm = excluded.r_star_cm,
             mdot_gas = excluded.mdot_gas,
             temdust_filename = excluded.temdust_filename`,
		rec.ModelID,
		rec.TStar,
		rec.RStarCM,
		rec.MdotGas,
		rec.TemdustFilename,
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert cooling model: %w", err)
	}
	return nil
}

// LookupCooling returns the record of one cooling model.
func (d *DB) LookupCooling(ctx context.Context, modelID string) (*CoolingRecord, error) {
	row := d.db.QueryRowContext(
		ctx,
		`SELECT model_id, t_star, r_star_cm, mdot_gas, temdust_filename, created_at
         FROM cooling_models WHERE model_id = ?`,
		modelID,
	)
	rec, err := scanCooling(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cooling model %s", ErrNotFound, modelID)
	}
	return rec, err
}

// ListCooling returns all cooling models, newest first.
func (d *DB) ListCooling(ctx context.Context) ([]*CoolingRecord, error) {
	rows, err := d.db.QueryContext(
		ctx,
		`SELECT model_id, t_star, r_star_cm, mdot_gas, temdust_filename, created_at
         FROM cooling_models ORDER BY created_at DESC, model_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list cooling models: %w", err)
	}
	defer rows.Close()

	var out []*CoolingRecord
	for rows.Next() {
		rec, err := scanCooling(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cooling models: %w", err)
	}
	return out, nil
}

// RegisterLineRun records a ray-traced transition run against a cooling
// model and returns its id. A duplicate run key on the same model
// returns the existing run unchanged.
func (d *DB) RegisterLineRun(ctx context.Context, modelID, molecule, runKey string) (*LineRun, error) {
	if err := d.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock model db: %w", err)
	}
	defer func() {
		_ = d.lock.Unlock()
	}()

	now := time.Now().UTC()
	run := &LineRun{
		ID:        uuid.NewString(),
		ModelID:   modelID,
		Molecule:  molecule,
		RunKey:    runKey,
		CreatedAt: now,
	}
	_, err := d.db.ExecContext(
		ctx,
		`INSERT INTO line_runs (id, model_id, molecule, run_key, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(model_id, run_key) DO NOTHING`,
		run.ID,
		run.ModelID,
		run.Molecule,
		run.RunKey,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert line run: %w", err)
	}
	return d.LookupLineRun(ctx, modelID, runKey)
}

// LookupLineRun returns the run registered for a run key on one model.
func (d *DB) LookupLineRun(ctx context.Context, modelID, runKey string) (*LineRun, error) {
	row := d.db.QueryRowContext(
		ctx,
		`SELECT id, model_id, molecule, run_key, created_at
         FROM line_runs WHERE model_id = ? AND run_key = ?`,
		modelID, runKey,
	)
	run, err := scanLineRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: line run %q on %s", ErrNotFound, runKey, modelID)
	}
	return run, err
}

// ListLineRuns returns the runs registered against one cooling model.
func (d *DB) ListLineRuns(ctx context.Context, modelID string) ([]*LineRun, error) {
	rows, err := d.db.QueryContext(
		ctx,
		`SELECT id, model_id, molecule, run_key, created_at
         FROM line_runs WHERE model_id = ? ORDER BY created_at, run_key`,
		modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("list line runs: %w", err)
	}
	defer rows.Close()

	var out []*LineRun
	for rows.Next() {
		run, err := scanLineRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line runs: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCooling(row rowScanner) (*CoolingRecord, error) {
	var rec CoolingRecord
	var created string
	if err := row.Scan(&rec.ModelID, &rec.TStar, &rec.RStarCM, &rec.MdotGas, &rec.TemdustFilename, &created); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}

func scanLineRun(row rowScanner) (*LineRun, error) {
	var run LineRun
	var created string
	if err := row.Scan(&run.ID, &run.ModelID, &run.Molecule, &run.RunKey, &created); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts
	return &run, nil
}
