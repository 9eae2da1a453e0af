package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Outcomes stored in match_history. Aborted covers runs stopped by a signal
// or by the configured max duration before the game decided.
const (
	OutcomeWin     = "win"
	OutcomeLoss    = "loss"
	OutcomeAborted = "aborted"
)

// WaveRecord is one started wave of a match.
type WaveRecord struct {
	Index   int
	Enemies int
	Started time.Duration
}

// MatchResult is the summary written when a match ends.
type MatchResult struct {
	Outcome      string
	Elapsed      time.Duration
	Ticks        uint64
	Power        float64
	Structures   int
	Seed         int64
	Waves        []WaveRecord
	WavesStarted int // len(Waves) when zero
}

// MatchRow is a stored match_history row.
type MatchRow struct {
	ID             int64
	Outcome        string
	ElapsedSeconds float64
	Ticks          int64
	Power          float64
	WavesStarted   int32
	Structures     int32
	Seed           int64
	FinishedAt     time.Time
}

func (m MatchResult) validate() error {
	switch m.Outcome {
	case OutcomeWin, OutcomeLoss, OutcomeAborted:
	default:
		return fmt.Errorf("unknown outcome %q", m.Outcome)
	}
	if m.Elapsed < 0 {
		return errors.New("negative elapsed time")
	}
	return nil
}

func (m MatchResult) wavesStarted() int {
	if m.WavesStarted > 0 {
		return m.WavesStarted
	}
	return len(m.Waves)
}

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Record writes the match and its wave log in one transaction and returns
// the new match id.
func (r *MatchRepo) Record(ctx context.Context, m MatchResult) (int64, error) {
	if err := m.validate(); err != nil {
		return 0, fmt.Errorf("match record: %w", err)
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("match begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO match_history (outcome, elapsed_seconds, ticks, power, waves_started, structures, seed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		m.Outcome, m.Elapsed.Seconds(), int64(m.Ticks), m.Power, m.wavesStarted(), m.Structures, m.Seed,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("match insert: %w", err)
	}

	for _, w := range m.Waves {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_waves (match_id, wave_index, enemies, started_seconds)
			 VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			id, w.Index, w.Enemies, w.Started.Seconds(),
		); err != nil {
			return 0, fmt.Errorf("match wave insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("match commit: %w", err)
	}
	r.db.log.Debug("match recorded")
	return id, nil
}

// Recent returns up to limit matches, newest first.
func (r *MatchRepo) Recent(ctx context.Context, limit int) ([]MatchRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, outcome, elapsed_seconds, ticks, power, waves_started, structures, seed, finished_at
		 FROM match_history ORDER BY finished_at DESC, id DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRow
	for rows.Next() {
		var row MatchRow
		if err := rows.Scan(
			&row.ID, &row.Outcome, &row.ElapsedSeconds, &row.Ticks, &row.Power,
			&row.WavesStarted, &row.Structures, &row.Seed, &row.FinishedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Load returns one match by id, or nil if it does not exist.
func (r *MatchRepo) Load(ctx context.Context, id int64) (*MatchRow, error) {
	row := &MatchRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, outcome, elapsed_seconds, ticks, power, waves_started, structures, seed, finished_at
		 FROM match_history WHERE id = $1`, id,
	).Scan(
		&row.ID, &row.Outcome, &row.ElapsedSeconds, &row.Ticks, &row.Power,
		&row.WavesStarted, &row.Structures, &row.Seed, &row.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
