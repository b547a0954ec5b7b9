package recorder

import (
	"context"
	"database/sql"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"FishingDay/internal/game"
)

// SQLiteRecorder persists the day journal to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// WAL so the journal can be inspected while a session is still writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS days (
			id             TEXT PRIMARY KEY,
			session_id     TEXT NOT NULL,
			day            INTEGER NOT NULL,
			choice         TEXT,
			pole_size      TEXT,
			red_pct        INTEGER,
			blue_pct       INTEGER,
			green_pct      INTEGER,
			fish_total     INTEGER,
			opening_wealth INTEGER,
			closing_wealth INTEGER,
			did_fish       INTEGER,
			outcome        TEXT,
			reason         TEXT,
			earned         INTEGER,
			started_at     INTEGER,
			ended_at       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_days_session ON days(session_id, day)`,

		`CREATE TABLE IF NOT EXISTS casts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			day_id     TEXT NOT NULL REFERENCES days(id),
			seq        INTEGER NOT NULL,
			bait_color TEXT,
			caught     INTEGER,
			fish_size  TEXT,
			fish_color TEXT,
			value      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_casts_day ON casts(day_id)`,

		`CREATE TABLE IF NOT EXISTS purchases (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			day_id   TEXT NOT NULL REFERENCES days(id),
			seq      INTEGER NOT NULL,
			item     TEXT,
			price    INTEGER,
			accepted INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_day ON purchases(day_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrapf(err, "exec %q", s[:40])
		}
	}
	return nil
}

// RecordDay writes the day row with its casts and purchases in one transaction.
func (r *SQLiteRecorder) RecordDay(ctx context.Context, rep game.DayReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	pole := ""
	if rep.Pole != nil {
		pole = rep.Pole.Size.String()
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO days
		(id, session_id, day, choice, pole_size, red_pct, blue_pct, green_pct, fish_total,
		 opening_wealth, closing_wealth, did_fish, outcome, reason, earned, started_at, ended_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rep.DayID, rep.SessionID, rep.Day, rep.Choice.String(), pole,
		rep.Forecast.RedPercentage, rep.Forecast.BluePercentage, rep.Forecast.GreenPercentage,
		rep.Forecast.Total(),
		rep.OpeningWealth, rep.ClosingWealth, rep.DidFish,
		string(rep.Outcome), string(rep.Reason), rep.Earned(),
		rep.StartedAt.Unix(), rep.EndedAt.Unix(),
	)
	if err != nil {
		return errors.Wrapf(err, "insert day %d", rep.Day)
	}

	for i, c := range rep.Casts {
		var size, color string
		if c.Caught {
			size, color = c.Fish.Size.String(), c.Fish.Color.String()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO casts
			(day_id, seq, bait_color, caught, fish_size, fish_color, value)
			VALUES (?,?,?,?,?,?,?)`,
			rep.DayID, i+1, c.Color.String(), c.Caught, size, color, c.Reward(),
		); err != nil {
			return errors.Wrapf(err, "insert cast %d", i+1)
		}
	}

	for i, p := range rep.Purchases {
		if _, err := tx.ExecContext(ctx, `INSERT INTO purchases
			(day_id, seq, item, price, accepted)
			VALUES (?,?,?,?,?)`,
			rep.DayID, i+1, p.Item, p.Price, p.Accepted,
		); err != nil {
			return errors.Wrapf(err, "insert purchase %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	r.log.Debug("day recorded",
		zap.String("session", rep.SessionID),
		zap.Int("day", rep.Day),
		zap.Int("casts", len(rep.Casts)),
		zap.Int("purchases", len(rep.Purchases)),
	)
	return nil
}

// Summary totals the recorded days of a session, leaving out the day the player quit.
func (r *SQLiteRecorder) Summary(ctx context.Context, sessionID string) (Summary, error) {
	var s Summary
	err := r.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(outcome = 'WIN'), 0),
			COALESCE(SUM(outcome = 'LOSE'), 0),
			COALESCE(SUM(outcome = 'TIE'), 0),
			COALESCE(SUM(earned), 0)
		FROM days WHERE session_id = ? AND reason != ?`, sessionID, string(game.EndQuit),
	).Scan(&s.Days, &s.Wins, &s.Losses, &s.Ties, &s.Earned)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "summary for session %s", sessionID)
	}
	return s, nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
