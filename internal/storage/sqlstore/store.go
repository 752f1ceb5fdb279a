// Package sqlstore implements storage.Storage on database/sql for SQLite
// (modernc.org/sqlite) and PostgreSQL (lib/pq).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/numengames/numinia-core/internal/model"
	"github.com/numengames/numinia-core/internal/storage"
)

// Dialect selects placeholder style and error decoding
type Dialect int

const (
	DialectSQLite Dialect = iota + 1
	DialectPostgres
)

func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// Store persists numinia records in a SQL database
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// OpenSQLite opens (creating if needed) a SQLite database file and applies
// the embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)
	return open(ctx, db, DialectSQLite)
}

// OpenPostgres connects to PostgreSQL and applies the embedded migrations
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	return open(ctx, db, DialectPostgres)
}

func open(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}
	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Player operations

const playerColumns = `id, oncyber_id, hyperfy_id, wallet_address, name, is_active, is_blocked, last_connection_at, created_at`

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		string(player.ID),
		nullString(player.OncyberID),
		nullString(player.HyperfyID),
		nullString(player.WalletAddress),
		player.Name,
		player.IsActive,
		player.IsBlocked,
		toMillis(player.LastConnectionAt),
		toMillis(player.CreatedAt),
	)
	if err != nil {
		if s.isUniqueViolation(err) {
			return model.ErrPlayerExists
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.queryPlayer(ctx, `id = ?`, string(id))
}

func (s *Store) FindPlayerByExternalID(ctx context.Context, field model.ExternalIDField, externalID string) (*model.Player, error) {
	var column string
	switch field {
	case model.FieldOncyberID:
		column = "oncyber_id"
	case model.FieldHyperfyID:
		column = "hyperfy_id"
	default:
		return nil, fmt.Errorf("unknown external id field %q", field)
	}
	return s.queryPlayer(ctx, column+` = ?`, externalID)
}

func (s *Store) FindPlayerByWallet(ctx context.Context, wallet string) (*model.Player, error) {
	return s.queryPlayer(ctx, `wallet_address = ?`, wallet)
}

func (s *Store) PlayerExistsByWallet(ctx context.Context, wallet string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM players WHERE wallet_address = ?`), wallet).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count players by wallet: %w", err)
	}
	return n > 0, nil
}

func (s *Store) queryPlayer(ctx context.Context, where string, arg any) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+playerColumns+` FROM players WHERE `+where), arg)

	var (
		p                   model.Player
		id                  string
		oncyber, hyperfy    sql.NullString
		wallet              sql.NullString
		lastConn, createdAt int64
	)
	err := row.Scan(&id, &oncyber, &hyperfy, &wallet, &p.Name, &p.IsActive, &p.IsBlocked, &lastConn, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	p.ID = model.PlayerID(id)
	p.OncyberID = oncyber.String
	p.HyperfyID = hyperfy.String
	p.WalletAddress = wallet.String
	p.LastConnectionAt = fromMillis(lastConn)
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}

// Session operations

func (s *Store) CreateSession(ctx context.Context, session *model.Session) error {
	var playerID sql.NullString
	if session.PlayerID != nil {
		playerID = sql.NullString{String: string(*session.PlayerID), Valid: true}
	}
	var endAt sql.NullInt64
	if session.EndAt != nil {
		endAt = sql.NullInt64{Int64: toMillis(*session.EndAt), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO sessions
(id, player_id, is_anonymous, platform, user_agent, space_name, start_at, end_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		string(session.ID), playerID, session.IsAnonymous, session.Platform,
		session.UserAgent, session.SpaceName, toMillis(session.StartAt), endAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, player_id, is_anonymous, platform, user_agent, space_name, start_at, end_at
FROM sessions WHERE id = ?`), string(id))

	var (
		session  model.Session
		sid      string
		playerID sql.NullString
		startAt  int64
		endAt    sql.NullInt64
	)
	err := row.Scan(&sid, &playerID, &session.IsAnonymous, &session.Platform,
		&session.UserAgent, &session.SpaceName, &startAt, &endAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	session.ID = model.SessionID(sid)
	if playerID.Valid {
		pid := model.PlayerID(playerID.String)
		session.PlayerID = &pid
	}
	session.StartAt = fromMillis(startAt)
	if endAt.Valid {
		end := fromMillis(endAt.Int64)
		session.EndAt = &end
	}
	return &session, nil
}

func (s *Store) EndSession(ctx context.Context, id model.SessionID, endAt time.Time) (*model.Session, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE sessions SET end_at = ? WHERE id = ?`), toMillis(endAt), string(id))
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	if n == 0 {
		return nil, model.ErrSessionNotFound
	}
	return s.GetSession(ctx, id)
}

// Game and score operations

func (s *Store) SaveGame(ctx context.Context, game *model.Game) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO games
(id, name, origin, mode, difficulty, average_time, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    origin = excluded.origin,
    mode = excluded.mode,
    difficulty = excluded.difficulty,
    average_time = excluded.average_time,
    is_active = excluded.is_active`),
		string(game.ID), game.Name, game.Origin, game.Mode,
		game.Difficulty, game.AverageTime, game.IsActive, toMillis(game.CreatedAt),
	)
	if err != nil {
		if s.isUniqueViolation(err) {
			return model.ErrGameExists
		}
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *Store) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, name, origin, mode, difficulty, average_time, is_active, created_at
FROM games WHERE name = ?`), name)

	var (
		game      model.Game
		id        string
		createdAt int64
	)
	err := row.Scan(&id, &game.Name, &game.Origin, &game.Mode, &game.Difficulty, &game.AverageTime, &game.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	game.ID = model.GameID(id)
	game.CreatedAt = fromMillis(createdAt)
	return &game, nil
}

func (s *Store) AppendGameScore(ctx context.Context, score *model.GameScore) error {
	var playerID sql.NullString
	if score.PlayerID != nil {
		playerID = sql.NullString{String: string(*score.PlayerID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO game_scores
(id, game_id, player_id, score, timer, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		string(score.ID), string(score.GameID), playerID, score.Score, score.Timer, toMillis(score.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert game score: %w", err)
	}
	return nil
}

func (s *Store) ListGameScores(ctx context.Context, gameID model.GameID) ([]*model.GameScore, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT id, game_id, player_id, score, timer, created_at
FROM game_scores WHERE game_id = ? ORDER BY created_at, id`), string(gameID))
	if err != nil {
		return nil, fmt.Errorf("list game scores: %w", err)
	}
	defer rows.Close()

	scores := []*model.GameScore{}
	for rows.Next() {
		var (
			sc        model.GameScore
			id, gid   string
			playerID  sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&id, &gid, &playerID, &sc.Score, &sc.Timer, &createdAt); err != nil {
			return nil, fmt.Errorf("scan game score: %w", err)
		}
		sc.ID = model.GameScoreID(id)
		sc.GameID = model.GameID(gid)
		if playerID.Valid {
			pid := model.PlayerID(playerID.String)
			sc.PlayerID = &pid
		}
		sc.CreatedAt = fromMillis(createdAt)
		scores = append(scores, &sc)
	}
	return scores, rows.Err()
}

// Reward operations

const rewardColumns = `id, token_id, blockchain, contract_address, name, type, image_url, is_active, created_at`

func (s *Store) SaveReward(ctx context.Context, reward *model.Reward) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO rewards (`+rewardColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    token_id = excluded.token_id,
    blockchain = excluded.blockchain,
    contract_address = excluded.contract_address,
    name = excluded.name,
    type = excluded.type,
    image_url = excluded.image_url,
    is_active = excluded.is_active`),
		string(reward.ID), reward.TokenID, reward.Blockchain, reward.ContractAddress,
		reward.Name, reward.Type, reward.ImageURL, reward.IsActive, toMillis(reward.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save reward: %w", err)
	}
	return nil
}

func (s *Store) GetReward(ctx context.Context, id model.RewardID) (*model.Reward, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+rewardColumns+` FROM rewards WHERE id = ?`), string(id))
	reward, err := scanReward(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRewardNotFound
		}
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return reward, nil
}

func (s *Store) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+rewardColumns+` FROM rewards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	rewards := []*model.Reward{}
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}
	return rewards, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReward(row rowScanner) (*model.Reward, error) {
	var (
		r         model.Reward
		id        string
		createdAt int64
	)
	if err := row.Scan(&id, &r.TokenID, &r.Blockchain, &r.ContractAddress, &r.Name, &r.Type, &r.ImageURL, &r.IsActive, &createdAt); err != nil {
		return nil, err
	}
	r.ID = model.RewardID(id)
	r.CreatedAt = fromMillis(createdAt)
	return &r, nil
}

func (s *Store) AppendPlayerReward(ctx context.Context, pr *model.PlayerReward) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO player_rewards (id, player_id, reward_id, created_at) VALUES (?, ?, ?, ?)`),
		string(pr.ID), string(pr.PlayerID), string(pr.RewardID), toMillis(pr.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert player reward: %w", err)
	}
	return nil
}

func (s *Store) ListPlayerRewards(ctx context.Context, playerID model.PlayerID) ([]*model.PlayerReward, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT id, player_id, reward_id, created_at
FROM player_rewards WHERE player_id = ? ORDER BY created_at, id`), string(playerID))
	if err != nil {
		return nil, fmt.Errorf("list player rewards: %w", err)
	}
	defer rows.Close()

	grants := []*model.PlayerReward{}
	for rows.Next() {
		var (
			pr           model.PlayerReward
			id, pid, rid string
			createdAt    int64
		)
		if err := rows.Scan(&id, &pid, &rid, &createdAt); err != nil {
			return nil, fmt.Errorf("scan player reward: %w", err)
		}
		pr.ID = model.PlayerRewardID(id)
		pr.PlayerID = model.PlayerID(pid)
		pr.RewardID = model.RewardID(rid)
		pr.CreatedAt = fromMillis(createdAt)
		grants = append(grants, &pr)
	}
	return grants, rows.Err()
}

// helpers

// rebind rewrites ? placeholders to $n for PostgreSQL
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
