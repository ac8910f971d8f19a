package legal

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/Vovarama1992/lexbridge/internal/challenge"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var schemas = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS challenges (
			conversation_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (conversation_id, question)
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS challenges (
			conversation_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (conversation_id, question)
		)`,
	},
}

type repo struct {
	db *sqlx.DB
}

type dbMessage struct {
	ID             int64  `db:"id"`
	ConversationID string `db:"conversation_id"`
	Sender         string `db:"sender"`
	Text           string `db:"text"`
	CreatedAt      int64  `db:"created_at"`
}

type dbChallenge struct {
	Question string `db:"question"`
	Answer   string `db:"answer"`
}

// NewRepo picks the schema from the db driver name; placeholders are
// rebound by sqlx for the same driver.
func NewRepo(db *sqlx.DB) (Repo, error) {
	if _, ok := schemas[db.DriverName()]; !ok {
		return nil, fmt.Errorf("unsupported db driver %q", db.DriverName())
	}
	return &repo{db: db}, nil
}

func (r *repo) Migrate(ctx context.Context) error {
	for _, stmt := range schemas[r.db.DriverName()] {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (r *repo) SaveMessage(ctx context.Context, msg *Message) error {
	if msg.CreatedAt == 0 {
		msg.CreatedAt = time.Now().Unix()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO messages (conversation_id, sender, text, created_at)
		VALUES (?, ?, ?, ?)
	`),
		msg.ConversationID,
		string(msg.Sender),
		msg.Text,
		msg.CreatedAt,
	)
	return err
}

func (r *repo) GetHistory(ctx context.Context, conversationID string) ([]Message, error) {
	var rows []dbMessage
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT id, conversation_id, sender, text, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY id ASC
	`), conversationID)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(m dbMessage, _ int) Message {
		return Message{
			ID:             m.ID,
			ConversationID: m.ConversationID,
			Sender:         Sender(m.Sender),
			Text:           m.Text,
			CreatedAt:      m.CreatedAt,
		}
	}), nil
}

func (r *repo) LoadChallenges(ctx context.Context, conversationID string) ([]challenge.Challenge, error) {
	var rows []dbChallenge
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT question, answer
		FROM challenges
		WHERE conversation_id = ?
		ORDER BY position ASC
	`), conversationID)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(c dbChallenge, _ int) challenge.Challenge {
		return challenge.Challenge{Question: c.Question, Answer: c.Answer}
	}), nil
}

// SaveChallenges upserts the whole tracker snapshot; rows are never deleted.
func (r *repo) SaveChallenges(ctx context.Context, conversationID string, items []challenge.Challenge) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
		INSERT INTO challenges (conversation_id, position, question, answer)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (conversation_id, question) DO UPDATE SET answer = excluded.answer
	`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range items {
		if _, err := stmt.ExecContext(ctx, conversationID, i, c.Question, c.Answer); err != nil {
			return err
		}
	}

	return tx.Commit()
}
