package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS survey_responses (
	id             TEXT PRIMARY KEY,
	email          TEXT NOT NULL,
	name           TEXT NOT NULL,
	property_count INTEGER NOT NULL,
	pain_point     TEXT NOT NULL,
	created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_survey_responses_created_at ON survey_responses(created_at DESC);

CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at DESC);

CREATE TABLE IF NOT EXISTS chat_transcripts (
	id                 TEXT PRIMARY KEY,
	request_id         TEXT NOT NULL DEFAULT '',
	user_message       TEXT NOT NULL,
	assistant_response TEXT NOT NULL,
	created_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_transcripts_created_at ON chat_transcripts(created_at DESC);
`

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/genius.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteStore creates a SQLite storage backend, initializing the
// schema and enabling WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
		now:    time.Now,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	s.logger.Debug("database schema created")

	return nil
}

// SaveSurvey implements Store.
func (s *SQLiteStore) SaveSurvey(ctx context.Context, response *SurveyResponse) error {
	if err := response.Validate(); err != nil {
		return err
	}
	response.ID = uuid.New().String()
	response.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO survey_responses (id, email, name, property_count, pain_point, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		response.ID, response.Email, response.Name, response.PropertyCount,
		response.PainPoint, response.CreatedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError("sqlite", "save_survey", err)
	}
	return nil
}

// ListSurveys implements Store.
func (s *SQLiteStore) ListSurveys(ctx context.Context, limit int) ([]*SurveyResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, name, property_count, pain_point, created_at
		 FROM survey_responses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, NewStorageError("sqlite", "list_surveys", err)
	}
	defer rows.Close()

	responses := make([]*SurveyResponse, 0)
	for rows.Next() {
		var r SurveyResponse
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Email, &r.Name, &r.PropertyCount, &r.PainPoint, &createdAt); err != nil {
			return nil, NewStorageError("sqlite", "scan_survey", err)
		}
		r.CreatedAt = time.Unix(0, createdAt).UTC()
		responses = append(responses, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list_surveys", err)
	}
	return responses, nil
}

// SaveFeedback implements Store.
func (s *SQLiteStore) SaveFeedback(ctx context.Context, entry *FeedbackEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	entry.ID = uuid.New().String()
	entry.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, content, created_at) VALUES (?, ?, ?)`,
		entry.ID, entry.Content, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError("sqlite", "save_feedback", err)
	}
	return nil
}

// ListFeedback implements Store.
func (s *SQLiteStore) ListFeedback(ctx context.Context, limit int) ([]*FeedbackEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, created_at FROM feedback ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, NewStorageError("sqlite", "list_feedback", err)
	}
	defer rows.Close()

	entries := make([]*FeedbackEntry, 0)
	for rows.Next() {
		var e FeedbackEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Content, &createdAt); err != nil {
			return nil, NewStorageError("sqlite", "scan_feedback", err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list_feedback", err)
	}
	return entries, nil
}

// SaveChat implements Store.
func (s *SQLiteStore) SaveChat(ctx context.Context, transcript *ChatTranscript) error {
	transcript.ID = uuid.New().String()
	transcript.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_transcripts (id, request_id, user_message, assistant_response, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		transcript.ID, transcript.RequestID, transcript.UserMessage,
		transcript.AssistantResponse, transcript.CreatedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError("sqlite", "save_chat", err)
	}
	return nil
}

// ListChats implements Store.
func (s *SQLiteStore) ListChats(ctx context.Context, limit int) ([]*ChatTranscript, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, request_id, user_message, assistant_response, created_at
		 FROM chat_transcripts ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, NewStorageError("sqlite", "list_chats", err)
	}
	defer rows.Close()

	transcripts := make([]*ChatTranscript, 0)
	for rows.Next() {
		var c ChatTranscript
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.RequestID, &c.UserMessage, &c.AssistantResponse, &createdAt); err != nil {
			return nil, NewStorageError("sqlite", "scan_chat", err)
		}
		c.CreatedAt = time.Unix(0, createdAt).UTC()
		transcripts = append(transcripts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list_chats", err)
	}
	return transcripts, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
