package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	conn   *sql.DB
	gorm   *gorm.DB
	dbType string
}

type Config struct {
	Type       string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
}

func NewDB(config Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch config.Type {
	case "sqlite":
		conn, err = sql.Open("sqlite3", config.SQLitePath+"?_foreign_keys=on")
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			config.Host, config.Port, config.User, config.Password, config.Name)
		conn, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, dbType: config.Type}

	// GORM shares the connection pool opened above
	var dialector gorm.Dialector
	if config.Type == "postgres" {
		dialector = postgres.New(postgres.Config{Conn: conn})
	} else {
		dialector = sqlite.New(sqlite.Config{Conn: conn})
	}
	db.gorm, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// Only create tables for SQLite; postgres goes through the migrator
	if config.Type == "sqlite" {
		conn.SetMaxOpenConns(1)
		if err := db.createTables(); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		video_filename TEXT NOT NULL DEFAULT '',
		pose_filename TEXT NOT NULL,
		topology TEXT NOT NULL,
		frame_count INTEGER NOT NULL,
		width REAL NOT NULL DEFAULT 0,
		height REAL NOT NULL DEFAULT 0,
		upload_time DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pose_frames (
		video_id TEXT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		frame_index INTEGER NOT NULL,
		frame_time REAL NOT NULL,
		keypoints TEXT NOT NULL,
		confidence TEXT NOT NULL,
		PRIMARY KEY (video_id, frame_index)
	);

	CREATE TABLE IF NOT EXISTS metric_samples (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		sample_time REAL NOT NULL,
		frame_index INTEGER NOT NULL,
		metric TEXT NOT NULL,
		value REAL,
		status TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_metric_samples_video ON metric_samples(video_id, sample_time);
	`

	_, err := db.conn.Exec(query)
	return err
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) GORM() *gorm.DB {
	return db.gorm
}

func (db *DB) Type() string {
	return db.dbType
}

// RunMigrations applies the migrations in fsys. It is a no-op for SQLite.
func (db *DB) RunMigrations(fsys fs.FS) error {
	return NewMigrator(db.conn, db.dbType).Run(fsys)
}
