package ootw

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/ootw/metadata"
	_ "github.com/mattn/go-sqlite3"
)

// FrameDB is a catalogue of converted frame dumps
type FrameDB struct {
	db *sql.DB
}

// CatalogEntry is a single catalogued frame
type CatalogEntry struct {
	ID      int64
	SHA1    string
	Footer  metadata.Footer
	Full    []byte
	Logical []byte
}

// NewFrameDB opens or creates the catalogue in file
func NewFrameDB(file string) (*FrameDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, logical_width INTEGER NOT NULL, logical_height INTEGER NOT NULL, full BLOB NOT NULL, logical BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &FrameDB{
		db: db,
	}, nil
}

// Close closes the catalogue
func (db *FrameDB) Close() error {
	return db.db.Close()
}

// AddFrame stores the PNG encoded full and logical images for the dump
// with the given SHA-1. If the dump is already present the existing entry
// is left alone. The id of the entry is returned along with whether it was
// newly added.
func (db *FrameDB) AddFrame(sha string, f metadata.Footer, full, logical []byte) (int64, bool, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM frame WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO frame (sha1, width, height, logical_width, logical_height, full, logical) VALUES (?, ?, ?, ?, ?, ?, ?)", sha, f.Width, f.Height, f.LogicalWidth, f.LogicalHeight, full, logical)
		if err != nil {
			return 0, false, err
		}
		id, err = result.LastInsertId()
		return id, true, err
	case nil:
		return id, false, nil
	default:
		return 0, false, err
	}
}

// FindFrameBySHA1 returns the catalogued frame for the dump with the given
// SHA-1, or nil if there isn't one
func (db *FrameDB) FindFrameBySHA1(sha string) (*CatalogEntry, error) {
	e := CatalogEntry{SHA1: sha}
	switch err := db.db.QueryRow("SELECT id, width, height, logical_width, logical_height, full, logical FROM frame WHERE sha1 = ?", sha).Scan(&e.ID, &e.Footer.Width, &e.Footer.Height, &e.Footer.LogicalWidth, &e.Footer.LogicalHeight, &e.Full, &e.Logical); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &e, nil
	default:
		return nil, err
	}
}
