package symspell

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

// PersistentStore is a Store realization backed by a SQLite database, for
// dictionaries too large to comfortably keep in memory or that need to
// survive process restarts without a full reload.
//
// The schema is deliberately bit-compatible with the normalized
// symspell_terms/symspell_deletes layout of the reference C/C++
// implementation this package is ported from, so a database file produced
// by either side stays readable by the other.
//
// Unlike MemoryStore, PersistentStore.SetFrequency ACCUMULATES: inserting
// the same term twice adds the counts together at the SQL level via an
// upsert, rather than overwriting. Index.Insert is written with this
// asymmetry in mind -- see the Store doc comment.
type PersistentStore struct {
	db *sql.DB

	insertDelete  *sql.Stmt
	selectTerms   *sql.Stmt
	upsertTerm    *sql.Stmt
	selectTerm    *sql.Stmt
	insideTx      *sql.Tx
	pendingBegins int
}

const schemaSQL = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS symspell_terms (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	term      TEXT UNIQUE NOT NULL,
	frequency INTEGER DEFAULT 1
);

CREATE TABLE IF NOT EXISTS symspell_deletes (
	delete_hash INTEGER NOT NULL,
	term_id     INTEGER NOT NULL,
	FOREIGN KEY (term_id) REFERENCES symspell_terms(id) ON DELETE CASCADE,
	PRIMARY KEY (delete_hash, term_id)
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_symspell_terms_term ON symspell_terms (term);
CREATE INDEX IF NOT EXISTS idx_symspell_deletes_hash ON symspell_deletes (delete_hash);
`

// OpenPersistentStore opens (creating if absent) a SQLite-backed Store at
// path, and returns the maximum term length already on disk so the caller
// can seed an Index via SetMaxWordLengthHint -- this store never loses that
// information on reopen, unlike the reference implementation it is
// otherwise grounded on.
func OpenPersistentStore(path string) (*PersistentStore, int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, 0, fmt.Errorf("open sqlite store: %w", err)
	}
	// SQLite allows only one writer at a time, and PRAGMA foreign_keys is
	// per-connection -- pinning the pool to a single connection keeps the
	// ON DELETE CASCADE in schemaSQL in effect for every statement below.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("create schema: %w", err)
	}

	insertDelete, err := db.Prepare(`
		INSERT OR IGNORE INTO symspell_deletes (delete_hash, term_id)
		VALUES (?, (SELECT id FROM symspell_terms WHERE term = ?))
	`)
	if err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("prepare insertDelete: %w", err)
	}
	selectTerms, err := db.Prepare(`
		SELECT t.term FROM symspell_terms t
		INNER JOIN symspell_deletes d ON t.id = d.term_id
		WHERE d.delete_hash = ?
	`)
	if err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("prepare selectTerms: %w", err)
	}
	upsertTerm, err := db.Prepare(`
		INSERT INTO symspell_terms (term, frequency) VALUES (?, ?)
		ON CONFLICT(term) DO UPDATE SET frequency = frequency + excluded.frequency
	`)
	if err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("prepare upsertTerm: %w", err)
	}
	selectTerm, err := db.Prepare(`SELECT frequency FROM symspell_terms WHERE term = ?`)
	if err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("prepare selectTerm: %w", err)
	}

	var maxLen sql.NullInt64
	row := db.QueryRow(`SELECT MAX(LENGTH(term)) FROM symspell_terms`)
	if err := row.Scan(&maxLen); err != nil && err != sql.ErrNoRows {
		log.Warnf("symspell: could not compute max term length on open: %v", err)
	}

	return &PersistentStore{
		db:           db,
		insertDelete: insertDelete,
		selectTerms:  selectTerms,
		upsertTerm:   upsertTerm,
		selectTerm:   selectTerm,
	}, int(maxLen.Int64), nil
}

// Close releases the underlying database handle and prepared statements.
func (s *PersistentStore) Close() error {
	s.insertDelete.Close()
	s.selectTerms.Close()
	s.upsertTerm.Close()
	s.selectTerm.Close()
	return s.db.Close()
}

// stmt returns prepared, bound to the active transaction when one is open,
// so callers inside BeginTransaction/CommitTransaction see their writes
// atomically without every Store method needing its own tx-awareness.
func (s *PersistentStore) stmt(prepared *sql.Stmt) *sql.Stmt {
	if s.insideTx == nil {
		return prepared
	}
	return s.insideTx.Stmt(prepared)
}

func (s *PersistentStore) AddDelete(fp int32, term string) error {
	_, err := s.stmt(s.insertDelete).Exec(fp, term)
	if err != nil {
		return fmt.Errorf("add delete: %w", err)
	}
	return nil
}

func (s *PersistentStore) GetTerms(fp int32) ([]string, error) {
	rows, err := s.stmt(s.selectTerms).Query(fp)
	if err != nil {
		return nil, fmt.Errorf("get terms: %w", err)
	}
	defer rows.Close()

	terms := []string{}
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// SetFrequency accumulates f into term's stored frequency -- see the type
// doc comment. For an already-posted term Index.Insert therefore passes
// this store only the increment, where it passes MemoryStore the new total.
func (s *PersistentStore) SetFrequency(term string, f int64) error {
	_, err := s.stmt(s.upsertTerm).Exec(term, f)
	if err != nil {
		return fmt.Errorf("set frequency: %w", err)
	}
	return nil
}

func (s *PersistentStore) GetFrequency(term string) (int64, bool, error) {
	var freq int64
	err := s.stmt(s.selectTerm).QueryRow(term).Scan(&freq)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get frequency: %w", err)
	}
	return freq, true, nil
}

func (s *PersistentStore) TermExists(term string) (bool, error) {
	_, ok, err := s.GetFrequency(term)
	return ok, err
}

// BeginTransaction, CommitTransaction, and RollbackTransaction implement a
// simple nested-begin counter: only the outermost Begin opens a real SQL
// transaction, and only the matching Commit closes it, so callers (e.g. the
// dictionary loader batching thousands of inserts) can call them around
// nested units of work without tracking nesting themselves.
func (s *PersistentStore) BeginTransaction() error {
	s.pendingBegins++
	if s.pendingBegins > 1 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		s.pendingBegins--
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.insideTx = tx
	return nil
}

func (s *PersistentStore) CommitTransaction() error {
	if s.pendingBegins == 0 {
		return fmt.Errorf("commit without matching begin")
	}
	s.pendingBegins--
	if s.pendingBegins > 0 {
		return nil
	}
	tx := s.insideTx
	s.insideTx = nil
	if tx == nil {
		return nil
	}
	return tx.Commit()
}

func (s *PersistentStore) RollbackTransaction() error {
	if s.pendingBegins == 0 {
		return nil
	}
	s.pendingBegins = 0
	tx := s.insideTx
	s.insideTx = nil
	if tx == nil {
		return nil
	}
	return tx.Rollback()
}
