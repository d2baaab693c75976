package library

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ExportSQLite snapshots the current library state into a SQLite database at
// dbPath so the catalog can be queried with plain SQL. Any previous snapshot
// tables at that path are replaced. The snapshot is read-only output; the two
// JSON artifacts remain the system of record.
func (l *Library) ExportSQLite(dbPath string) error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS loans;`,
		`DROP TABLE IF EXISTS books;`,
		`DROP TABLE IF EXISTS members;`,
		`CREATE TABLE books (
            book_id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            total_copies INTEGER NOT NULL,
            available_copies INTEGER NOT NULL
        );`,
		`CREATE TABLE members (
            member_id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            contact TEXT NOT NULL
        );`,
		`CREATE TABLE loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id TEXT NOT NULL REFERENCES books(book_id),
            member_id TEXT NOT NULL REFERENCES members(member_id),
            borrow_date TEXT NOT NULL,
            due_date TEXT NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, m := range l.ListMembers() {
		if _, err := tx.Exec(`INSERT INTO members(member_id,name,contact) VALUES(?,?,?)`,
			m.ID, m.Name, m.Contact); err != nil {
			return fmt.Errorf("insert member %s: %w", m.ID, err)
		}
	}
	for _, b := range l.ListBooks() {
		if _, err := tx.Exec(`INSERT INTO books(book_id,title,author,total_copies,available_copies) VALUES(?,?,?,?,?)`,
			b.ID, b.Title, b.Author, b.TotalCopies, b.AvailableCopies()); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ID, err)
		}
		for _, ln := range b.Loans {
			if _, err := tx.Exec(`INSERT INTO loans(book_id,member_id,borrow_date,due_date) VALUES(?,?,?,?)`,
				b.ID, ln.MemberID, ln.BorrowDate.String(), ln.DueDate.String()); err != nil {
				return fmt.Errorf("insert loan %s/%s: %w", b.ID, ln.MemberID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	l.log.Info("exported snapshot", "path", dbPath, "books", len(l.books), "members", len(l.members))
	return nil
}
