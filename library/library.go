package library

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultLoanDays is the loan period applied when the caller does not pick one.
const DefaultLoanDays = 14

// Options configure Open.
type Options struct {
	// DataDir is the directory holding books.json and members.json.
	// Defaults to ".".
	DataDir string
	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Seed populates empty storage with the demo fixture before first save.
	Seed bool
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Library holds the catalog and roster in memory and runs the lending ledger
// that keeps the two denormalized views (book→borrowers, member→borrowed
// books) consistent. All mutations go through its methods, and every mutation
// rewrites both storage artifacts in full before returning.
//
// Library is single-process state and not safe for concurrent use.
type Library struct {
	books       map[string]*Book
	bookOrder   []string
	members     map[string]*Member
	memberOrder []string

	booksPath   string
	membersPath string
	log         *slog.Logger
	now         func() time.Time
	validate    *validator.Validate
}

// Open loads both storage artifacts from opts.DataDir. Missing files load as
// empty collections (first run); unparseable files abort with an error
// wrapping ErrMalformedStorage. With opts.Seed set, empty collections are
// populated with the demo fixture and persisted.
func Open(opts Options) (*Library, error) {
	if opts.DataDir == "" {
		opts.DataDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &Library{
		books:       make(map[string]*Book),
		members:     make(map[string]*Member),
		booksPath:   filepath.Join(opts.DataDir, booksFile),
		membersPath: filepath.Join(opts.DataDir, membersFile),
		log:         opts.Logger,
		now:         opts.Now,
		validate:    validator.New(),
	}

	if err := l.load(); err != nil {
		return nil, err
	}

	if opts.Seed {
		seeded := false
		if len(l.books) == 0 {
			l.seedBooks()
			seeded = true
		}
		if len(l.members) == 0 {
			l.seedMembers()
			seeded = true
		}
		if seeded {
			if err := l.Save(); err != nil {
				return nil, err
			}
			l.log.Info("seeded demo data", "books", len(l.books), "members", len(l.members))
		}
	}

	return l, nil
}

// Ids derive from the live count, as the original system's did. After a
// deletion the next allocated id can equal one still in use.
func (l *Library) nextBookID() string   { return fmt.Sprintf("B%04d", len(l.books)+1) }
func (l *Library) nextMemberID() string { return fmt.Sprintf("M%04d", len(l.members)+1) }

// ------------------ Catalog ------------------

// AddBookParams are the caller-supplied fields for a new catalog entry.
type AddBookParams struct {
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	TotalCopies int    `validate:"min=1"`
}

// AddBook creates a book with zero loans, persists, and returns its id.
func (l *Library) AddBook(p AddBookParams) (string, error) {
	if err := l.validate.Struct(p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	b := &Book{ID: l.nextBookID(), Title: p.Title, Author: p.Author, TotalCopies: p.TotalCopies}
	l.books[b.ID] = b
	l.bookOrder = append(l.bookOrder, b.ID)
	if err := l.Save(); err != nil {
		return "", err
	}
	l.log.Info("book added", "book_id", b.ID, "title", b.Title)
	return b.ID, nil
}

// RemoveBook deletes the book and its active loans unconditionally. Matching
// entries in members' borrowed_books are left in place; only the ledger
// operations touch both sides. The bool reports whether the id existed.
func (l *Library) RemoveBook(id string) (bool, error) {
	if _, ok := l.books[id]; !ok {
		return false, nil
	}
	delete(l.books, id)
	for i, bid := range l.bookOrder {
		if bid == id {
			l.bookOrder = append(l.bookOrder[:i], l.bookOrder[i+1:]...)
			break
		}
	}
	if err := l.Save(); err != nil {
		return true, err
	}
	l.log.Info("book removed", "book_id", id)
	return true, nil
}

// GetBook fetches a single book.
func (l *Library) GetBook(id string) (*Book, error) {
	b, ok := l.books[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	return b, nil
}

// ListBooks returns every book in insertion order.
func (l *Library) ListBooks() []*Book {
	out := make([]*Book, 0, len(l.bookOrder))
	for _, id := range l.bookOrder {
		out = append(out, l.books[id])
	}
	return out
}

// SearchBooks returns, in stored order, every book whose title or author
// contains keyword, case-insensitively. An empty keyword matches all books.
func (l *Library) SearchBooks(keyword string) []*Book {
	kw := strings.ToLower(keyword)
	var out []*Book
	for _, id := range l.bookOrder {
		b := l.books[id]
		if strings.Contains(strings.ToLower(b.Title), kw) || strings.Contains(strings.ToLower(b.Author), kw) {
			out = append(out, b)
		}
	}
	return out
}

// ------------------ Roster ------------------

// AddMemberParams are the caller-supplied fields for a new member.
type AddMemberParams struct {
	Name    string `validate:"required"`
	Contact string `validate:"required"`
}

// AddMember registers a member, persists, and returns the new id.
func (l *Library) AddMember(p AddMemberParams) (string, error) {
	if err := l.validate.Struct(p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	m := &Member{ID: l.nextMemberID(), Name: p.Name, Contact: p.Contact}
	l.members[m.ID] = m
	l.memberOrder = append(l.memberOrder, m.ID)
	if err := l.Save(); err != nil {
		return "", err
	}
	l.log.Info("member added", "member_id", m.ID, "name", m.Name)
	return m.ID, nil
}

// GetMember fetches a single member.
func (l *Library) GetMember(id string) (*Member, error) {
	m, ok := l.members[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	return m, nil
}

// ListMembers returns every member in insertion order.
func (l *Library) ListMembers() []*Member {
	out := make([]*Member, 0, len(l.memberOrder))
	for _, id := range l.memberOrder {
		out = append(out, l.members[id])
	}
	return out
}

// ------------------ Lending ledger ------------------

// Borrow lends one copy of the book to the member for days days
// (DefaultLoanDays when days <= 0). Preconditions are checked in order:
// member exists, book exists, a copy is available; a failed precondition
// mutates nothing. Nothing stops a member borrowing the same title twice;
// Return then releases both loans at once.
func (l *Library) Borrow(memberID, bookID string, days int) (Loan, error) {
	m, ok := l.members[memberID]
	if !ok {
		return Loan{}, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	b, ok := l.books[bookID]
	if !ok {
		return Loan{}, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	if b.AvailableCopies() <= 0 {
		return Loan{}, fmt.Errorf("%w: %s", ErrNoCopiesAvailable, bookID)
	}
	if days <= 0 {
		days = DefaultLoanDays
	}

	borrowed := NewDate(l.now())
	due := borrowed.AddDays(days)
	loan := Loan{MemberID: memberID, BorrowDate: borrowed, DueDate: due}
	b.Loans = append(b.Loans, loan)
	m.Borrowed = append(m.Borrowed, BorrowedBook{BookID: bookID, BorrowDate: borrowed, DueDate: due})

	if err := l.Save(); err != nil {
		return Loan{}, err
	}
	l.log.Info("book borrowed", "book_id", bookID, "member_id", memberID, "due", due.String())
	return loan, nil
}

// Return releases every loan of bookID held by memberID, on both sides of
// the ledger. Returning with no matching loan is a silent no-op, not an
// error; only an unknown member or book id fails.
func (l *Library) Return(memberID, bookID string) error {
	m, ok := l.members[memberID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	b, ok := l.books[bookID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}

	loans := b.Loans[:0]
	for _, ln := range b.Loans {
		if ln.MemberID != memberID {
			loans = append(loans, ln)
		}
	}
	b.Loans = loans

	borrowed := m.Borrowed[:0]
	for _, bb := range m.Borrowed {
		if bb.BookID != bookID {
			borrowed = append(borrowed, bb)
		}
	}
	m.Borrowed = borrowed

	if err := l.Save(); err != nil {
		return err
	}
	l.log.Info("book returned", "book_id", bookID, "member_id", memberID)
	return nil
}

// ------------------ Views ------------------

// MemberLoans returns the member's borrowed-book entries in borrow order.
func (l *Library) MemberLoans(memberID string) ([]BorrowedBook, error) {
	m, ok := l.members[memberID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	out := make([]BorrowedBook, len(m.Borrowed))
	copy(out, m.Borrowed)
	return out, nil
}

// BorrowCount pairs a member with the number of books they currently hold.
type BorrowCount struct {
	MemberID string
	Name     string
	Count    int
}

// BorrowSummary reports each member's outstanding borrow count, roster order.
func (l *Library) BorrowSummary() []BorrowCount {
	out := make([]BorrowCount, 0, len(l.memberOrder))
	for _, id := range l.memberOrder {
		m := l.members[id]
		out = append(out, BorrowCount{MemberID: m.ID, Name: m.Name, Count: len(m.Borrowed)})
	}
	return out
}
