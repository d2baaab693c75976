package library

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

var testClock = func() time.Time { return time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC) }

func testLibrary(t *testing.T) *Library {
	t.Helper()
	return testLibraryAt(t, t.TempDir())
}

func testLibraryAt(t *testing.T, dir string) *Library {
	t.Helper()
	lib, err := Open(Options{
		DataDir: dir,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     testClock,
	})
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	return lib
}

func addBook(t *testing.T, lib *Library, title, author string, copies int) string {
	t.Helper()
	id, err := lib.AddBook(AddBookParams{Title: title, Author: author, TotalCopies: copies})
	if err != nil {
		t.Fatalf("add book %q: %v", title, err)
	}
	return id
}

func addMember(t *testing.T, lib *Library, name string) string {
	t.Helper()
	id, err := lib.AddMember(AddMemberParams{Name: name, Contact: name + "@email.com"})
	if err != nil {
		t.Fatalf("add member %q: %v", name, err)
	}
	return id
}

func TestAddBookAssignsSequentialIDs(t *testing.T) {
	lib := testLibrary(t)

	id1 := addBook(t, lib, "Python Basics", "John Smith", 4)
	id2 := addBook(t, lib, "Data Structures", "Mark Allen", 3)
	if id1 != "B0001" || id2 != "B0002" {
		t.Fatalf("want B0001, B0002; got %s, %s", id1, id2)
	}

	books := lib.ListBooks()
	if len(books) != 2 || books[0].ID != "B0001" || books[1].ID != "B0002" {
		t.Fatalf("listing not in insertion order: %v", books)
	}
	if books[0].AvailableCopies() != 4 {
		t.Fatalf("new book should have all copies available, got %d", books[0].AvailableCopies())
	}
}

func TestAddBookValidation(t *testing.T) {
	lib := testLibrary(t)

	if _, err := lib.AddBook(AddBookParams{Title: "", Author: "A", TotalCopies: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty title: want ErrInvalidArgument, got %v", err)
	}
	if _, err := lib.AddBook(AddBookParams{Title: "T", Author: "", TotalCopies: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty author: want ErrInvalidArgument, got %v", err)
	}
	if _, err := lib.AddBook(AddBookParams{Title: "T", Author: "A", TotalCopies: 0}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero copies: want ErrInvalidArgument, got %v", err)
	}
	if len(lib.ListBooks()) != 0 {
		t.Fatalf("rejected adds must not mutate the catalog")
	}
}

func TestAddMemberValidation(t *testing.T) {
	lib := testLibrary(t)

	if _, err := lib.AddMember(AddMemberParams{Name: "", Contact: "x@email.com"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty name: want ErrInvalidArgument, got %v", err)
	}
	if _, err := lib.AddMember(AddMemberParams{Name: "Ali", Contact: ""}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty contact: want ErrInvalidArgument, got %v", err)
	}

	id := addMember(t, lib, "Ali Khan")
	if id != "M0001" {
		t.Fatalf("want M0001, got %s", id)
	}
	m, err := lib.GetMember(id)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.Name != "Ali Khan" || len(m.Borrowed) != 0 {
		t.Fatalf("unexpected member state: %+v", m)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	lib := testLibrary(t)
	if _, err := lib.GetMember("M0099"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("want ErrMemberNotFound, got %v", err)
	}
}

func TestBorrowAndReturnRoundTrip(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Python Basics", "John Smith", 2)
	memberID := addMember(t, lib, "Ali Khan")

	loan, err := lib.Borrow(memberID, bookID, 0)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if got := loan.BorrowDate.String(); got != "2025-03-10" {
		t.Fatalf("borrow date: want 2025-03-10, got %s", got)
	}
	if got := loan.DueDate.String(); got != "2025-03-24" {
		t.Fatalf("due date: want borrow+14 days (2025-03-24), got %s", got)
	}

	book, _ := lib.GetBook(bookID)
	if book.AvailableCopies() != 1 {
		t.Fatalf("want 1 available after borrow, got %d", book.AvailableCopies())
	}
	loans, err := lib.MemberLoans(memberID)
	if err != nil {
		t.Fatalf("member loans: %v", err)
	}
	if len(loans) != 1 || loans[0].BookID != bookID || loans[0].DueDate.String() != "2025-03-24" {
		t.Fatalf("mirrored entry missing or wrong: %+v", loans)
	}

	if err := lib.Return(memberID, bookID); err != nil {
		t.Fatalf("return: %v", err)
	}
	if book.AvailableCopies() != 2 {
		t.Fatalf("return should restore availability, got %d", book.AvailableCopies())
	}
	loans, _ = lib.MemberLoans(memberID)
	if len(loans) != 0 {
		t.Fatalf("mirrored entry should be gone, got %+v", loans)
	}
}

// Scenario from the dual-sided ledger: two copies, three interested members.
func TestBorrowUntilExhausted(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Data Structures", "Mark Allen", 2)
	m1 := addMember(t, lib, "Ali Khan")
	m2 := addMember(t, lib, "Sara Ahmed")
	m3 := addMember(t, lib, "Syed Asad")

	if _, err := lib.Borrow(m1, bookID, 0); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	book, _ := lib.GetBook(bookID)
	if book.AvailableCopies() != 1 {
		t.Fatalf("want 1 available, got %d", book.AvailableCopies())
	}

	if _, err := lib.Borrow(m2, bookID, 0); err != nil {
		t.Fatalf("second borrow: %v", err)
	}
	if book.AvailableCopies() != 0 {
		t.Fatalf("want 0 available, got %d", book.AvailableCopies())
	}

	if _, err := lib.Borrow(m3, bookID, 0); !errors.Is(err, ErrNoCopiesAvailable) {
		t.Fatalf("want ErrNoCopiesAvailable, got %v", err)
	}
	// Failed borrow must leave both sides untouched.
	if len(book.Loans) != 2 {
		t.Fatalf("failed borrow mutated book loans: %d", len(book.Loans))
	}
	if loans, _ := lib.MemberLoans(m3); len(loans) != 0 {
		t.Fatalf("failed borrow mutated member state: %+v", loans)
	}

	if err := lib.Return(m1, bookID); err != nil {
		t.Fatalf("return: %v", err)
	}
	if book.AvailableCopies() != 1 {
		t.Fatalf("want 1 available after return, got %d", book.AvailableCopies())
	}
}

func TestBorrowPreconditionOrder(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "AI Fundamentals", "Andrew Ng", 2)
	memberID := addMember(t, lib, "Ali Khan")

	// Member is checked before book.
	if _, err := lib.Borrow("M0099", "B0099", 0); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("want ErrMemberNotFound, got %v", err)
	}
	if _, err := lib.Borrow(memberID, "B0099", 0); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound, got %v", err)
	}
	if _, err := lib.Borrow(memberID, bookID, 0); err != nil {
		t.Fatalf("valid borrow: %v", err)
	}
}

func TestBorrowCustomLoanPeriod(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Machine Learning", "Tom Mitchell", 5)
	memberID := addMember(t, lib, "Ali Khan")

	loan, err := lib.Borrow(memberID, bookID, 7)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if got := loan.DueDate.String(); got != "2025-03-17" {
		t.Fatalf("want due 2025-03-17, got %s", got)
	}
}

func TestReturnWithoutLoanIsNoOp(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Cloud Computing", "Rajkumar Buyya", 3)
	memberID := addMember(t, lib, "Ali Khan")

	if err := lib.Return(memberID, bookID); err != nil {
		t.Fatalf("return with nothing borrowed should succeed silently, got %v", err)
	}
	if err := lib.Return("M0099", bookID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("want ErrMemberNotFound, got %v", err)
	}
	if err := lib.Return(memberID, "B0099"); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound, got %v", err)
	}
}

// A member holding two copies of the same title gets both released by one
// return, because loans are matched by member id alone.
func TestReturnReleasesAllMatchingLoans(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Operating Systems", "Silberschatz", 3)
	memberID := addMember(t, lib, "Ali Khan")

	if _, err := lib.Borrow(memberID, bookID, 0); err != nil {
		t.Fatalf("first borrow: %v", err)
	}
	if _, err := lib.Borrow(memberID, bookID, 0); err != nil {
		t.Fatalf("second borrow of same title: %v", err)
	}
	book, _ := lib.GetBook(bookID)
	if book.AvailableCopies() != 1 {
		t.Fatalf("want 1 available with two loans out, got %d", book.AvailableCopies())
	}

	if err := lib.Return(memberID, bookID); err != nil {
		t.Fatalf("return: %v", err)
	}
	if book.AvailableCopies() != 3 {
		t.Fatalf("one return should release both loans, got %d available", book.AvailableCopies())
	}
	if loans, _ := lib.MemberLoans(memberID); len(loans) != 0 {
		t.Fatalf("member side should be empty, got %+v", loans)
	}
}

func TestRemoveBook(t *testing.T) {
	lib := testLibrary(t)
	addBook(t, lib, "Java Programming", "James Gosling", 3)

	removed, err := lib.RemoveBook("B0099")
	if err != nil {
		t.Fatalf("remove nonexistent: %v", err)
	}
	if removed {
		t.Fatalf("B0099 should not exist")
	}
	if len(lib.ListBooks()) != 1 {
		t.Fatalf("failed remove must not alter the catalog")
	}

	removed, err = lib.RemoveBook("B0001")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed || len(lib.ListBooks()) != 0 {
		t.Fatalf("B0001 should be gone")
	}
}

// Removing a borrowed book leaves the member's borrowed_books entry behind;
// only the ledger operations touch both sides.
func TestRemoveBookKeepsMemberEntries(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Networks Explained", "Tanenbaum", 2)
	memberID := addMember(t, lib, "Ali Khan")

	if _, err := lib.Borrow(memberID, bookID, 0); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := lib.RemoveBook(bookID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	loans, err := lib.MemberLoans(memberID)
	if err != nil {
		t.Fatalf("member loans: %v", err)
	}
	if len(loans) != 1 || loans[0].BookID != bookID {
		t.Fatalf("member entry should survive book removal, got %+v", loans)
	}
}

func TestSearchBooks(t *testing.T) {
	lib := testLibrary(t)
	addBook(t, lib, "Python Basics", "John Smith", 4)
	addBook(t, lib, "Data Structures", "Mark Allen", 3)
	addBook(t, lib, "Advanced Python", "Jane Doe", 2)

	res := lib.SearchBooks("python")
	if len(res) != 2 || res[0].Title != "Python Basics" || res[1].Title != "Advanced Python" {
		t.Fatalf("case-insensitive title match failed: %+v", res)
	}

	res = lib.SearchBooks("SMITH")
	if len(res) != 1 || res[0].Author != "John Smith" {
		t.Fatalf("author match failed: %+v", res)
	}

	if res = lib.SearchBooks("nomatch"); len(res) != 0 {
		t.Fatalf("want no results, got %+v", res)
	}

	if res = lib.SearchBooks(""); len(res) != 3 {
		t.Fatalf("empty keyword should match all books, got %d", len(res))
	}
}

func TestBorrowSummary(t *testing.T) {
	lib := testLibrary(t)
	b1 := addBook(t, lib, "Python Basics", "John Smith", 4)
	b2 := addBook(t, lib, "Data Structures", "Mark Allen", 3)
	m1 := addMember(t, lib, "Ali Khan")
	m2 := addMember(t, lib, "Sara Ahmed")

	if _, err := lib.Borrow(m1, b1, 0); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := lib.Borrow(m1, b2, 0); err != nil {
		t.Fatalf("borrow: %v", err)
	}

	summary := lib.BorrowSummary()
	if len(summary) != 2 {
		t.Fatalf("want 2 rows, got %d", len(summary))
	}
	if summary[0].MemberID != m1 || summary[0].Count != 2 {
		t.Fatalf("unexpected row for %s: %+v", m1, summary[0])
	}
	if summary[1].MemberID != m2 || summary[1].Count != 0 {
		t.Fatalf("unexpected row for %s: %+v", m2, summary[1])
	}
}

func TestAvailabilityInvariant(t *testing.T) {
	lib := testLibrary(t)
	bookID := addBook(t, lib, "Cybersecurity 101", "Jane Doe", 3)
	members := []string{
		addMember(t, lib, "Ali Khan"),
		addMember(t, lib, "Sara Ahmed"),
		addMember(t, lib, "Syed Asad"),
		addMember(t, lib, "Fahad Ali"),
	}

	for _, m := range members {
		_, _ = lib.Borrow(m, bookID, 0)
		for _, b := range lib.ListBooks() {
			if got := b.AvailableCopies(); got != b.TotalCopies-len(b.Loans) || got < 0 {
				t.Fatalf("availability invariant violated for %s: %d", b.ID, got)
			}
		}
	}
	book, _ := lib.GetBook(bookID)
	if len(book.Loans) != 3 {
		t.Fatalf("only 3 of 4 borrows can succeed, got %d loans", len(book.Loans))
	}
}

func TestSeedOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	lib, err := Open(Options{
		DataDir: dir,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:    true,
		Now:     testClock,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	books := lib.ListBooks()
	members := lib.ListMembers()
	if len(books) != 10 || len(members) != 12 {
		t.Fatalf("want 10 books and 12 members, got %d and %d", len(books), len(members))
	}
	if books[0].ID != "B0001" || books[0].Title != "Python Basics" {
		t.Fatalf("unexpected first seed book: %+v", books[0])
	}
	if books[9].ID != "B0010" {
		t.Fatalf("unexpected last seed id: %s", books[9].ID)
	}
	if members[0].ID != "M0001" || members[0].Contact != "ali@email.com" {
		t.Fatalf("unexpected first seed member: %+v", members[0])
	}

	// Seeding persists, so a second open must not reseed or grow the data.
	lib2 := testLibraryAt(t, dir)
	if len(lib2.ListBooks()) != 10 || len(lib2.ListMembers()) != 12 {
		t.Fatalf("second open changed seeded data")
	}
}

func TestNoSeedWhenDataPresent(t *testing.T) {
	dir := t.TempDir()
	lib := testLibraryAt(t, dir)
	addBook(t, lib, "Only Book", "Only Author", 1)

	lib2, err := Open(Options{
		DataDir: dir,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:    true,
		Now:     testClock,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(lib2.ListBooks()) != 1 {
		t.Fatalf("non-empty catalog must not be reseeded, got %d books", len(lib2.ListBooks()))
	}
	// Roster was empty, so members alone get the fixture.
	if len(lib2.ListMembers()) != 12 {
		t.Fatalf("empty roster should still seed, got %d members", len(lib2.ListMembers()))
	}
}
