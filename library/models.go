package library

import "time"

// Book represents one catalog entry. Copies are counted, not individually
// identified; availability is always derived from the active loan records.
type Book struct {
	ID          string `json:"book_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	TotalCopies int    `json:"total_copies"`
	Loans       []Loan `json:"borrowed_records"`
}

// AvailableCopies is recomputed on every call, never stored.
func (b *Book) AvailableCopies() int { return b.TotalCopies - len(b.Loans) }

// Loan records that a member holds one of the book's copies until DueDate.
// Loans carry no identifier of their own; within a book they are matched by
// member id alone.
type Loan struct {
	MemberID   string `json:"member_id"`
	BorrowDate Date   `json:"borrow_date"`
	DueDate    Date   `json:"due_date"`
}

// Member represents a registered library member.
type Member struct {
	ID       string         `json:"member_id"`
	Name     string         `json:"name"`
	Contact  string         `json:"contact"`
	Borrowed []BorrowedBook `json:"borrowed_books"`
}

// BorrowedBook mirrors, on the member side, a loan recorded inside a Book.
type BorrowedBook struct {
	BookID     string `json:"book_id"`
	BorrowDate Date   `json:"borrow_date"`
	DueDate    Date   `json:"due_date"`
}

// dateLayout is the only wire form accepted for dates.
const dateLayout = "2006-01-02"

// Date is a calendar date, serialized as YYYY-MM-DD exactly. time.Time would
// emit RFC 3339 on the wire, so marshaling is overridden here.
type Date struct {
	time.Time
}

// NewDate truncates t to day precision in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{d.Time.AddDate(0, 0, n)} }

func (d Date) String() string { return d.Format(dateLayout) }

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Any form other than YYYY-MM-DD
// is an error, which load treats as malformed storage.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
