package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"libman/library"
)

func isTerminal() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// termWidth reports the terminal width, or a default when stdout is piped.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}

func clearScreen() {
	if isTerminal() {
		fmt.Print("\033[2J\033[H")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// textWidth sizes the variable (text) columns so a row fits the terminal,
// given the total width taken by the fixed columns and separators.
func textWidth(fixed, columns, min int) int {
	w := (termWidth() - fixed) / columns
	if w < min {
		return min
	}
	return w
}

func printBooks(books []*library.Book) {
	fmt.Println("\nAll Books:")
	tw := textWidth(30, 2, 12)
	fmt.Printf("%-8s | %-*s | %-*s | %-6s | %-5s\n", "BookID", tw, "Title", tw, "Author", "Avail", "Total")
	fmt.Println(strings.Repeat("-", 30+2*tw))
	for _, b := range books {
		fmt.Printf("%-8s | %-*s | %-*s | %-6d | %-5d\n",
			b.ID, tw, truncate(b.Title, tw), tw, truncate(b.Author, tw), b.AvailableCopies(), b.TotalCopies)
	}
}

func printMembers(members []*library.Member) {
	fmt.Println("\nAll Members:")
	tw := textWidth(14, 2, 15)
	fmt.Printf("%-8s | %-*s | %-*s\n", "MemberID", tw, "Name", tw, "Contact")
	fmt.Println(strings.Repeat("-", 14+2*tw))
	for _, m := range members {
		fmt.Printf("%-8s | %-*s | %-*s\n", m.ID, tw, truncate(m.Name, tw), tw, truncate(m.Contact, tw))
	}
}

func printSearchResults(keyword string, books []*library.Book) {
	fmt.Printf("\nSearch results for '%s':\n", keyword)
	if len(books) == 0 {
		fmt.Println("No matching books.")
		return
	}
	for _, b := range books {
		fmt.Printf("%s - %s by %s (Available: %d)\n", b.ID, b.Title, b.Author, b.AvailableCopies())
	}
}

func printSummary(counts []library.BorrowCount) {
	fmt.Println("\nBorrow Summary (Member wise):")
	tw := textWidth(14, 1, 15)
	fmt.Printf("%-8s | %-*s | %s\n", "MemberID", tw, "Name", "Borrowed Books")
	fmt.Println(strings.Repeat("-", 28+tw))
	for _, c := range counts {
		fmt.Printf("%-8s | %-*s | %d\n", c.MemberID, tw, truncate(c.Name, tw), c.Count)
	}
}

func printMemberLoans(name string, loans []library.BorrowedBook) {
	fmt.Printf("\nBooks borrowed by %s:\n", name)
	if len(loans) == 0 {
		fmt.Println("No books borrowed.")
		return
	}
	for _, l := range loans {
		fmt.Printf("BookID: %s | Borrowed: %s | Due: %s\n", l.BookID, l.BorrowDate, l.DueDate)
	}
}
