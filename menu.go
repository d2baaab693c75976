package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"libman/library"
)

// runMenu drives the interactive numbered menu until the user exits or
// stdin closes. State is saved once more on the way out.
func runMenu(lib *library.Library) error {
	sc := bufio.NewScanner(os.Stdin)
	for {
		printMenu()
		fmt.Print("Enter choice: ")
		if !sc.Scan() {
			return lib.Save()
		}
		choice := strings.TrimSpace(sc.Text())
		clearScreen()

		switch choice {
		case "1":
			printBooks(lib.ListBooks())
		case "2":
			printMembers(lib.ListMembers())
		case "3":
			handleAddBook(sc, lib)
		case "4":
			handleAddMember(sc, lib)
		case "5":
			handleBorrow(sc, lib)
		case "6":
			handleReturn(sc, lib)
		case "7":
			handleSearch(sc, lib)
		case "8":
			handleRemoveBook(sc, lib)
		case "9":
			handleMemberBooks(sc, lib)
		case "10":
			printSummary(lib.BorrowSummary())
		case "11":
			if err := lib.Save(); err != nil {
				fmt.Printf("Error saving data: %v\n", err)
			} else {
				fmt.Println("Data saved successfully.")
			}
		case "12":
			if err := lib.Save(); err != nil {
				return err
			}
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Invalid option.")
		}

		fmt.Print("\nPress Enter to continue...")
		if !sc.Scan() {
			return lib.Save()
		}
		clearScreen()
	}
}

func printMenu() {
	fmt.Println("\n========== LIBRARY MANAGEMENT ==========")
	fmt.Println("1. View All Books")
	fmt.Println("2. View All Members")
	fmt.Println("3. Add New Book")
	fmt.Println("4. Add New Member")
	fmt.Println("5. Borrow Book")
	fmt.Println("6. Return Book")
	fmt.Println("7. Search Book")
	fmt.Println("8. Remove Book")
	fmt.Println("9. View Member Borrowed Books")
	fmt.Println("10. View Borrow Summary (All Members)")
	fmt.Println("11. Save Data")
	fmt.Println("12. Exit")
	fmt.Println("========================================")
}

// promptNonEmpty keeps asking until the user enters something. The second
// return is false when stdin closes.
func promptNonEmpty(sc *bufio.Scanner, prompt string) (string, bool) {
	for {
		fmt.Print(prompt)
		if !sc.Scan() {
			return "", false
		}
		s := strings.TrimSpace(sc.Text())
		if s != "" {
			return s, true
		}
		fmt.Println("Input cannot be empty.")
	}
}

func handleAddBook(sc *bufio.Scanner, lib *library.Library) {
	title, ok := promptNonEmpty(sc, "Enter book title: ")
	if !ok {
		return
	}
	author, ok := promptNonEmpty(sc, "Enter author name: ")
	if !ok {
		return
	}
	fmt.Print("Total copies: ")
	if !sc.Scan() {
		return
	}
	copies := 1
	if s := strings.TrimSpace(sc.Text()); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Println("Invalid number of copies.")
			return
		}
		copies = n
	}

	id, err := lib.AddBook(library.AddBookParams{Title: title, Author: author, TotalCopies: copies})
	if err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Book '%s' added successfully! (ID: %s)\n", title, id)
}

func handleAddMember(sc *bufio.Scanner, lib *library.Library) {
	name, ok := promptNonEmpty(sc, "Enter member name: ")
	if !ok {
		return
	}
	contact, ok := promptNonEmpty(sc, "Enter contact/email: ")
	if !ok {
		return
	}

	id, err := lib.AddMember(library.AddMemberParams{Name: name, Contact: contact})
	if err != nil {
		fmt.Printf("Error adding member: %v\n", err)
		return
	}
	fmt.Printf("Member '%s' added successfully! (ID: %s)\n", name, id)
}

func handleBorrow(sc *bufio.Scanner, lib *library.Library) {
	memberID, ok := promptNonEmpty(sc, "Enter Member ID: ")
	if !ok {
		return
	}
	bookID, ok := promptNonEmpty(sc, "Enter Book ID: ")
	if !ok {
		return
	}

	loan, err := lib.Borrow(memberID, bookID, library.DefaultLoanDays)
	switch {
	case errors.Is(err, library.ErrMemberNotFound), errors.Is(err, library.ErrBookNotFound):
		fmt.Println("Member or Book not found!")
		return
	case errors.Is(err, library.ErrNoCopiesAvailable):
		fmt.Println("No available copies.")
		return
	case err != nil:
		fmt.Printf("Error borrowing book: %v\n", err)
		return
	}

	book, _ := lib.GetBook(bookID)
	member, _ := lib.GetMember(memberID)
	fmt.Printf("'%s' borrowed by %s till %s.\n", book.Title, member.Name, loan.DueDate)
}

func handleReturn(sc *bufio.Scanner, lib *library.Library) {
	memberID, ok := promptNonEmpty(sc, "Enter Member ID: ")
	if !ok {
		return
	}
	bookID, ok := promptNonEmpty(sc, "Enter Book ID: ")
	if !ok {
		return
	}

	err := lib.Return(memberID, bookID)
	switch {
	case errors.Is(err, library.ErrMemberNotFound), errors.Is(err, library.ErrBookNotFound):
		fmt.Println("Member or Book not found!")
		return
	case err != nil:
		fmt.Printf("Error returning book: %v\n", err)
		return
	}

	book, _ := lib.GetBook(bookID)
	fmt.Printf("'%s' returned successfully.\n", book.Title)
}

func handleSearch(sc *bufio.Scanner, lib *library.Library) {
	keyword, ok := promptNonEmpty(sc, "Enter keyword: ")
	if !ok {
		return
	}
	printSearchResults(keyword, lib.SearchBooks(keyword))
}

func handleRemoveBook(sc *bufio.Scanner, lib *library.Library) {
	bookID, ok := promptNonEmpty(sc, "Enter Book ID to remove: ")
	if !ok {
		return
	}
	removed, err := lib.RemoveBook(bookID)
	if err != nil {
		fmt.Printf("Error removing book: %v\n", err)
		return
	}
	if !removed {
		fmt.Println("Book not found!")
		return
	}
	fmt.Println("Book removed successfully.")
}

func handleMemberBooks(sc *bufio.Scanner, lib *library.Library) {
	memberID, ok := promptNonEmpty(sc, "Enter Member ID: ")
	if !ok {
		return
	}
	member, err := lib.GetMember(memberID)
	if err != nil {
		fmt.Println("Member not found.")
		return
	}
	loans, err := lib.MemberLoans(memberID)
	if err != nil {
		fmt.Println("Member not found.")
		return
	}
	printMemberLoans(member.Name, loans)
}
