package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"libman/library"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "books", Short: "Manage the book catalog"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			printBooks(lib.ListBooks())
			return nil
		},
	}

	var (
		title  string
		author string
		copies int
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			id, err := lib.AddBook(library.AddBookParams{Title: title, Author: author, TotalCopies: copies})
			if err != nil {
				return err
			}
			fmt.Printf("Added book %s: '%s' by %s (%d copies).\n", id, title, author, copies)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "book title")
	add.Flags().StringVar(&author, "author", "", "author name")
	add.Flags().IntVar(&copies, "copies", 1, "total copies")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("author")

	remove := &cobra.Command{
		Use:   "remove <book-id>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			ok, err := lib.RemoveBook(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Book not found!")
				return nil
			}
			fmt.Println("Book removed successfully.")
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search books by title or author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			printSearchResults(args[0], lib.SearchBooks(args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, search)
	return cmd
}

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "members", Short: "Manage the member roster"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			printMembers(lib.ListMembers())
			return nil
		},
	}

	var (
		name    string
		contact string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a new member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			id, err := lib.AddMember(library.AddMemberParams{Name: name, Contact: contact})
			if err != nil {
				return err
			}
			fmt.Printf("Added member %s: %s.\n", id, name)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "member name")
	add.Flags().StringVar(&contact, "contact", "", "contact or email")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("contact")

	show := &cobra.Command{
		Use:   "show <member-id>",
		Short: "Show a member and their borrowed books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			m, err := lib.GetMember(args[0])
			if err != nil {
				return err
			}
			loans, err := lib.MemberLoans(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s | %s | %s\n", m.ID, m.Name, m.Contact)
			printMemberLoans(m.Name, loans)
			return nil
		},
	}

	cmd.AddCommand(list, add, show)
	return cmd
}

func newBorrowCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "borrow <member-id> <book-id>",
		Short: "Lend a copy of a book to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			loan, err := lib.Borrow(args[0], args[1], days)
			if err != nil {
				return err
			}
			fmt.Printf("Borrowed %s for %s, due %s.\n", args[1], args[0], loan.DueDate)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", library.DefaultLoanDays, "loan period in days")
	return cmd
}

func newReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return <member-id> <book-id>",
		Short: "Record the return of a borrowed book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			if err := lib.Return(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Returned %s for %s.\n", args[1], args[0])
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show each member's outstanding borrow count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			printSummary(lib.BorrowSummary())
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <sqlite-file>",
		Short: "Snapshot the library into a SQLite database for ad-hoc SQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := openLibrary()
			if err != nil {
				return err
			}
			if err := lib.ExportSQLite(args[0]); err != nil {
				return err
			}
			fmt.Printf("Exported %d books and %d members to %s.\n",
				len(lib.ListBooks()), len(lib.ListMembers()), args[0])
			return nil
		},
	}
}
