package main

import (
	"flag"
	"fmt"
	"os"

	"libman/library"
)

// Batch exporter: snapshots books.json/members.json into a SQLite database
// so the catalog, roster and loans can be queried with plain SQL.
func main() {
	dataDir := flag.String("data-dir", ".", "directory holding books.json and members.json")
	out := flag.String("out", "library.db", "SQLite file to write")
	flag.Parse()

	lib, err := library.Open(library.Options{DataDir: *dataDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading library: %v\n", err)
		os.Exit(1)
	}

	if err := lib.ExportSQLite(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d books and %d members to %s\n",
		len(lib.ListBooks()), len(lib.ListMembers()), *out)
}
