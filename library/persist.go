package library

import (
	"errors"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Storage artifact names inside the data directory.
const (
	booksFile   = "books.json"
	membersFile = "members.json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// load reads both artifacts wholesale. A missing file is a first run and
// loads as an empty collection.
func (l *Library) load() error {
	var books []*Book
	if err := readArray(l.booksPath, &books); err != nil {
		return err
	}
	for _, b := range books {
		l.books[b.ID] = b
		l.bookOrder = append(l.bookOrder, b.ID)
	}

	var members []*Member
	if err := readArray(l.membersPath, &members); err != nil {
		return err
	}
	for _, m := range members {
		l.members[m.ID] = m
		l.memberOrder = append(l.memberOrder, m.ID)
	}
	return nil
}

// Save rewrites both artifacts in full, books first. There is no temp-file
// rename: a crash between the two writes can leave the artifacts mutually
// inconsistent.
func (l *Library) Save() error {
	if err := writeArray(l.booksPath, l.ListBooks()); err != nil {
		return err
	}
	return writeArray(l.membersPath, l.ListMembers())
}

func readArray[T any](path string, dst *[]T) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedStorage, path, err)
	}
	return nil
}

func writeArray[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
