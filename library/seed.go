package library

import (
	"fmt"
	"strings"
)

// Demo fixture written on first run when storage is empty.

var seedBooks = []struct {
	title  string
	author string
	copies int
}{
	{"Python Basics", "John Smith", 4},
	{"Data Structures", "Mark Allen", 3},
	{"AI Fundamentals", "Andrew Ng", 2},
	{"Machine Learning", "Tom Mitchell", 5},
	{"Cybersecurity 101", "Jane Doe", 3},
	{"Database Systems", "Ramakrishnan", 2},
	{"Java Programming", "James Gosling", 3},
	{"Operating Systems", "Silberschatz", 2},
	{"Networks Explained", "Tanenbaum", 2},
	{"Cloud Computing", "Rajkumar Buyya", 3},
}

var seedMembers = []string{
	"Ali Khan", "Sara Ahmed", "Syed Asad", "Fahad Ali", "Ayesha Bano",
	"Bilal Shaikh", "Hassan Raza", "Usman Tariq", "Zainab Fatima",
	"Nida Noor", "Ahmed Ali", "Maha Iqbal",
}

func (l *Library) seedBooks() {
	for _, s := range seedBooks {
		b := &Book{ID: l.nextBookID(), Title: s.title, Author: s.author, TotalCopies: s.copies}
		l.books[b.ID] = b
		l.bookOrder = append(l.bookOrder, b.ID)
	}
}

func (l *Library) seedMembers() {
	for _, name := range seedMembers {
		first := strings.ToLower(strings.Fields(name)[0])
		m := &Member{ID: l.nextMemberID(), Name: name, Contact: fmt.Sprintf("%s@email.com", first)}
		l.members[m.ID] = m
		l.memberOrder = append(l.memberOrder, m.ID)
	}
}
