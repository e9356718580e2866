package mutators

import (
	"testing"
	"time"

	"github.com/pixil98/go-forge/internal/document"
)

var testNow = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

// seededDoc returns a document with two registered users.
func seededDoc(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New()

	for _, name := range []string{"Alice", "Bob"} {
		if _, err := RegisterUser(name, testNow)(doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	return doc
}

func user(t *testing.T, doc *document.Document, name string) *document.User {
	t.Helper()
	u := doc.UserByUsername(name)
	if u == nil {
		t.Fatalf("user %q not in document", name)
	}
	return u
}

// checkValid asserts the mutation preserved every document invariant.
func checkValid(t *testing.T, doc *document.Document) {
	t.Helper()
	if err := doc.Validate(); err != nil {
		t.Fatalf("document invariants violated: %v", err)
	}
}

func balanceSum(doc *document.Document) int {
	sum := 0
	for _, u := range doc.Users {
		sum += u.Balance
	}
	return sum
}
