package mutators

import (
	"testing"

	"github.com/pixil98/go-forge/internal/document"
	"github.com/pixil98/go-forge/internal/store"
	"github.com/pixil98/go-testutil"
)

func TestTransfer(t *testing.T) {
	doc := seededDoc(t)
	alice := user(t, doc, "Alice")
	bob := user(t, doc, "Bob")
	before := balanceSum(doc)

	tx, err := Transfer(alice.ID, bob.ID, 250, testNow)(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "from balance", alice.Balance, document.StartingBalance-250)
	testutil.AssertEqual(t, "to balance", bob.Balance, document.StartingBalance+250)
	testutil.AssertEqual(t, "balance sum invariant", balanceSum(doc), before)
	testutil.AssertEqual(t, "tx type", tx.Type, document.TransactionTransfer)
	testutil.AssertEqual(t, "tx amount", tx.Amount, 250)
	testutil.AssertEqual(t, "ledger newest first", doc.Transactions[0].ID, tx.ID)
	checkValid(t, doc)
}

func TestTransfer_BalanceSumInvariantAcrossSequence(t *testing.T) {
	doc := seededDoc(t)
	alice := user(t, doc, "Alice")
	bob := user(t, doc, "Bob")
	before := balanceSum(doc)

	amounts := []int{100, 17, 500, 1, 382}
	for i, amt := range amounts {
		from, to := alice.ID, bob.ID
		if i%2 == 1 {
			from, to = bob.ID, alice.ID
		}
		if _, err := Transfer(from, to, amt, testNow)(doc); err != nil {
			t.Fatalf("transfer %d: unexpected error: %v", i, err)
		}
	}

	testutil.AssertEqual(t, "balance sum invariant", balanceSum(doc), before)
	testutil.AssertEqual(t, "ledger entries", len(doc.Transactions), len(amounts))
	checkValid(t, doc)
}

func TestTransfer_Failures(t *testing.T) {
	tests := map[string]struct {
		from, to func(doc *document.Document) string
		amount   int
		expKind  store.Kind
	}{
		"zero amount": {
			from:    func(d *document.Document) string { return user(t, d, "Alice").ID },
			to:      func(d *document.Document) string { return user(t, d, "Bob").ID },
			amount:  0,
			expKind: store.KindInvalidInput,
		},
		"negative amount": {
			from:    func(d *document.Document) string { return user(t, d, "Alice").ID },
			to:      func(d *document.Document) string { return user(t, d, "Bob").ID },
			amount:  -50,
			expKind: store.KindInvalidInput,
		},
		"self transfer": {
			from:    func(d *document.Document) string { return user(t, d, "Alice").ID },
			to:      func(d *document.Document) string { return user(t, d, "Alice").ID },
			amount:  10,
			expKind: store.KindInvalidInput,
		},
		"unknown sender": {
			from:    func(d *document.Document) string { return "ghost" },
			to:      func(d *document.Document) string { return user(t, d, "Bob").ID },
			amount:  10,
			expKind: store.KindNotFound,
		},
		"unknown recipient": {
			from:    func(d *document.Document) string { return user(t, d, "Alice").ID },
			to:      func(d *document.Document) string { return "ghost" },
			amount:  10,
			expKind: store.KindNotFound,
		},
		"insufficient funds": {
			from:    func(d *document.Document) string { return user(t, d, "Alice").ID },
			to:      func(d *document.Document) string { return user(t, d, "Bob").ID },
			amount:  document.StartingBalance + 1,
			expKind: store.KindInsufficientFunds,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := seededDoc(t)
			before := balanceSum(doc)

			_, err := Transfer(tt.from(doc), tt.to(doc), tt.amount, testNow)(doc)
			if !store.IsKind(err, tt.expKind) {
				t.Fatalf("expected kind %q, got: %v", tt.expKind, err)
			}

			testutil.AssertEqual(t, "balance sum unchanged", balanceSum(doc), before)
			testutil.AssertEqual(t, "no ledger entry", len(doc.Transactions), 0)
		})
	}
}
