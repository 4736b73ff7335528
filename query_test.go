package hhsav

import (
	"errors"
	"testing"
)

func bankDoc() Document {
	return Object(map[string]Document{
		"Bank": Object(map[string]Document{
			"accounts": Array(
				Object(map[string]Document{"accountName": String("John"), "balance": Int(1500)}),
				Object(map[string]Document{"accountName": String("Jane"), "balance": Int(-20)}),
			),
		}),
		"Suspicion": NumberOf("9007199254740993"),
	})
}

func TestLookup(t *testing.T) {
	tests := []struct {
		path string
		want Document
	}{
		{"Bank.accounts.1.balance", Int(-20)},
		{"Bank.accounts.0.accountName", String("John")},
		{"Bank.accounts.#", Int(2)},
		{"Bank.accounts.#.accountName", Array(String("John"), String("Jane"))},
		{"Suspicion", NumberOf("9007199254740993")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok, err := Lookup(bankDoc(), tt.path)
			if err != nil {
				t.Fatalf("Lookup() error: %v", err)
			}
			if !ok {
				t.Fatal("Lookup() found nothing")
			}
			if !got.Equal(tt.want) {
				t.Errorf("Lookup() = %v, want %v", got.Interface(), tt.want.Interface())
			}
		})
	}
}

func TestLookup_Missing(t *testing.T) {
	_, ok, err := Lookup(bankDoc(), "Bank.loans")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if ok {
		t.Error("Lookup(Bank.loans) should report false")
	}

	if _, _, err := Lookup(bankDoc(), ""); !errors.Is(err, ErrPath) {
		t.Errorf("Lookup(\"\") error = %v, want ErrPath", err)
	}
}

func TestSetPath(t *testing.T) {
	doc := bankDoc()

	updated, err := SetPath(doc, "Bank.accounts.0.balance", Int(99))
	if err != nil {
		t.Fatalf("SetPath() error: %v", err)
	}
	got, _, _ := Lookup(updated, "Bank.accounts.0.balance")
	if !got.Equal(Int(99)) {
		t.Errorf("balance = %v, want 99", got.Interface())
	}

	// The original is untouched and unrelated values keep their literals.
	orig, _, _ := Lookup(doc, "Bank.accounts.0.balance")
	if !orig.Equal(Int(1500)) {
		t.Error("SetPath() modified its input")
	}
	suspicion, _ := updated.Get("Suspicion")
	if n, _ := suspicion.Number(); n != "9007199254740993" {
		t.Errorf("Suspicion = %s, want 9007199254740993", n)
	}

	created, err := SetPath(doc, "Player.stats.level", Int(7))
	if err != nil {
		t.Fatalf("SetPath() error: %v", err)
	}
	level, ok, _ := Lookup(created, "Player.stats.level")
	if !ok || !level.Equal(Int(7)) {
		t.Errorf("Player.stats.level = %v, %v", level.Interface(), ok)
	}

	if _, err := SetPath(doc, "", Null()); !errors.Is(err, ErrPath) {
		t.Errorf("SetPath(\"\") error = %v, want ErrPath", err)
	}
}

func TestDeletePath(t *testing.T) {
	updated, err := DeletePath(bankDoc(), "Suspicion")
	if err != nil {
		t.Fatalf("DeletePath() error: %v", err)
	}
	if _, ok := updated.Get("Suspicion"); ok {
		t.Error("Suspicion should be gone")
	}
	if _, ok := updated.Get("Bank"); !ok {
		t.Error("Bank should remain")
	}

	if _, err := DeletePath(bankDoc(), ""); !errors.Is(err, ErrPath) {
		t.Errorf("DeletePath(\"\") error = %v, want ErrPath", err)
	}
}
