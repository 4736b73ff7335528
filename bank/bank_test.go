package bank_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bank"
	hhtesting "github.com/zoobzio/hhsav/testing"
)

func TestAccounts(t *testing.T) {
	accounts, err := bank.Accounts(context.Background(), hhtesting.SampleSave())
	if err != nil {
		t.Fatalf("Accounts() error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("len(Accounts()) = %d, want 2", len(accounts))
	}

	first := accounts[0]
	if first.Holder() != "John Smith" || first.Provider != "Fleeca" || first.Balance != 1500 || !first.IsMine {
		t.Errorf("accounts[0] = %+v", first)
	}
	if accounts[1].Balance != -20 {
		t.Errorf("accounts[1].Balance = %v, want -20", accounts[1].Balance)
	}
	if got := bank.Total(accounts); got != 1480 {
		t.Errorf("Total() = %v, want 1480", got)
	}
}

func TestAccounts_NoBank(t *testing.T) {
	tests := []struct {
		name string
		doc  hhsav.Document
	}{
		{"no bank section", hhtesting.ScenarioDocument()},
		{"accounts not an array", hhsav.Object(map[string]hhsav.Document{
			"Bank": hhsav.Object(map[string]hhsav.Document{"accounts": hhsav.String("none")}),
		})},
		{"top-level array", hhsav.Array()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := bank.Accounts(context.Background(), tt.doc); !errors.Is(err, bank.ErrNoBank) {
				t.Errorf("Accounts() error = %v, want ErrNoBank", err)
			}
		})
	}
}

func TestAccount_Holder(t *testing.T) {
	tests := []struct {
		account bank.Account
		want    string
	}{
		{bank.Account{AccountName: "Savings", FullName: "John Smith"}, "Savings"},
		{bank.Account{FullName: "John Smith"}, "John Smith"},
		{bank.Account{}, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.account.Holder(); got != tt.want {
			t.Errorf("Holder() = %q, want %q", got, tt.want)
		}
	}
}

func TestMasked(t *testing.T) {
	ctx := context.Background()
	accounts, err := bank.Accounts(ctx, hhtesting.SampleSave())
	if err != nil {
		t.Fatalf("Accounts() error: %v", err)
	}

	masked, err := bank.Masked(ctx, accounts)
	if err != nil {
		t.Fatalf("Masked() error: %v", err)
	}
	if masked[0].AccountName != "J*** S****" {
		t.Errorf("AccountName = %q", masked[0].AccountName)
	}
	if masked[0].IBAN != "GB82**************5432" {
		t.Errorf("IBAN = %q", masked[0].IBAN)
	}
	if masked[0].Balance != 1500 || masked[0].Provider != "Fleeca" {
		t.Errorf("unmasked fields changed: %+v", masked[0])
	}
	if accounts[0].AccountName != "John Smith" {
		t.Error("Masked() modified its input")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	save := hhtesting.SampleSave()

	balance := 25000.75
	provider := "Maze Bank"
	updated, err := bank.Update(save, 1, bank.Patch{Balance: &balance, Provider: &provider})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	accounts, err := bank.Accounts(ctx, updated)
	if err != nil {
		t.Fatalf("Accounts() error: %v", err)
	}
	if accounts[1].Balance != balance || accounts[1].Provider != provider {
		t.Errorf("accounts[1] = %+v", accounts[1])
	}
	if accounts[1].AccountName != "Jane Doe" {
		t.Error("unpatched fields should keep their values")
	}

	// Fields the typed view does not know about are preserved.
	history, ok, err := hhsav.Lookup(updated, "Bank.accounts.1.history")
	if err != nil || !ok || history.Kind() != hhsav.KindArray {
		t.Errorf("history = %v, %v, %v", history.Interface(), ok, err)
	}
	if quests, _ := updated.Get("Quests"); quests.Len() != 1 {
		t.Error("other sections should be untouched")
	}

	// The input document is not modified.
	before, _ := bank.Accounts(ctx, save)
	if before[1].Balance != -20 {
		t.Error("Update() modified its input")
	}
}

func TestUpdate_Errors(t *testing.T) {
	name := "x"

	_, err := bank.Update(hhtesting.SampleSave(), 5, bank.Patch{AccountName: &name})
	if !errors.Is(err, hhsav.ErrPath) {
		t.Errorf("Update(5) error = %v, want ErrPath", err)
	}

	_, err = bank.Update(hhtesting.ScenarioDocument(), 0, bank.Patch{AccountName: &name})
	if !errors.Is(err, bank.ErrNoBank) {
		t.Errorf("Update() without a bank error = %v, want ErrNoBank", err)
	}
}

func TestUpdate_RoundTripsThroughSave(t *testing.T) {
	ctx := context.Background()
	iban := "NL91ABNA0417164300"

	updated, err := bank.Update(hhtesting.SampleSave(), 0, bank.Patch{IBAN: &iban})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	doc, err := hhsav.DecodeCompressed(ctx, hhtesting.MustEncode(t, updated))
	if err != nil {
		t.Fatalf("DecodeCompressed() error: %v", err)
	}
	accounts, err := bank.Accounts(ctx, doc)
	if err != nil {
		t.Fatalf("Accounts() error: %v", err)
	}
	if accounts[0].IBAN != iban {
		t.Errorf("IBAN = %q, want %q", accounts[0].IBAN, iban)
	}
}

func TestUpdate_BalanceWrittenAsPlainNumber(t *testing.T) {
	balance := 1000000.0
	updated, err := bank.Update(hhtesting.SampleSave(), 0, bank.Patch{Balance: &balance})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	value, ok, err := hhsav.Lookup(updated, "Bank.accounts.0.balance")
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	literal, _ := value.Number()
	if literal != "1000000" {
		t.Errorf("balance literal = %q, want 1000000", literal)
	}
}
