// Package bank reads and edits the bank accounts stored in a save file.
//
// Accounts live under Bank.accounts. The typed Account view covers the
// fields the editor displays; Update edits a single account in place and
// leaves every other field of the save untouched.
package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/hhsav"
)

// ErrNoBank indicates the save has no Bank.accounts array.
var ErrNoBank = errors.New("save has no bank accounts")

// Account is the editable view of one bank account.
type Account struct {
	ID          string  `json:"id,omitempty"`
	AccountName string  `json:"accountName,omitempty" send.mask:"name"`
	FullName    string  `json:"fullName,omitempty" send.mask:"name"`
	Provider    string  `json:"provider,omitempty"`
	Balance     float64 `json:"balance"`
	IBAN        string  `json:"IBAN,omitempty" send.mask:"iban"`
	IsMine      bool    `json:"isMine,omitempty"`
}

// Clone implements hhsav.Cloner[Account].
func (a Account) Clone() Account { return a }

// Holder returns the name shown for the account.
func (a Account) Holder() string {
	switch {
	case a.AccountName != "":
		return a.AccountName
	case a.FullName != "":
		return a.FullName
	default:
		return "Unknown"
	}
}

// Accounts decodes every account of doc in order.
func Accounts(ctx context.Context, doc hhsav.Document) ([]Account, error) {
	list, err := accountList(doc)
	if err != nil {
		return nil, err
	}
	view, err := hhsav.UseView[Account]()
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, list.Len())
	for i, item := range list.Items() {
		account, err := view.Load(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

// Masked returns copies of accounts with holder names and IBANs masked.
func Masked(ctx context.Context, accounts []Account) ([]Account, error) {
	view, err := hhsav.UseView[Account]()
	if err != nil {
		return nil, err
	}
	masked := make([]Account, len(accounts))
	for i := range accounts {
		m, err := view.Send(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		masked[i] = *m
	}
	return masked, nil
}

// Total returns the sum of all balances.
func Total(accounts []Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}

// Patch lists the account fields to change. Nil fields are left as they are.
type Patch struct {
	AccountName *string
	Provider    *string
	Balance     *float64
	IBAN        *string
}

// Update returns a copy of doc with the account at index patched.
func Update(doc hhsav.Document, index int, patch Patch) (hhsav.Document, error) {
	list, err := accountList(doc)
	if err != nil {
		return hhsav.Document{}, err
	}
	account, ok := list.Index(index)
	if !ok {
		return hhsav.Document{}, hhsav.NewError(hhsav.ErrPath, "update account",
			fmt.Errorf("index %d out of range [0,%d)", index, list.Len()))
	}

	if patch.AccountName != nil {
		account = account.With("accountName", hhsav.String(*patch.AccountName))
	}
	if patch.Provider != nil {
		account = account.With("provider", hhsav.String(*patch.Provider))
	}
	if patch.Balance != nil {
		account = account.With("balance", hhsav.Float(*patch.Balance))
	}
	if patch.IBAN != nil {
		account = account.With("IBAN", hhsav.String(*patch.IBAN))
	}

	list, _ = list.WithIndex(index, account)
	bankSection, _ := doc.Get("Bank")
	return doc.With("Bank", bankSection.With("accounts", list)), nil
}

// accountList returns the Bank.accounts array of doc.
func accountList(doc hhsav.Document) (hhsav.Document, error) {
	bankSection, ok := doc.Get("Bank")
	if !ok {
		return hhsav.Document{}, ErrNoBank
	}
	list, ok := bankSection.Get("accounts")
	if !ok || list.Kind() != hhsav.KindArray {
		return hhsav.Document{}, ErrNoBank
	}
	return list, nil
}
