package httpapi

import "github.com/tinoosan/atm/internal/atm"

// accountResponse never includes the PIN.
type accountResponse struct {
	Card         int64  `json:"card"`
	Owner        string `json:"owner"`
	Currency     string `json:"currency"`
	Balance      string `json:"balance"`
	BalanceMinor int64  `json:"balance_minor"`
}

type listAccountsResponse struct {
	Accounts []accountResponse `json:"accounts"`
}

func toAccountResponse(a atm.Account) accountResponse {
	units, _ := a.Balance.MinorUnits()
	return accountResponse{
		Card:         a.Key.Card,
		Owner:        a.Owner,
		Currency:     a.Balance.Curr().Code(),
		Balance:      atm.FormatDollars(a.Balance),
		BalanceMinor: units,
	}
}
