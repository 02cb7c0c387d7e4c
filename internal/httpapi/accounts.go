package httpapi

import (
	"net/http"
	"sort"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/atm/internal/atm"
)

// GET /v1/accounts
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Accounts(r.Context())
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	list := make([]atm.Account, 0, len(all))
	for _, a := range all {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Key.Card == list[j].Key.Card {
			return list[i].Key.PIN < list[j].Key.PIN
		}
		return list[i].Key.Card < list[j].Key.Card
	})
	resp := listAccountsResponse{Accounts: make([]accountResponse, 0, len(list))}
	for _, a := range list {
		resp.Accounts = append(resp.Accounts, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, resp)
}

// GET /v1/accounts/{card}/ledger with the PIN in X-ATM-PIN.
// The body is the same text PrintLedger writes to disk.
func (s *Server) getAccountLedger(w http.ResponseWriter, r *http.Request) {
	pin := r.Header.Get(PINHeader)
	if pin == "" {
		badRequest(w, PINHeader+" header is required")
		return
	}
	key, err := atm.ParseKey(chi.URLParam(r, "card"), pin)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	hist, err := s.svc.History(r.Context(), key)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	var b strings.Builder
	for _, tx := range hist {
		b.WriteString(tx.Description)
		b.WriteByte('\n')
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}
