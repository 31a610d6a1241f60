package account

import (
	"strings"
	"testing"
)

// The default account is the first one authorized. Ordering on created
// keeps that stable: modified moves on every token refresh and media
// count write-back, created never does.
func TestSelectAccountsOrdersByCreation(t *testing.T) {
	query, _, err := selectAccounts().Limit(1).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	if !strings.Contains(query, "ORDER BY created ASC") {
		t.Errorf("query = %q, want it ordered by creation time", query)
	}
	if strings.Contains(query, "ORDER BY modified") {
		t.Errorf("query = %q, must not order by the volatile modified column", query)
	}
	if !strings.Contains(query, "LIMIT 1") {
		t.Errorf("query = %q, want a single row", query)
	}
}
