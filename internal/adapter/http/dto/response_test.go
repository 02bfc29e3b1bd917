package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iho/accountledger/internal/domain"
	"github.com/iho/accountledger/internal/usecase"
)

func TestBalanceFromDomain(t *testing.T) {
	body, err := json.Marshal(BalanceFromDomain(domain.Balance{Balance: -9098, Limit: 100000}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(body) != `{"limite":100000,"saldo":-9098}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestStatementFromDomain(t *testing.T) {
	at := time.Date(2024, 1, 17, 2, 34, 41, 0, time.UTC)
	statement := &domain.Statement{
		GeneratedAt: at,
		Balance:     -9098,
		Limit:       100000,
		Transactions: []domain.Transaction{
			{Amount: 10, Kind: domain.KindCredit, Description: "descricao", OccurredAt: at},
			{Amount: 90000, Kind: domain.KindDebit, Description: "descricao", OccurredAt: at.Add(-time.Second)},
		},
	}

	resp := StatementFromDomain(statement)

	if resp.Balance.Total != -9098 || resp.Balance.Limit != 100000 || !resp.Balance.GeneratedAt.Equal(at) {
		t.Fatalf("unexpected balance block: %+v", resp.Balance)
	}

	if len(resp.Transactions) != 2 || resp.Transactions[0].Kind != "c" || resp.Transactions[1].Amount != 90000 {
		t.Fatalf("unexpected transactions: %+v", resp.Transactions)
	}
}

func TestStatementFromDomain_EmptyHistoryEncodesAsArray(t *testing.T) {
	resp := StatementFromDomain(&domain.Statement{Limit: 100000})

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if txs, ok := decoded["ultimas_transacoes"].([]any); !ok || len(txs) != 0 {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestReconciliationsFromUseCase(t *testing.T) {
	if got := ReconciliationsFromUseCase(nil); got != nil {
		t.Fatalf("expected nil for no drift, got %+v", got)
	}

	got := ReconciliationsFromUseCase([]usecase.ReconciliationResult{
		{AccountID: "2", RecordedBalance: 70, CalculatedBalance: 10},
	})

	if len(got) != 1 || got[0].AccountID != "2" || got[0].CalculatedBalance != 10 {
		t.Fatalf("unexpected response: %+v", got)
	}
}
