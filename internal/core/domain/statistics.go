package domain

import "github.com/shopspring/decimal"

// TransactionStatistics is the dashboard rollup computed by the reporting query.
type TransactionStatistics struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalTransfers    int64           `json:"totalTransfers"`
	TotalWithdrawals  int64           `json:"totalWithdrawals"`
	PendingCount      int64           `json:"pendingCount"`
	TodayCount        int64           `json:"todayCount"`
	TotalAmountSent   decimal.Decimal `json:"totalAmountSent"`
	TotalAmountNet    decimal.Decimal `json:"totalAmountNet"`
	TotalFees         decimal.Decimal `json:"totalFees"`
}
