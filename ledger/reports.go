package ledger

// Statement derivation. Reports are structured values over replayed
// balances; formatting them to text or currency symbols is the caller's
// concern. A report that fails its own consistency check is returned as
// ErrOutOfBalance rather than as an approximate statement.

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow reports one account's balance on a single side: the
// normal side when the balance is positive, the opposite side when an
// account has swung negative.
type TrialBalanceRow struct {
	Account Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalance lists every account's balance as of a date. TotalDebit and
// TotalCredit always tie for a consistent ledger.
type TrialBalance struct {
	AsOf        time.Time
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// AccountBalanceLine pairs an account with a computed balance signed on the
// account's normal side.
type AccountBalanceLine struct {
	Account Account
	Balance decimal.Decimal
}

// BalanceSheet is the position statement as of a date. Income and expense
// activity up to AsOf is folded into equity as RetainedEarnings so that
// TotalAssets equals TotalLiabilities plus TotalEquity.
type BalanceSheet struct {
	AsOf        time.Time
	Assets      []AccountBalanceLine
	Liabilities []AccountBalanceLine
	Equity      []AccountBalanceLine
	// RetainedEarnings is net income to date (income minus expense),
	// included in TotalEquity.
	RetainedEarnings decimal.Decimal
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalEquity      decimal.Decimal
}

// IncomeStatement is the performance statement over an inclusive date range.
type IncomeStatement struct {
	Start         time.Time
	End           time.Time
	Revenue       []AccountBalanceLine
	Expenses      []AccountBalanceLine
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// GenerateTrialBalance reports every account's balance as of the given date,
// each on its normal side. It fails with ErrOutOfBalance when total debits
// and credits do not tie, which can only happen if storage has been mutated
// behind the ledger's back.
func (l *Ledger) GenerateTrialBalance(ctx context.Context, asOf time.Time) (TrialBalance, error) {
	accounts, err := l.store.ListAccounts(ctx)
	if err != nil {
		return TrialBalance{}, fmt.Errorf("list accounts: %w", err)
	}
	to := Day(asOf)
	flows, err := l.flows(ctx, nil, &to)
	if err != nil {
		return TrialBalance{}, err
	}

	tb := TrialBalance{AsOf: to, Rows: make([]TrialBalanceRow, 0, len(accounts)), TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, a := range accounts {
		f := flows[a.ID]
		net := f.debits.Sub(f.credits)
		row := TrialBalanceRow{Account: a, Debit: decimal.Zero, Credit: decimal.Zero}
		if net.IsNegative() {
			row.Credit = net.Neg()
		} else {
			row.Debit = net
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		return TrialBalance{}, fmt.Errorf("trial balance as of %s: debits %s, credits %s: %w",
			to.Format(time.DateOnly), tb.TotalDebit, tb.TotalCredit, ErrOutOfBalance)
	}
	return tb, nil
}

// GenerateBalanceSheet derives the position statement as of the given date.
// The accounting identity Assets = Liabilities + Equity is verified and a
// violation surfaces as ErrOutOfBalance.
func (l *Ledger) GenerateBalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	accounts, err := l.store.ListAccounts(ctx)
	if err != nil {
		return BalanceSheet{}, fmt.Errorf("list accounts: %w", err)
	}
	to := Day(asOf)
	flows, err := l.flows(ctx, nil, &to)
	if err != nil {
		return BalanceSheet{}, err
	}

	bs := BalanceSheet{
		AsOf:             to,
		RetainedEarnings: decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, a := range accounts {
		bal := flows[a.ID].normalBalance(a.Type)
		line := AccountBalanceLine{Account: a, Balance: bal}
		switch a.Type {
		case AccountTypeAsset:
			bs.Assets = append(bs.Assets, line)
			bs.TotalAssets = bs.TotalAssets.Add(bal)
		case AccountTypeLiability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(bal)
		case AccountTypeEquity:
			bs.Equity = append(bs.Equity, line)
			bs.TotalEquity = bs.TotalEquity.Add(bal)
		case AccountTypeIncome:
			bs.RetainedEarnings = bs.RetainedEarnings.Add(bal)
		case AccountTypeExpense:
			bs.RetainedEarnings = bs.RetainedEarnings.Sub(bal)
		}
	}
	bs.TotalEquity = bs.TotalEquity.Add(bs.RetainedEarnings)
	if !bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)) {
		return BalanceSheet{}, fmt.Errorf("balance sheet as of %s: assets %s, liabilities %s, equity %s: %w",
			to.Format(time.DateOnly), bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity, ErrOutOfBalance)
	}
	return bs, nil
}

// GenerateIncomeStatement derives revenue, expenses and net income over the
// inclusive [start, end] range.
func (l *Ledger) GenerateIncomeStatement(ctx context.Context, start, end time.Time) (IncomeStatement, error) {
	accounts, err := l.store.ListAccounts(ctx)
	if err != nil {
		return IncomeStatement{}, fmt.Errorf("list accounts: %w", err)
	}
	from, to := Day(start), Day(end)
	flows, err := l.flows(ctx, &from, &to)
	if err != nil {
		return IncomeStatement{}, err
	}

	is := IncomeStatement{
		Start:         from,
		End:           to,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, a := range accounts {
		switch a.Type {
		case AccountTypeIncome:
			bal := flows[a.ID].normalBalance(a.Type)
			is.Revenue = append(is.Revenue, AccountBalanceLine{Account: a, Balance: bal})
			is.TotalRevenue = is.TotalRevenue.Add(bal)
		case AccountTypeExpense:
			bal := flows[a.ID].normalBalance(a.Type)
			is.Expenses = append(is.Expenses, AccountBalanceLine{Account: a, Balance: bal})
			is.TotalExpenses = is.TotalExpenses.Add(bal)
		}
	}
	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)
	return is, nil
}
