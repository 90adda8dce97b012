package tycoon

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Totals is the aggregated row of a summary. PercentOfPotential is recomputed
// from the summed earnings, not averaged across rounds.
type Totals struct {
	WorkersNeeded      int
	WorkersWorked      int
	MaxEarnings        decimal.Decimal
	ActualEarnings     decimal.Decimal
	PercentOfPotential decimal.Decimal
}

// Summary is the end-of-game table: one row per round plus totals.
type Summary struct {
	Rows  []RoundResult
	Total Totals
}

// SummaryHeader names the columns produced by Summary.Table.
var SummaryHeader = []string{
	"Round", "Max Bill Rate", "Used Bill Rate", "Workers Needed",
	"Workers Worked", "Max Earnings", "Actual Earnings", "% of Potential Earned",
}

// Summarize derives the summary table. The session is not modified.
func (s *Session) Summarize() Summary {
	rows := s.Results()
	total := Totals{MaxEarnings: decimal.Zero, ActualEarnings: decimal.Zero}
	for _, r := range rows {
		total.WorkersNeeded += r.WorkersNeeded
		total.WorkersWorked += r.WorkersWorked
		total.MaxEarnings = total.MaxEarnings.Add(r.MaxEarnings)
		total.ActualEarnings = total.ActualEarnings.Add(r.ActualEarnings)
	}
	total.PercentOfPotential = PercentOf(total.ActualEarnings, total.MaxEarnings)
	return Summary{Rows: rows, Total: total}
}

// Table renders the summary as display strings, header first and the totals
// row last. Bill rate cells are blank on the totals row.
func (s Summary) Table() [][]string {
	table := make([][]string, 0, len(s.Rows)+2)
	table = append(table, append([]string(nil), SummaryHeader...))
	for _, r := range s.Rows {
		table = append(table, []string{
			strconv.Itoa(r.RoundNumber),
			FormatMoney(r.MaxBillRate),
			FormatMoney(r.UsedBillRate),
			strconv.Itoa(r.WorkersNeeded),
			strconv.Itoa(r.WorkersWorked),
			FormatMoney(r.MaxEarnings),
			FormatMoney(r.ActualEarnings),
			FormatPercent(r.PercentOfPotential),
		})
	}
	table = append(table, []string{
		"Total", "", "",
		strconv.Itoa(s.Total.WorkersNeeded),
		strconv.Itoa(s.Total.WorkersWorked),
		FormatMoney(s.Total.MaxEarnings),
		FormatMoney(s.Total.ActualEarnings),
		FormatPercent(s.Total.PercentOfPotential),
	})
	return table
}
