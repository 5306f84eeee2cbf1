package ledger

import (
	"sort"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

// indexedTransaction remembers where a record sat in the caller's ledger
// so validation errors can point back at it after grouping.
type indexedTransaction struct {
	model.Transaction
	index int
}

// groupBySymbol splits a ledger into per-symbol slices.
// The relative order of records within a symbol is preserved exactly; the engine never re-sorts,
// because same-day BUY/SELL order changes the intermediate cost basis.
//
// Returns the groups and the symbols in ascending order.
func groupBySymbol(transactions []model.Transaction) (map[string][]indexedTransaction, []string) {
	groups := make(map[string][]indexedTransaction)
	symbols := make([]string, 0)

	for i, tx := range transactions {
		if _, seen := groups[tx.Symbol]; !seen {
			symbols = append(symbols, tx.Symbol)
		}
		groups[tx.Symbol] = append(groups[tx.Symbol], indexedTransaction{Transaction: tx, index: i})
	}

	sort.Strings(symbols)
	return groups, symbols
}
