package ledger_test

import (
	"time"

	"github.com/ndewijer/Portfolio-Growth-Tracker/internal/model"
)

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func buy(symbol, date string, units, price, fees float64) model.Transaction {
	return model.Transaction{
		ID:         symbol + "-buy-" + date,
		Symbol:     symbol,
		SymbolType: model.SymbolTypeStock,
		Date:       mustDate(date),
		Type:       model.TransactionTypeBuy,
		Units:      units,
		UnitPrice:  price,
		Fees:       fees,
	}
}

func sell(symbol, date string, units, price, fees, realized float64) model.Transaction {
	return model.Transaction{
		ID:                  symbol + "-sell-" + date,
		Symbol:              symbol,
		SymbolType:          model.SymbolTypeStock,
		Date:                mustDate(date),
		Type:                model.TransactionTypeSell,
		Units:               units,
		UnitPrice:           price,
		Fees:                fees,
		RealizedReturnValue: realized,
	}
}

func crypto(tx model.Transaction) model.Transaction {
	tx.SymbolType = model.SymbolTypeCrypto
	return tx
}

// closes builds a price series from alternating date/close pairs.
func closes(pairs ...any) model.PriceSeries {
	series := make(model.PriceSeries, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		series = append(series, model.ClosePrice{
			Date:  mustDate(pairs[i].(string)),
			Close: pairs[i+1].(float64),
		})
	}
	return series
}
