package ops

import (
	"github.com/shopspring/decimal"

	"main/internal/strategy"
)

const (
	defaultAuthAddr     = ":7070"
	defaultDataAddr     = ":7071"
	defaultTerminalAddr = ":7072"
)

// DefaultInstruments is the instrument universe served when the config
// names none.
func DefaultInstruments() []InstrumentConfig {
	out := make([]InstrumentConfig, 0, 64)

	add := func(venue, category string, symbols ...string) {
		for _, symbol := range symbols {
			out = append(out, InstrumentConfig{Venue: venue, Category: category, Symbol: symbol})
		}
	}

	add("Okx", "Spot",
		"BTC-USDT", "ETH-USDT", "BNB-USDT", "XRP-USDT", "FLM-USDT",
		"LTC-USDT", "ARB-USDT", "SUI-USDT", "SOL-USDT")
	add("Okx", "Futures", "BTC-USDT-", "ETH-USDT-")
	add("Okx", "Swap",
		"BTC-USDT-SWAP", "ETH-USDT-SWAP", "BNB-USDT-SWAP", "XRP-USDT-SWAP",
		"FLM-USDT-SWAP", "LTC-USDT-SWAP", "ARB-USDT-SWAP", "SUI-USDT-SWAP",
		"SOL-USDT-SWAP")

	add("Bybit", "Spot",
		"BTCUSDT", "ETHUSDT", "BNBUSDT", "XRPUSDT",
		"LTCUSDT", "ARBUSDT", "SUIUSDT", "SOLUSDT")
	add("Bybit", "Futures", "BTCUSDT", "ETHUSDT")
	add("Bybit", "InverseFutures", "BTCUSD", "ETHUSD")

	add("Binance", "Spot",
		"BTCUSDT", "ETHUSDT", "BNBUSDT", "XRPUSDT",
		"FLMUSDT", "LTCUSDT", "ARBUSDT", "SUIUSDT")
	add("Binance", "UsdFutures",
		"BTCUSDT", "BTCUSDT_", "ETHUSDT", "ETHUSDT_", "BNBUSDT",
		"XRPUSDT", "FLMUSDT", "LTCUSDT", "ARBUSDT", "SUIUSDT")
	add("Binance", "CoinFutures",
		"BTCUSD_", "BTCUSD_PERP", "ETHUSD_", "ETHUSD_PERP", "BNBUSD_",
		"BNBUSD_PERP", "XRPUSD_", "XRPUSD_PERP", "LTCUSD_", "LTCUSD_PERP")

	add("Terminal", "SPBFUT",
		"Si", "CR", "Eu", "ED", "NG", "GD", "BR", "SV", "SF",
		"RI", "MX", "RM", "MM", "SR", "GZ", "LK", "MN", "RN")
	add("Terminal", "TQBR",
		"SBER", "MTLR", "LKOH", "SNGSP", "GAZP", "GMKN", "VKCO", "MOEX",
		"MGNT", "ROSN", "VTBR", "SNGS", "ALRS", "TATN", "SGZH", "TRNFP",
		"MTSS")

	return out
}

// DefaultStrategies is the strategy catalog served when the config
// names none: a spot/futures spread pair and a mean reversion single
// per crypto venue, plus a mean reversion single on the terminal.
func DefaultStrategies() []strategy.Spec {
	qty := decimal.RequireFromString("0.1")
	one := decimal.NewFromInt(1)
	cent := decimal.RequireFromString("0.01")

	spread := func(code, venue string, spot, futures strategy.LegSpec) strategy.Spec {
		return strategy.Spec{
			Code:     code,
			Venue:    venue,
			Kind:     strategy.KindSpread,
			Leverage: 1,
			Legs:     []strategy.LegSpec{spot, futures},
		}
	}
	meanRev := func(code, venue string, leg strategy.LegSpec) strategy.Spec {
		return strategy.Spec{
			Code:     code,
			Venue:    venue,
			Kind:     strategy.KindMeanReversion,
			Leverage: 1,
			Legs:     []strategy.LegSpec{leg},
		}
	}
	leg := func(venue, symbol, category string, minQty, priceStep decimal.Decimal, precision int) strategy.LegSpec {
		return strategy.LegSpec{
			Venue:     venue,
			Symbol:    symbol,
			Category:  category,
			MinQty:    minQty,
			PriceStep: priceStep,
			Precision: precision,
		}
	}

	return []strategy.Spec{
		spread("0001", "Okx",
			leg("Okx", "BTC-USDT", "Spot", qty, one, 5),
			leg("Okx", "BTC-USDT-", "Futures", qty, cent, 1)),
		spread("0002", "Okx",
			leg("Okx", "ETH-USDT", "Spot", qty, one, 4),
			leg("Okx", "ETH-USDT-", "Futures", qty, cent, 1)),
		meanRev("0003", "Okx",
			leg("Okx", "BTC-USDT", "Spot", qty, one, 5)),

		spread("1001", "Binance",
			leg("Binance", "BTCUSDT", "Spot", qty, one, 3),
			leg("Binance", "BTCUSDT_", "UsdFutures", qty, cent, 1)),
		spread("1002", "Binance",
			leg("Binance", "ETHUSDT", "Spot", qty, one, 3),
			leg("Binance", "ETHUSDT_", "UsdFutures", qty, cent, 1)),
		meanRev("1003", "Binance",
			leg("Binance", "BTCUSDT", "Spot", qty, one, 3)),

		spread("2001", "Bybit",
			leg("Bybit", "BTCUSDT", "Spot", qty, one, 3),
			leg("Bybit", "BTCUSD", "InverseFutures", qty, one, 4)),
		spread("2002", "Bybit",
			leg("Bybit", "ETHUSDT", "Spot", qty, one, 2),
			leg("Bybit", "ETHUSD", "InverseFutures", qty, one, 1)),
		meanRev("2003", "Bybit",
			leg("Bybit", "BTCUSDT", "Spot", qty, one, 3)),

		meanRev("3003", "Terminal",
			leg("Terminal", "SBER", "TQBR", one, one, 1)),
	}
}
