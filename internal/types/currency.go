package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"usd": "$",
	"cad": "CA$",
	"mxn": "MX$",
}

// CurrencyConfig holds rendering rules for a currency
type CurrencyConfig struct {
	Symbol    string
	Precision int32
}

// GetCurrencySymbol returns the symbol for a given currency code
// if the code is not found, it returns the code itself
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return code
}

// GetCurrencyConfig returns the rendering config for a currency code.
// All supported currencies use two decimal places.
func GetCurrencyConfig(code string) CurrencyConfig {
	return CurrencyConfig{
		Symbol:    GetCurrencySymbol(code),
		Precision: 2,
	}
}

// FormatAmountToStringWithPrecision rounds the amount to the currency
// precision and formats it as a plain decimal string. Money is kept at
// full decimal precision internally and only rounded at this boundary.
func FormatAmountToStringWithPrecision(amount decimal.Decimal, currency string) string {
	config := GetCurrencyConfig(currency)
	return amount.Round(config.Precision).StringFixed(config.Precision)
}

// GetDisplayAmountWithPrecision returns the amount with symbol, e.g. $12.00
func GetDisplayAmountWithPrecision(amount decimal.Decimal, currency string) string {
	config := GetCurrencyConfig(currency)
	return fmt.Sprintf("%s%s", config.Symbol, FormatAmountToStringWithPrecision(amount, currency))
}
