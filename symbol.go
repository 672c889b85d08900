package rewards

// symbolAliases maps legacy or vendor-qualified symbols found in the extracts
// to their canonical symbol. Canonical symbols must not be aliases themselves.
var symbolAliases = map[string]string{
	"USDT ERC20": "USDT",
	"MCDAI":      "DAI",
}

// NormalizeSymbol returns the canonical form of a coin symbol.
// Example: "USDT ERC20" -> "USDT"
// Example: "MCDAI" -> "DAI"
// Returns the original symbol if it is not a known alias.
func NormalizeSymbol(symbol string) string {
	if canonical, ok := symbolAliases[symbol]; ok {
		return canonical
	}
	return symbol
}
