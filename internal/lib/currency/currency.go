package currency

import (
	"errors"
	"fmt"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// символы для форматирования цен
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"TRY": "₺",
}

// Converter пересчитывает базовые цены (USD) в валюту показа.
// Курсы — фиксированные демо-значения из конфигурации
type Converter struct {
	rates map[string]float64
}

func NewConverter(rates map[string]float64) *Converter {
	return &Converter{rates: rates}
}

// Rates возвращает копию таблицы курсов
func (c *Converter) Rates() map[string]float64 {
	out := make(map[string]float64, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

// Convert пересчитывает цену в USD в указанную валюту
func (c *Converter) Convert(priceInUSD float64, code string) (float64, error) {
	rate, ok := c.rates[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return priceInUSD * rate, nil
}

// Format пересчитывает и форматирует цену с символом валюты
func (c *Converter) Format(priceInUSD float64, code string) (string, error) {
	value, err := c.Convert(priceInUSD, code)
	if err != nil {
		return "", err
	}
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	return fmt.Sprintf("%s%.2f", symbol, value), nil
}

// Supported возвращает true, если валюта есть в таблице курсов
func (c *Converter) Supported(code string) bool {
	_, ok := c.rates[code]
	return ok
}
