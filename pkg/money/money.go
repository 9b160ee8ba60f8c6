package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter apresenta valores monetários com duas casas decimais e
// separadores no padrão pt ("1.234,56 MT"). O arredondamento acontece só
// aqui, na borda de apresentação; o núcleo opera com precisão decimal plena.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter cria o formatador com o símbolo da moeda (ex.: "MT").
func NewFormatter(symbol string) *Formatter {
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.Portuguese),
	}
}

// Format devolve o valor com o símbolo da moeda: "1.234,56 MT".
func (f *Formatter) Format(value decimal.Decimal) string {
	return f.Bare(value) + " " + f.symbol
}

// Bare devolve o valor sem símbolo: "1.234,56".
func (f *Formatter) Bare(value decimal.Decimal) string {
	fixed := value.Round(2).StringFixed(2) // ex.: "-1234.56"
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := "00"
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart = fixed[:dot]
		fracPart = fixed[dot+1:]
	}
	// O printer agrupa os milhares conforme a localidade pt ("1.234").
	// Acima de 18 dígitos a parte inteira não cabe em int64; sai sem
	// agrupamento em vez de estourar.
	grouped := intPart
	if len(intPart) <= 18 {
		grouped = f.printer.Sprintf("%d", mustInt64(intPart))
	}

	out := grouped + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func mustInt64(s string) int64 {
	var n int64
	for i := 0; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	return n
}
