package serial

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/n3lang/n3c/symbol"
)

// Symbol is the self-describing tagged representation of a
// [symbol.Symbol] (spec §6's "Serialization": every data structure in
// §3 is a self-describing tagged representation). The tag selects
// which of the remaining fields are meaningful.
type Symbol struct {
	Tag      string   `json:"tag" yaml:"tag"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
	Operands []Symbol `json:"operands,omitempty" yaml:"operands,omitempty"`
}

// FromSymbol converts s into its tagged DTO form.
func FromSymbol(s symbol.Symbol) Symbol {
	out := Symbol{Tag: s.Tag()}
	if name, ok := s.AsVar(); ok {
		out.Name = name
	}
	if dec, ok := s.AsDecimal(); ok {
		out.Value = dec.String()
	}
	for _, op := range s.Operands() {
		out.Operands = append(out.Operands, FromSymbol(op))
	}
	return out
}

// ToSymbol reconstructs a [symbol.Symbol] from its tagged DTO form.
func (s Symbol) ToSymbol() (symbol.Symbol, error) {
	var dec apd.Decimal
	if s.Value != "" {
		if _, _, err := dec.SetString(s.Value); err != nil {
			return symbol.Symbol{}, fmt.Errorf("serial: decode decimal %q: %w", s.Value, err)
		}
	}
	operands := make([]symbol.Symbol, 0, len(s.Operands))
	for _, op := range s.Operands {
		sym, err := op.ToSymbol()
		if err != nil {
			return symbol.Symbol{}, err
		}
		operands = append(operands, sym)
	}
	return symbol.Build(s.Tag, s.Name, dec, operands)
}
