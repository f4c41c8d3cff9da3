package cli

import (
	"github.com/alexanderramin/mindcanvas/internal/exchange"
	"github.com/spf13/pflag"
)

// formatValue adapts exchange.Format to pflag.Value so a bad --format is
// rejected while flags are parsed.
type formatValue struct {
	target *exchange.Format
}

func (v formatValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v formatValue) Set(s string) error {
	f, err := exchange.ParseFormat(s)
	if err != nil {
		return err
	}
	*v.target = f
	return nil
}

func (v formatValue) Type() string { return "format" }

// addFormatFlag registers --format (-f) on fs, defaulting to def.
func addFormatFlag(fs *pflag.FlagSet, target *exchange.Format, def exchange.Format) {
	*target = def
	fs.VarP(formatValue{target: target}, "format", "f", "Document format: yaml or json")
}
