package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/catalogdsl"
	"github.com/fieldtraits/traitstack/config"
	"github.com/fieldtraits/traitstack/parser"
	"github.com/fieldtraits/traitstack/traits"
)

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// buildParser assembles the Rule Catalog (built-in trait vocabulary plus
// any catalog DSL files named in cfg) and constructs a Parser from it.
// Construction errors are logged at Error with the offending rule names
// already embedded in the error text (SPEC_FULL.md §4.11).
func buildParser(cfg config.Config) (*parser.Parser, error) {
	cat := catalog.New()
	fixups := traits.BuildEnabled(cat, cfg.Parsers)

	for _, path := range cfg.CatalogFiles {
		source, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("build parser: %w", err)
		}
		if err := catalogdsl.LoadInto(cat, source); err != nil {
			if logger != nil {
				logger.Error("catalog dsl construction error", zap.Error(err), zap.String("file", path))
			}
			return nil, err
		}
	}

	p, err := parser.New(cat,
		parser.WithFixUps(fixups),
		parser.WithListMergeGroups("value"),
	)
	if err != nil {
		if logger != nil {
			logger.Error("parser construction error", zap.Error(err))
		}
		return nil, err
	}
	return p, nil
}
