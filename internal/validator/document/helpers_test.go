package document_test

import (
	"github.com/shopspring/decimal"

	"brfiscal/internal/validator/document"
	"brfiscal/internal/validator/document/documenttest"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validDocument() *document.Document { return documenttest.Valid() }

func findValidator(key string) *document.BuiltinValidator {
	for _, v := range document.AllBuiltinValidators() {
		if v.RuleKey() == key {
			return v
		}
	}
	return nil
}
