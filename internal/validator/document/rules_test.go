package document_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brfiscal/internal/domain"
	"brfiscal/internal/validator/document"
)

func TestAllBuiltinValidators_Metadata(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range document.AllBuiltinValidators() {
		assert.NotEmpty(t, v.RuleKey())
		assert.NotEmpty(t, v.RuleName())
		assert.NotEmpty(t, v.RuleType())
		assert.Contains(t, []domain.ValidationSeverity{domain.ValidationSeverityError, domain.ValidationSeverityWarning}, v.Severity())
		assert.False(t, seen[v.RuleKey()], "duplicate key %s", v.RuleKey())
		seen[v.RuleKey()] = true
	}
	for _, v := range document.CrossFieldValidators() {
		assert.Equal(t, domain.ValidationRuleCrossField, v.RuleType())
	}
	for _, v := range document.MathValidators() {
		assert.Equal(t, domain.ValidationRuleMath, v.RuleType())
	}
}

func TestValidDocument_PassesEveryRule(t *testing.T) {
	ctx := context.Background()
	doc := validDocument()
	for _, v := range document.AllBuiltinValidators() {
		for _, r := range v.Validate(ctx, doc) {
			assert.True(t, r.Passed, "%s: %s", v.RuleKey(), r.Message)
		}
	}
}

func validate(t *testing.T, key string, doc *document.Document) []document.ValidationResult {
	t.Helper()
	v := findValidator(key)
	require.NotNil(t, v, key)
	return v.Validate(context.Background(), doc)
}

func TestRequired(t *testing.T) {
	doc := validDocument()
	doc.AccessKey = "  "
	results := validate(t, "req.access_key", doc)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "access_key", results[0].FieldPath)
}

func TestFormat_PartyIdentifiers(t *testing.T) {
	t.Run("fail_issuer_cnpj", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.CNPJCPF = "20.695.448/0001-85"
		results := validate(t, "fmt.issuer.cnpj_cpf", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "invalid check digit")
	})

	t.Run("skip_empty_recipient", func(t *testing.T) {
		doc := validDocument()
		doc.Recipient.CNPJCPF = ""
		results := validate(t, "fmt.recipient.cnpj_cpf", doc)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_ie_for_other_state", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.Address.UF = "MG"
		results := validate(t, "fmt.issuer.ie", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("pass_exempt_ie", func(t *testing.T) {
		doc := validDocument()
		doc.Recipient.IE = "isento"
		results := validate(t, "fmt.recipient.ie", doc)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_unknown_uf", func(t *testing.T) {
		doc := validDocument()
		doc.Recipient.Address.UF = "XX"
		results := validate(t, "fmt.recipient.uf", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("fail_cep", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.Address.CEP = "0131010"
		results := validate(t, "fmt.issuer.cep", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Message, "wrong number of digits")
	})

	t.Run("fail_municipality", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.Address.MunicipalityCode = "3550309"
		results := validate(t, "fmt.issuer.municipality", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("suframa", func(t *testing.T) {
		doc := validDocument()
		doc.Recipient.SUFRAMA = "123456789"
		assert.True(t, validate(t, "fmt.recipient.suframa", doc)[0].Passed)
		doc.Recipient.SUFRAMA = "123456788"
		assert.False(t, validate(t, "fmt.recipient.suframa", doc)[0].Passed)
	})
}

func TestFormat_AccessKey(t *testing.T) {
	doc := validDocument()
	doc.AccessKey = "35210320695448000184550010000035891981839924"
	results := validate(t, "fmt.access_key", doc)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)

	doc.AccessKey = "not-a-key"
	results = validate(t, "fmt.access_key", doc)
	assert.Contains(t, results[0].Message, "not a 44-digit access key")
}

func TestFormat_ItemGTIN(t *testing.T) {
	doc := validDocument()
	doc.Items[0].GTIN = "6291041500214"
	results := validate(t, "fmt.items.gtin", doc)
	require.Len(t, results, 2)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "items[0].gtin", results[0].FieldPath)
	assert.True(t, results[1].Passed)
}

func TestCrossField(t *testing.T) {
	t.Run("fail_key_issuer", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.CNPJCPF = "08.427.847/0001-69"
		results := validate(t, "xf.key.issuer", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "08427847000169", results[0].ExpectedValue)
		assert.Equal(t, "20695448000184", results[0].ActualValue)
	})

	t.Run("skip_malformed_key", func(t *testing.T) {
		doc := validDocument()
		doc.AccessKey = "123"
		results := validate(t, "xf.key.issuer", doc)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_key_uf", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.Address.UF = "RJ"
		results := validate(t, "xf.key.uf", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "33", results[0].ExpectedValue)
		assert.Equal(t, "35", results[0].ActualValue)
	})

	t.Run("fail_key_number", func(t *testing.T) {
		doc := validDocument()
		doc.Number = "3590"
		results := validate(t, "xf.key.document", doc)
		require.Len(t, results, 3)
		assert.True(t, results[0].Passed)
		assert.True(t, results[1].Passed)
		assert.False(t, results[2].Passed)
	})

	t.Run("fail_municipality_uf", func(t *testing.T) {
		doc := validDocument()
		doc.Issuer.Address.MunicipalityCode = "3304557"
		results := validate(t, "xf.issuer.municipality_uf", doc)
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
	})

	t.Run("skip_municipality_exception", func(t *testing.T) {
		doc := validDocument()
		doc.Recipient.Address.MunicipalityCode = "9999999"
		results := validate(t, "xf.recipient.municipality_uf", doc)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})
}

func TestMath(t *testing.T) {
	t.Run("fail_item_total", func(t *testing.T) {
		doc := validDocument()
		doc.Items[0].Total = dec("22.00")
		results := validate(t, "math.items.total", doc)
		require.Len(t, results, 2)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "21.00", results[0].ExpectedValue)
		assert.Equal(t, "22.00", results[0].ActualValue)
	})

	t.Run("tolerates_rounding", func(t *testing.T) {
		doc := validDocument()
		doc.Items[0].UnitPrice = dec("10.505")
		results := validate(t, "math.items.total", doc)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_products_total", func(t *testing.T) {
		doc := validDocument()
		doc.Totals.Products = dec("99.00")
		assert.False(t, validate(t, "math.totals.products", doc)[0].Passed)
	})

	t.Run("fail_document_total", func(t *testing.T) {
		doc := validDocument()
		doc.Totals.Total = dec("100.00")
		assert.False(t, validate(t, "math.totals.total", doc)[0].Passed)
	})

	t.Run("fail_freight_apportionment", func(t *testing.T) {
		doc := validDocument()
		doc.Items[0].Freight = dec("5.00")
		results := validate(t, "math.items.freight", doc)
		require.Len(t, results, 2)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "2.10", results[0].ExpectedValue)
	})

	t.Run("skip_without_freight", func(t *testing.T) {
		doc := validDocument()
		doc.Totals.Freight = dec("0")
		results := validate(t, "math.items.freight", doc)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
	})

	t.Run("fail_decimal_places", func(t *testing.T) {
		doc := validDocument()
		doc.Totals.Freight = dec("10.001")
		results := validate(t, "math.totals.decimal_places", doc)
		require.Len(t, results, 3)
		assert.True(t, results[0].Passed)
		assert.False(t, results[1].Passed)
	})
}

func TestDocument_JSONAmounts(t *testing.T) {
	raw := `{"access_key":"x","items":[{"quantity":2,"unit_price":"10.50","total":21}],"totals":{"products":"21.00"}}`
	var doc document.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].UnitPrice.Equal(dec("10.5")))
	assert.True(t, doc.Items[0].Total.Equal(dec("21")))
	assert.True(t, doc.Totals.Products.Equal(dec("21")))
}
