package document

import "github.com/shopspring/decimal"

// Document is the flattened view of an NF-e/NFC-e/CF-e that the rules inspect.
// Monetary fields accept JSON strings or numbers.
type Document struct {
	AccessKey string `json:"access_key"`
	Model     string `json:"model"`
	Series    string `json:"series"`
	Number    string `json:"number"`
	Issuer    Party  `json:"issuer"`
	Recipient Party  `json:"recipient"`
	Items     []Item `json:"items"`
	Totals    Totals `json:"totals"`
}

// Party is the issuer (emitente) or recipient (destinatário).
type Party struct {
	Name    string  `json:"name"`
	CNPJCPF string  `json:"cnpj_cpf"`
	IE      string  `json:"ie"`
	SUFRAMA string  `json:"suframa"`
	Address Address `json:"address"`
}

// Address carries the fields that have check digits or registry lookups.
type Address struct {
	Street           string `json:"street"`
	Municipality     string `json:"municipality"`
	MunicipalityCode string `json:"municipality_code"`
	UF               string `json:"uf"`
	CEP              string `json:"cep"`
	Country          string `json:"country"`
}

// Item is one product line.
type Item struct {
	Code        string          `json:"code"`
	GTIN        string          `json:"gtin"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Freight     decimal.Decimal `json:"freight"`
}

// Totals holds the document-level amounts.
type Totals struct {
	Products decimal.Decimal `json:"products"`
	Freight  decimal.Decimal `json:"freight"`
	Total    decimal.Decimal `json:"total"`
}

// ValidationResult is the outcome of one rule on one field.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// Placeholders that documents carry instead of an identifier.
const (
	ExemptIE   = "ISENTO"   // IE of a party exempt from state registration
	NoGTINText = "SEM GTIN" // item without a barcode
)
