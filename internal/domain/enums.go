package domain

// IdentifierKind names one family of fiscal identifier.
type IdentifierKind string

const (
	KindCNPJ         IdentifierKind = "cnpj"
	KindCPF          IdentifierKind = "cpf"
	KindCNPJOrCPF    IdentifierKind = "cnpj_cpf"
	KindCEP          IdentifierKind = "cep"
	KindIE           IdentifierKind = "ie"
	KindGTIN         IdentifierKind = "gtin"
	KindSSCC         IdentifierKind = "sscc"
	KindGSIN         IdentifierKind = "gsin"
	KindBACEN        IdentifierKind = "bacen"
	KindSUFRAMA      IdentifierKind = "suframa"
	KindPISPASEP     IdentifierKind = "pis_pasep"
	KindMunicipality IdentifierKind = "municipality"
	KindRECOPI       IdentifierKind = "recopi"
	KindAccessKey    IdentifierKind = "access_key"
)

// AllKinds lists every supported identifier kind in a stable order.
func AllKinds() []IdentifierKind {
	return []IdentifierKind{
		KindCNPJ, KindCPF, KindCNPJOrCPF, KindCEP, KindIE,
		KindGTIN, KindSSCC, KindGSIN, KindBACEN, KindSUFRAMA,
		KindPISPASEP, KindMunicipality, KindRECOPI, KindAccessKey,
	}
}

// IsValid reports whether k is a supported kind.
func (k IdentifierKind) IsValid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Formattable reports whether the kind has a display mask.
func (k IdentifierKind) Formattable() bool {
	switch k {
	case KindCNPJ, KindCPF, KindCNPJOrCPF, KindCEP, KindIE, KindMunicipality:
		return true
	default:
		return false
	}
}

// Region is one of the five Brazilian macro-regions.
type Region string

const (
	RegionNorte       Region = "Norte"
	RegionNordeste    Region = "Nordeste"
	RegionCentroOeste Region = "Centro Oeste"
	RegionSudeste     Region = "Sudeste"
	RegionSul         Region = "Sul"
)

// ValidationRuleType categorises document validation rules.
type ValidationRuleType string

const (
	ValidationRuleRequired   ValidationRuleType = "required"
	ValidationRuleChecksum   ValidationRuleType = "checksum"
	ValidationRuleFormat     ValidationRuleType = "format"
	ValidationRuleCrossField ValidationRuleType = "cross_field"
	ValidationRuleMath       ValidationRuleType = "math"
)

// ValidationSeverity controls how a failed rule affects the overall status.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationStatus is the aggregated outcome of validating a document or batch.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// FieldValidationStatus is the per-field outcome shown next to each field.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusInvalid FieldValidationStatus = "invalid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
)

// ReportFormat is the output format of a batch report.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)
