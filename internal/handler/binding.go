package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"brfiscal/internal/edoc"
	"brfiscal/internal/fiscal"
	"brfiscal/internal/uf"
)

// fiscalTags maps struct tag names to identifier checks. Empty strings are
// left to the required tag.
var fiscalTags = map[string]func(string) bool{
	"cnpj":     fiscal.ValidateCNPJ,
	"cpf":      fiscal.ValidateCPF,
	"cnpj_cpf": fiscal.ValidateCNPJOrCPF,
	"cep":      fiscal.ValidateCEP,
	"uf":       uf.IsSigla,
	"access_key": func(s string) bool {
		_, err := edoc.ParseAndValidate(s)
		return err == nil
	},
}

func fieldCheck(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return val == "" || check(val)
	}
}

// RegisterFiscalTags adds the fiscal identifier tags to v.
func RegisterFiscalTags(v *validator.Validate) error {
	for tag, check := range fiscalTags {
		if err := v.RegisterValidation(tag, fieldCheck(check)); err != nil {
			return fmt.Errorf("registering %q validation: %w", tag, err)
		}
	}
	return nil
}

// RegisterFiscalValidators installs the fiscal tags on gin's default binding
// validator so `binding:"cnpj"` and friends work in request structs.
func RegisterFiscalValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin binding engine is %T, not *validator.Validate", binding.Validator.Engine())
	}
	return RegisterFiscalTags(v)
}
