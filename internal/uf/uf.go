// Package uf is the static registry of the 27 Brazilian federative units.
package uf

import (
	"fmt"
	"strconv"
	"strings"

	"brfiscal/internal/domain"
)

// UF is one federative unit. Values are immutable.
type UF struct {
	Sigla  string        `json:"sigla"`
	IBGE   int           `json:"ibge"`
	Name   string        `json:"name"`
	Region domain.Region `json:"region"`
}

var table = [...]UF{
	{"AC", 12, "Acre", domain.RegionNorte},
	{"AL", 27, "Alagoas", domain.RegionNordeste},
	{"AM", 13, "Amazonas", domain.RegionNorte},
	{"AP", 16, "Amapá", domain.RegionNorte},
	{"BA", 29, "Bahia", domain.RegionNordeste},
	{"CE", 23, "Ceará", domain.RegionNordeste},
	{"DF", 53, "Distrito Federal", domain.RegionCentroOeste},
	{"ES", 32, "Espírito Santo", domain.RegionSudeste},
	{"GO", 52, "Goiás", domain.RegionCentroOeste},
	{"MA", 21, "Maranhão", domain.RegionNordeste},
	{"MG", 31, "Minas Gerais", domain.RegionSudeste},
	{"MS", 50, "Mato Grosso do Sul", domain.RegionCentroOeste},
	{"MT", 51, "Mato Grosso", domain.RegionCentroOeste},
	{"PA", 15, "Pará", domain.RegionNorte},
	{"PB", 25, "Paraíba", domain.RegionNordeste},
	{"PE", 26, "Pernambuco", domain.RegionNordeste},
	{"PI", 22, "Piauí", domain.RegionNordeste},
	{"PR", 41, "Paraná", domain.RegionSul},
	{"RJ", 33, "Rio de Janeiro", domain.RegionSudeste},
	{"RN", 24, "Rio Grande do Norte", domain.RegionNordeste},
	{"RO", 11, "Rondônia", domain.RegionNorte},
	{"RR", 14, "Roraima", domain.RegionNorte},
	{"RS", 43, "Rio Grande do Sul", domain.RegionSul},
	{"SC", 42, "Santa Catarina", domain.RegionSul},
	{"SE", 28, "Sergipe", domain.RegionNordeste},
	{"SP", 35, "São Paulo", domain.RegionSudeste},
	{"TO", 17, "Tocantins", domain.RegionNorte},
}

// All returns a copy of the registry in alphabetical order of sigla.
func All() []UF {
	out := make([]UF, len(table))
	copy(out, table[:])
	return out
}

// BySigla looks up a unit by its two-letter abbreviation, ignoring case.
func BySigla(sigla string) (UF, error) {
	s := strings.ToUpper(strings.TrimSpace(sigla))
	for _, u := range table {
		if u.Sigla == s {
			return u, nil
		}
	}
	return UF{}, fmt.Errorf("sigla %q: %w", sigla, domain.ErrUnknownState)
}

// ByIBGE looks up a unit by its IBGE numeric code.
func ByIBGE(code int) (UF, error) {
	for _, u := range table {
		if u.IBGE == code {
			return u, nil
		}
	}
	return UF{}, fmt.Errorf("IBGE code %d: %w", code, domain.ErrUnknownState)
}

// Resolve accepts either a sigla or a numeric IBGE code.
func Resolve(ref string) (UF, error) {
	ref = strings.TrimSpace(ref)
	if code, err := strconv.Atoi(ref); err == nil {
		return ByIBGE(code)
	}
	return BySigla(ref)
}

// IsSigla reports whether sigla names a known unit.
func IsSigla(sigla string) bool {
	_, err := BySigla(sigla)
	return err == nil
}

// IsIBGECode reports whether code is a known IBGE state code.
func IsIBGECode(code int) bool {
	_, err := ByIBGE(code)
	return err == nil
}
