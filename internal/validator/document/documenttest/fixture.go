// Package documenttest provides document fixtures for tests.
package documenttest

import (
	"github.com/shopspring/decimal"

	"brfiscal/internal/validator/document"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Valid returns an NF-e issued in São Paulo to an exempt individual in
// Rio de Janeiro that passes every built-in rule. Freight 10.00 is apportioned
// 2.10 / 7.90 over products worth 21.00 and 79.00.
func Valid() *document.Document {
	return &document.Document{
		AccessKey: "35210320695448000184550010000035891981839923",
		Model:     "55",
		Series:    "1",
		Number:    "3589",
		Issuer: document.Party{
			Name:    "Comercial Paulista Ltda",
			CNPJCPF: "20.695.448/0001-84",
			IE:      "692.015.742.119",
			Address: document.Address{
				Street:           "Av. Paulista, 1000",
				Municipality:     "São Paulo",
				MunicipalityCode: "3550308",
				UF:               "SP",
				CEP:              "01310-100",
				Country:          "BR",
			},
		},
		Recipient: document.Party{
			Name:    "Maria da Silva",
			CNPJCPF: "111.222.333-96",
			IE:      "ISENTO",
			Address: document.Address{
				Municipality:     "Rio de Janeiro",
				MunicipalityCode: "3304557",
				UF:               "RJ",
				CEP:              "20040-002",
				Country:          "BR",
			},
		},
		Items: []document.Item{
			{
				Code: "A-1", GTIN: "6291041500213", Description: "Caderno",
				Quantity: dec("2"), UnitPrice: dec("10.50"), Total: dec("21.00"), Freight: dec("2.10"),
			},
			{
				Code: "B-2", GTIN: "SEM GTIN", Description: "Mochila",
				Quantity: dec("1"), UnitPrice: dec("79.00"), Total: dec("79.00"), Freight: dec("7.90"),
			},
		},
		Totals: document.Totals{
			Products: dec("100.00"),
			Freight:  dec("10.00"),
			Total:    dec("110.00"),
		},
	}
}
