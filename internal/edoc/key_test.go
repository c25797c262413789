package edoc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brfiscal/internal/domain"
	"brfiscal/internal/edoc"
)

const (
	cfeKey  = "CFe35150808723218000186599000040190000241114257"
	mdfeKey = "50131248740351011795580001490001531162619648"
	cteKey  = "32171232438772000104570010001990751398682263"
	nfceKey = "43140201098983010680657960000005991314477464"
)

func TestLayouts_CoverWholeKey(t *testing.T) {
	assert.Equal(t, edoc.KeyLength, edoc.GenericLayout.Width())
	assert.Equal(t, edoc.KeyLength, edoc.CFeSATLayout.Width())
	assert.Equal(t, edoc.CFeSATLayout, edoc.LayoutFor(edoc.ModelCFeSAT))
	assert.Equal(t, edoc.GenericLayout, edoc.LayoutFor(edoc.ModelNFe))

	for _, l := range []edoc.Layout{edoc.GenericLayout, edoc.CFeSATLayout} {
		next := 0
		for _, f := range l.Fields() {
			assert.Equal(t, next, f.Start, l.Name)
			next = f.Start + f.Width
		}
	}
}

func TestParse_CFeSAT(t *testing.T) {
	k, err := edoc.ParseAndValidate(cfeKey)
	require.NoError(t, err)

	assert.Equal(t, 35, k.UFCode())
	state, err := k.UF()
	require.NoError(t, err)
	assert.Equal(t, "SP", state.Sigla)
	assert.Equal(t, 2015, k.Year())
	assert.Equal(t, 8, k.Month())
	assert.Equal(t, "1508", k.YearMonth())
	assert.Equal(t, "08723218000186", k.IssuerID())
	assert.Equal(t, "08.723.218/0001-86", k.IssuerIDFormatted())
	assert.Equal(t, "59", k.Model())
	assert.Equal(t, "900004019", k.Series())
	assert.Equal(t, "000024", k.Number())
	assert.Equal(t, "", k.IssuanceForm())
	assert.Equal(t, "111425", k.Code())
	assert.Equal(t, 7, k.CheckDigit())
	assert.Equal(t, "CFe", k.Prefix())
	assert.Equal(t, cfeKey, k.String())
	assert.Equal(t, cfeKey[3:], k.Digits())
	assert.Equal(t, edoc.CFeSATLayout.Name, k.Layout().Name)
}

func TestParse_GenericModels(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		prefix string
		series string
		number string
		form   string
		code   string
		issuer string
	}{
		{"mdfe", mdfeKey, "MDFe", "000", "149000153", "1", "16261964", "48.740.351/0117-95"},
		{"cte", cteKey, "CTe", "001", "000199075", "1", "39868226", "32.438.772/0001-04"},
		{"nfce", nfceKey, "NFe", "796", "000000599", "1", "31447746", "01.098.983/0106-80"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := edoc.ParseAndValidate(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.prefix, k.Prefix())
			assert.Equal(t, tc.series, k.Series())
			assert.Equal(t, tc.number, k.Number())
			assert.Equal(t, tc.form, k.IssuanceForm())
			assert.Equal(t, tc.code, k.Code())
			assert.Equal(t, tc.issuer, k.IssuerIDFormatted())
			assert.Equal(t, edoc.GenericLayout.Name, k.Layout().Name)
		})
	}
}

func TestParse_Prefixes(t *testing.T) {
	for _, s := range []string{"MDFe" + mdfeKey, "CTe" + cteKey, "NFe" + nfceKey, " " + cteKey + " "} {
		_, err := edoc.Parse(s)
		assert.NoError(t, err, s)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, s := range []string{
		"",
		"123",
		cteKey[:43],
		cteKey + "1",
		"XYZ" + cteKey,
		"nfe" + cteKey,
		"3217123243877200010457001000199075139868226A",
	} {
		_, err := edoc.Parse(s)
		assert.ErrorIs(t, err, domain.ErrMalformedKey, s)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want error
	}{
		{"checksum", "32171232438772000104570010001990751398682264", domain.ErrChecksumMismatch},
		{"model", "35240108427847000169560010000000011614319450", domain.ErrUnknownDocumentModel},
		{"state", "99240108427847000169550010000000011261755445", domain.ErrUnknownState},
		{"issuer_cnpj", "35240108427847000168550010000000011001046135", domain.ErrInvalidIssuerID},
		{"cpf_issuer_outside_reserved_series", "35240100011122233396550010000001231037206869", domain.ErrInvalidIssuerID},
		{"cnpj_issuer_inside_reserved_series", "35240108427847000169559300000001231407677407", domain.ErrInvalidIssuerID},
		{"cfe_month", "35151308723218000186599000040190000247902073", domain.ErrInvalidEmissionDate},
		{"cfe_before_sat", "35121008723218000186599000040190000248179115", domain.ErrInvalidEmissionDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := edoc.Parse(tc.key)
			require.NoError(t, err)
			assert.ErrorIs(t, k.Validate(), tc.want)
		})
	}
}

func TestValidate_CPFIssuerSeries(t *testing.T) {
	k, err := edoc.ParseAndValidate("35240100011122233396559200000001231911416868")
	require.NoError(t, err)
	assert.True(t, k.IssuerIsCPF())
	assert.Equal(t, "111.222.333-96", k.IssuerIDFormatted())
}

func TestValidate_CFeSATFloor(t *testing.T) {
	_, err := edoc.ParseAndValidate("35121108723218000186599000040190000248179127")
	assert.NoError(t, err)
}

func TestPartition(t *testing.T) {
	k, err := edoc.Parse(cfeKey)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"3515", "0808", "7232", "1800", "0186", "5990", "0004", "0190", "0002", "4111", "4257",
	}, k.Partition(11))
	assert.Equal(t, []string{"3515080872321800018659", "9000040190000241114257"}, k.Partition(2))
	assert.Len(t, k.Partition(44), 44)

	for _, n := range []int{1, 2, 4, 11, 22, 44} {
		parts := k.Partition(n)
		assert.Len(t, parts, n)
		assert.Equal(t, k.Digits(), strings.Join(parts, ""), "n=%d", n)
	}

	assert.Panics(t, func() { k.Partition(3) })
	assert.Panics(t, func() { k.Partition(0) })
}

func TestBuild(t *testing.T) {
	t.Run("explicit_code", func(t *testing.T) {
		k, err := edoc.Build(edoc.Fields{
			UF: 32, YearMonth: "1712", Issuer: "32.438.772/0001-04", Model: "57",
			Series: 1, Number: 199075, IssuanceForm: 1, Code: "39868226",
		})
		require.NoError(t, err)
		assert.Equal(t, cteKey, k.Digits())
	})

	t.Run("derived_code_and_default_form", func(t *testing.T) {
		k, err := edoc.Build(edoc.Fields{
			UF: 35, YearMonth: "2103", Issuer: "20695448000184", Model: "55", Series: 1, Number: 3589,
		})
		require.NoError(t, err)
		assert.Equal(t, "35210320695448000184550010000035891981839923", k.Digits())
		assert.Equal(t, "1", k.IssuanceForm())
		assert.Equal(t, "98183992", k.Code())
		assert.NoError(t, k.Validate())
	})

	t.Run("cfe_sat", func(t *testing.T) {
		k, err := edoc.Build(edoc.Fields{
			UF: 35, YearMonth: "1508", Issuer: "08723218000186", Model: "59",
			Series: 900004019, Number: 24, Code: "111425",
		})
		require.NoError(t, err)
		assert.Equal(t, cfeKey, k.String())

		derived, err := edoc.Build(edoc.Fields{
			UF: 35, YearMonth: "1508", Issuer: "08723218000186", Model: "59", Series: 900004019, Number: 24,
		})
		require.NoError(t, err)
		assert.Equal(t, "35150808723218000186599000040190000249882512", derived.Digits())
	})

	t.Run("round_trip", func(t *testing.T) {
		built, err := edoc.Build(edoc.Fields{
			UF: 35, YearMonth: "2401", Issuer: "000111.222.333-96", Model: "55", Series: 920, Number: 123,
		})
		require.NoError(t, err)
		parsed, err := edoc.ParseAndValidate(built.String())
		require.NoError(t, err)
		assert.Equal(t, built.Digits(), parsed.Digits())
		assert.Equal(t, "920", parsed.Series())
		assert.Equal(t, "000000123", parsed.Number())
	})

	t.Run("fail_missing_fields", func(t *testing.T) {
		_, err := edoc.Build(edoc.Fields{UF: 35, YearMonth: "2401", Model: "55", Number: 1})
		assert.ErrorIs(t, err, domain.ErrMalformedKey)
		_, err = edoc.Build(edoc.Fields{UF: 35, YearMonth: "2401", Issuer: "08427847000169", Model: "55"})
		assert.ErrorIs(t, err, domain.ErrMalformedKey)
	})

	t.Run("fail_overflow", func(t *testing.T) {
		_, err := edoc.Build(edoc.Fields{
			UF: 35, YearMonth: "2401", Issuer: "08427847000169", Model: "55", Series: 1000, Number: 1,
		})
		assert.ErrorIs(t, err, domain.ErrMalformedKey)
		_, err = edoc.Build(edoc.Fields{
			UF: 35, YearMonth: "241", Issuer: "08427847000169", Model: "55", Number: 1,
		})
		assert.ErrorIs(t, err, domain.ErrMalformedKey)
	})
}
