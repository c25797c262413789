package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brfiscal/internal/domain"
	"brfiscal/internal/fiscal"
)

func TestValidateCNPJ(t *testing.T) {
	t.Run("pass_valid", func(t *testing.T) {
		for _, v := range []string{
			"08427847000169", "02.960.895/0001-31", "61103212000199",
			"08723218000186", "48740351011795", "32438772000104", "01098983010680",
		} {
			assert.True(t, fiscal.ValidateCNPJ(v), v)
		}
	})

	t.Run("pass_alphanumeric", func(t *testing.T) {
		assert.True(t, fiscal.ValidateCNPJ("12.ABC.345/01DE-35"))
		assert.True(t, fiscal.ValidateCNPJ("12abc34501de35"))
	})

	t.Run("fail_check_digits", func(t *testing.T) {
		for _, v := range []string{"08427847000168", "08427847000179", "14.018.406/0001-93", "12ABC34501DE00"} {
			assert.False(t, fiscal.ValidateCNPJ(v), v)
		}
	})

	t.Run("fail_all_same", func(t *testing.T) {
		assert.False(t, fiscal.ValidateCNPJ("00000000000000"))
		assert.False(t, fiscal.ValidateCNPJ("11111111111111"))
	})

	t.Run("fail_letter_check_digit", func(t *testing.T) {
		assert.ErrorIs(t, fiscal.CheckCNPJ("12ABC34501DE3A"), domain.ErrInvalidFormat)
	})
}

func TestCheckCNPJ_ErrorKinds(t *testing.T) {
	assert.NoError(t, fiscal.CheckCNPJ("08427847000169"))
	assert.ErrorIs(t, fiscal.CheckCNPJ("111"), domain.ErrLengthMismatch)
	assert.ErrorIs(t, fiscal.CheckCNPJ("08427847000168"), domain.ErrChecksumMismatch)
}

func TestCheckCNPJStrict(t *testing.T) {
	assert.NoError(t, fiscal.CheckCNPJStrict("08427847000169"))
	assert.ErrorIs(t, fiscal.CheckCNPJStrict("08.427.847/0001-69"), domain.ErrLengthMismatch)
	assert.ErrorIs(t, fiscal.CheckCNPJStrict("08427847000168"), domain.ErrChecksumMismatch)
}

func TestValidateCPF(t *testing.T) {
	for _, v := range []string{"11122233396", "017.013.558-68", "553.948.360-00", "06853187024"} {
		assert.True(t, fiscal.ValidateCPF(v), v)
	}
	for _, v := range []string{"11122233386", "11122233395", "734.419.622-07", "203.519.810-05", "11111111111", "123"} {
		assert.False(t, fiscal.ValidateCPF(v), v)
	}
}

func TestCheckCPF_ErrorKinds(t *testing.T) {
	assert.ErrorIs(t, fiscal.CheckCPF("1112223339"), domain.ErrLengthMismatch)
	assert.ErrorIs(t, fiscal.CheckCPF("11122233386"), domain.ErrChecksumMismatch)
	assert.ErrorIs(t, fiscal.CheckCPFStrict("111.222.333-96"), domain.ErrLengthMismatch)
	assert.NoError(t, fiscal.CheckCPFStrict("11122233396"))
}

func TestValidateCNPJOrCPF(t *testing.T) {
	assert.True(t, fiscal.ValidateCNPJOrCPF("02.960.895/0001-31"))
	assert.True(t, fiscal.ValidateCNPJOrCPF("017.013.558-68"))
	assert.False(t, fiscal.ValidateCNPJOrCPF("14.018.406/0001-93"))
	assert.False(t, fiscal.ValidateCNPJOrCPF("734.419.622-07"))
	assert.False(t, fiscal.ValidateCNPJOrCPF(""))
	assert.ErrorIs(t, fiscal.CheckCNPJOrCPF("1234"), domain.ErrLengthMismatch)
	assert.ErrorIs(t, fiscal.CheckCNPJOrCPF("0A70135586B"), domain.ErrInvalidFormat)
	assert.NoError(t, fiscal.CheckCNPJOrCPFStrict("11122233396"))
	assert.NoError(t, fiscal.CheckCNPJOrCPFStrict("08427847000169"))
}

func TestFormatCNPJAndCPF(t *testing.T) {
	assert.Equal(t, "61.103.212/0001-99", fiscal.FormatCNPJ("61103212000199"))
	assert.Equal(t, "12.ABC.345/01DE-35", fiscal.FormatCNPJ("12abc34501de35"))
	assert.Equal(t, "068.531.870-24", fiscal.FormatCPF("06853187024"))
	assert.Equal(t, "553.948.360-00", fiscal.FormatCNPJOrCPF("55394836000"))
	assert.Equal(t, "02.960.895/0001-31", fiscal.FormatCNPJOrCPF("02960895000131"))

	t.Run("invalid_unchanged", func(t *testing.T) {
		assert.Equal(t, "08427847000168", fiscal.FormatCNPJ("08427847000168"))
		assert.Equal(t, "123", fiscal.FormatCPF("123"))
		assert.Equal(t, "abc", fiscal.FormatCNPJOrCPF("abc"))
		assert.False(t, fiscal.ValidateCNPJOrCPF("A11122233396"))
		assert.Equal(t, "A11122233396", fiscal.FormatCNPJOrCPF("A11122233396"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := fiscal.FormatCNPJ("08427847000169")
		assert.Equal(t, once, fiscal.FormatCNPJ(once))
		cpfOnce := fiscal.FormatCPF("11122233396")
		assert.Equal(t, cpfOnce, fiscal.FormatCPF(cpfOnce))
	})
}
