package digits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brfiscal/internal/digits"
)

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "49685994957", digits.OnlyDigits("496.85994.95-7"))
	assert.Equal(t, "", digits.OnlyDigits("abc"))
	assert.Equal(t, "", digits.OnlyDigits(""))
	assert.Equal(t, "123", digits.OnlyDigits("1a2b3"))
}

func TestStripPunctuation(t *testing.T) {
	assert.Equal(t, "49685994957", digits.StripPunctuation("496.85994.95-7"))
	assert.Equal(t, "São PauloSP", digits.StripPunctuation("São Paulo/SP!"))
	assert.Equal(t, "AB12", digits.StripPunctuation("A.B-1_2"))
	assert.Equal(t, "", digits.StripPunctuation(""))
}

func TestAllSame(t *testing.T) {
	assert.True(t, digits.AllSame("11111111"))
	assert.False(t, digits.AllSame("11111112"))
	assert.False(t, digits.AllSame(""))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "0012", digits.PadLeft("12", 4, '0'))
	assert.Equal(t, "12345", digits.PadLeft("12345", 4, '0'))
}

func TestModulo11(t *testing.T) {
	cases := map[string]int{
		"3515080872321800018659900004019000024111425": 7,
		"5013124874035101179558000149000153134595274": 5,
		"4314020109898301068065796000000599114812744": 6,
		"0": 0,
		"6": 0,
		"1": 9,
	}
	for base, want := range cases {
		assert.Equal(t, want, digits.Modulo11(base), base)
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, digits.IsDigits("0123"))
	assert.False(t, digits.IsDigits("01a3"))
	assert.False(t, digits.IsDigits(""))
}

func TestWeightedSum(t *testing.T) {
	assert.Equal(t, 1*4+2*3+3*2, digits.WeightedSum([]int{1, 2, 3}, []int{4, 3, 2}))
	assert.Equal(t, 4, digits.WeightedSum([]int{1, 2, 3}, []int{4}))
}
