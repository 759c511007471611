package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		text string
		conv AmountConvention
		want string
	}{
		{"1,234.50CR", CreditSuffix(), "1234.50"},
		{"1,234.50", CreditSuffix(), "-1234.50"},
		{"13.50", CreditSuffix(), "-13.50"},
		{"2,000.00 CR", CreditSuffix(), "2000.00"},
		{"4,333.56-", TrailingSign(), "4333.56"},
		{"250.00", TrailingSign(), "-250.00"},
		{"1,000.00−", TrailingSign("-", "−"), "1000.00"},
	}
	for _, tt := range tests {
		got, err := NormalizeAmount(tt.text, tt.conv)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got.StringFixed(2), "NormalizeAmount(%q, %s)", tt.text, tt.conv.Kind)
	}
}

func TestNormalizeAmount_Errors(t *testing.T) {
	tests := []struct {
		text string
		conv AmountConvention
	}{
		{"", CreditSuffix()},
		{"CR", CreditSuffix()},
		{"12.50DR", CreditSuffix()},
		{"abc", TrailingSign()},
		{"1,000.00−", TrailingSign()},
		{"12.50", DepositWithdraw()},
	}
	for _, tt := range tests {
		_, err := NormalizeAmount(tt.text, tt.conv)
		require.Error(t, err, tt.text)
		assert.ErrorIs(t, err, ErrAmountParse)
	}
}

func TestNormalizeColumns(t *testing.T) {
	got, err := NormalizeColumns("500.00", "")
	require.NoError(t, err)
	assert.Equal(t, "500.00", got.StringFixed(2))

	got, err = NormalizeColumns("", "75.25")
	require.NoError(t, err)
	assert.Equal(t, "-75.25", got.StringFixed(2))

	got, err = NormalizeColumns("12,345.67", "")
	require.NoError(t, err)
	assert.True(t, got.IsPositive())
	assert.Equal(t, "12345.67", got.StringFixed(2))
}

func TestNormalizeColumns_Errors(t *testing.T) {
	_, err := NormalizeColumns("", "")
	assert.ErrorIs(t, err, ErrAmountParse)

	_, err = NormalizeColumns("", "7S.25")
	assert.ErrorIs(t, err, ErrAmountParse)
}

func TestAmountKindString(t *testing.T) {
	assert.Equal(t, "suffix-letter", SuffixLetter.String())
	assert.Equal(t, "suffix-sign", SuffixSign.String())
	assert.Equal(t, "column-position", ColumnPosition.String())
}
