package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	cases := map[int64]string{
		0:         "0.00",
		5:         "0.05",
		123456:    "1,234.56",
		-99900:    "-999.00",
		100000000: "1,000,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCents(in), "cents=%d", in)
	}
}

func TestParseAmountToCents(t *testing.T) {
	got, err := ParseAmountToCents(" 1,234.5 ")
	require.NoError(t, err)
	assert.Equal(t, int64(123450), got)

	got, err = ParseAmountToCents("-0.50")
	require.NoError(t, err)
	assert.Equal(t, int64(-50), got)

	_, err = ParseAmountToCents("1.234")
	assert.Error(t, err)
	_, err = ParseAmountToCents("")
	assert.Error(t, err)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+8613800001111", NormalizePhone(" +86 138-0000 1111 "))
	assert.Equal(t, "02112345678", NormalizePhone("(021) 1234.5678"))
	assert.True(t, ValidPhone("+8613800001111"))
	assert.True(t, ValidPhone("123456"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("138abc00000"))
	assert.False(t, ValidPhone("++123456"))
	// full-width digits would dodge the unique phone check
	assert.False(t, ValidPhone(NormalizePhone("１３８００１")))
	assert.False(t, ValidPhone("١٢٣٤٥٦"))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"vip", "family", "school"}, SplitTags("vip, family;school,vip,,"))
	assert.Empty(t, SplitTags(" "))
}

func TestMonthStartAndToday(t *testing.T) {
	start, err := MonthStart("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", start)

	_, err = MonthStart("15/06/2025")
	assert.Error(t, err)

	orig := Now
	Now = func() time.Time { return time.Date(2025, 2, 3, 10, 0, 0, 0, time.Local) }
	defer func() { Now = orig }()
	assert.Equal(t, "2025-02-03", Today())
}
