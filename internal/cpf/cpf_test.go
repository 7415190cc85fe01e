package cpf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "valid digits only", candidate: "11144477735", want: true},
		{name: "valid formatted", candidate: "111.444.777-35", want: true},
		{name: "valid with zero first check digit", candidate: "12345678909", want: true},
		{name: "last digit corrupted", candidate: "11144477736", want: false},
		{name: "first check digit corrupted", candidate: "11144477745", want: false},
		{name: "all zeros", candidate: "00000000000", want: false},
		{name: "empty", candidate: "", want: false},
		{name: "no digits", candidate: "abc.def.ghi-jk", want: false},
		{name: "too short", candidate: "111", want: false},
		{name: "too long", candidate: "111444777350", want: false},
		{name: "non-ascii digits are ignored", candidate: "١١١٤٤٤٧٧٧٣٥", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.candidate))
		})
	}
}

func TestValidate_RepeatedDigitsAreRejected(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		candidate := strings.Repeat(string(d), Length)
		assert.False(t, Validate(candidate), candidate)
	}
}

func TestValidate_WrongDigitCount(t *testing.T) {
	for n := 0; n <= 20; n++ {
		if n == Length {
			continue
		}
		candidate := strings.Repeat("1", n-n/2) + strings.Repeat("2", n/2)
		assert.False(t, Validate(candidate), "length %d", n)
	}
}

func TestValidate_IgnoresPunctuation(t *testing.T) {
	pairs := [][2]string{
		{"123.456.789-09", "12345678909"},
		{"111.444.777-35", "11144477735"},
		{" 111 444 777 36 ", "11144477736"},
		{"cpf: 529/982/247-25", "52998224725"},
	}

	for _, p := range pairs {
		assert.Equal(t, Validate(p[1]), Validate(p[0]), p[0])
	}
}

func TestCheckDigit(t *testing.T) {
	base := []int{1, 1, 1, 4, 4, 4, 7, 7, 7}

	first := checkDigit(base, 10)
	assert.Equal(t, 3, first)
	assert.Equal(t, 5, checkDigit(append(base, first), 11))
}
