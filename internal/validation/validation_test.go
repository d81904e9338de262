package validation

import (
	"strings"
	"testing"

	"nexus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain", in: "ana1", want: "ana1", ok: true},
		{name: "trimmed", in: "  ana1 \n", want: "ana1", ok: true},
		{name: "empty", in: "   ", ok: false},
		{name: "inner space", in: "ana silva", ok: false},
		{name: "max length", in: strings.Repeat("a", MaxUsernameLength), want: strings.Repeat("a", MaxUsernameLength), ok: true},
		{name: "too long", in: strings.Repeat("a", MaxUsernameLength+1), ok: false},
		{name: "decomposed accent composes", in: "jose\u0301", want: "jos\u00e9", ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeUsername(tc.in)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeUsername_EquivalentFormsMatch(t *testing.T) {
	a, err := NormalizeUsername("Mo\u0301nica")
	require.NoError(t, err)
	b, err := NormalizeUsername("M\u00f3nica")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Ana Silva ")
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", got)

	_, err = NormalizeName("")
	assert.Error(t, err)
	_, err = NormalizeName(strings.Repeat("n", MaxNameLength+1))
	assert.Error(t, err)
}

func TestNormalizePostContent(t *testing.T) {
	got, err := NormalizePostContent(" Graça e paz ")
	require.NoError(t, err)
	assert.Equal(t, "Graça e paz", got)

	_, err = NormalizePostContent("  \t ")
	assert.Error(t, err)

	_, err = NormalizePostContent(strings.Repeat("ç", MaxPostLength))
	assert.NoError(t, err, "limit counts runes, not bytes")
	_, err = NormalizePostContent(strings.Repeat("x", MaxPostLength+1))
	assert.Error(t, err)
}

func TestNormalizeMeetingTitle(t *testing.T) {
	_, err := NormalizeMeetingTitle("Ensaio geral")
	assert.NoError(t, err)
	_, err = NormalizeMeetingTitle(" ")
	assert.Error(t, err)
	_, err = NormalizeMeetingTitle(strings.Repeat("t", MaxMeetingTitleLength+1))
	assert.Error(t, err)
}

func TestValidateDepartment(t *testing.T) {
	assert.NoError(t, ValidateDepartment(models.DeptJuventude))
	assert.Error(t, ValidateDepartment("Coral"))
}

func TestValidateChild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		child string
		age   int
		level models.ClassLevel
		ok    bool
	}{
		{name: "valid", child: "Miguel", age: 7, level: models.ClassJunior, ok: true},
		{name: "newborn", child: "Rute", age: 0, level: models.ClassJardim, ok: true},
		{name: "oldest", child: "Davi", age: 12, level: models.ClassSenior, ok: true},
		{name: "too old", child: "Davi", age: 13, level: models.ClassSenior},
		{name: "negative age", child: "Davi", age: -1, level: models.ClassJardim},
		{name: "no name", child: "  ", age: 5, level: models.ClassJardim},
		{name: "bad level", child: "Davi", age: 5, level: "Adulto"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateChild(tc.child, tc.age, tc.level)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
