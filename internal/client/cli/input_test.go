package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
	"github.com/dmitrijs2005/weatherface/internal/common"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(int) bool { return true }

	readPassword = func(int) ([]byte, error) { return []byte("s3cret-pw"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(rdr(""), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret-pw"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(rdr(""), "Enter password", &out)
	assert.Error(t, err)
}

func TestGetPassword_NotTerminal(t *testing.T) {
	plainPasswords(t)

	var out bytes.Buffer
	pw, err := GetPassword(rdr("piped-pw\n"), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("piped-pw"), pw)
}

func TestGetCities(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.City
		wantErr  bool
	}{
		{
			name:     "stop on empty line",
			input:    "Prague, 110 00\nBrno,60200\n\nignored, 1\n",
			expected: []models.City{models.NewCity("Prague", 11000), models.NewCity("Brno", 60200)},
		},
		{
			name:     "name with comma",
			input:    "Frydek, Mistek, 73801\n\n",
			expected: []models.City{models.NewCity("Frydek, Mistek", 73801)},
		},
		{
			name:     "EOF without trailing blank line",
			input:    "Ostrava, 70200",
			expected: []models.City{models.NewCity("Ostrava", 70200)},
		},
		{
			name:  "immediate blank line",
			input: "\n",
		},
		{
			name:    "missing post code",
			input:   "Prague\n\n",
			wantErr: true,
		},
		{
			name:    "bad post code",
			input:   "Prague, abc\n\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetCities(rdr(tc.input), &out)
			if tc.wantErr {
				require.ErrorIs(t, err, common.ErrorValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParsePostCode(t *testing.T) {
	n, err := ParsePostCode(" 110 00 ")
	require.NoError(t, err)
	assert.Equal(t, 11000, n)

	for _, bad := range []string{"", "abc", "0", "-5"} {
		_, err := ParsePostCode(bad)
		assert.Error(t, err, bad)
	}
}
