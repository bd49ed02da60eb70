package domain_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocine/internal/domain"
)

func TestDate_JSON(t *testing.T) {
	d := domain.NewDate(1895, time.December, 28)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1895-12-28"`, string(data))

	var back domain.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_JSONNull(t *testing.T) {
	var d domain.Date
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())

	data, err := json.Marshal(domain.Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d domain.Date
	assert.Error(t, json.Unmarshal([]byte(`"28/12/1895"`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d domain.Date

	require.NoError(t, d.Scan(time.Date(2001, 2, 3, 15, 4, 5, 0, time.FixedZone("X", 3600))))
	assert.Equal(t, domain.NewDate(2001, 2, 3), d)

	require.NoError(t, d.Scan("1999-12-31T00:00:00Z"))
	assert.Equal(t, domain.NewDate(1999, 12, 31), d)

	require.NoError(t, d.Scan([]byte("2020-01-01")))
	assert.Equal(t, domain.NewDate(2020, 1, 1), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Compare(t *testing.T) {
	epoch := domain.CinemaEpoch
	dayBefore := domain.NewDate(1895, 12, 27)

	assert.True(t, dayBefore.IsBefore(epoch))
	assert.False(t, epoch.IsBefore(epoch))
	assert.True(t, epoch.IsAfter(dayBefore))
	assert.Equal(t, "1895-12-28", epoch.String())
}

func TestUser_DisplayNameOrLogin(t *testing.T) {
	assert.Equal(t, "neo", domain.User{Login: "neo", Name: "  "}.DisplayNameOrLogin())
	assert.Equal(t, "Thomas", domain.User{Login: "neo", Name: "Thomas"}.DisplayNameOrLogin())
}
