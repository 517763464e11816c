package currency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/models"
)

var asOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return asOf.AddDate(0, 0, -n)
}

func landing(ago, day, nightFullStop int) models.Flight {
	return models.Flight{
		Date:                  daysAgo(ago),
		DayLandings:           day,
		NightFullStopLandings: nightFullStop,
	}
}

func TestPassengerCurrency_WindowExcludesOldLandings(t *testing.T) {
	flights := []models.Flight{
		landing(95, 1, 0),
		landing(70, 1, 0),
		landing(40, 1, 0),
	}

	status := PassengerCurrency(flights, asOf)

	assert.Equal(t, 2, status.DayLandings)
	assert.False(t, status.DayCurrent)
	require.NotNil(t, status.DayExpiry, "three landings were logged overall")
	assert.Equal(t, daysAgo(95).AddDate(0, 0, 90), *status.DayExpiry)
	assert.Nil(t, status.NightExpiry)
	assert.False(t, status.NightCurrent)
}

func TestPassengerCurrency_Current(t *testing.T) {
	flights := []models.Flight{
		landing(10, 2, 1),
		landing(20, 1, 2),
		landing(200, 5, 5),
	}

	status := PassengerCurrency(flights, asOf)

	assert.True(t, status.DayCurrent)
	assert.Equal(t, 3, status.DayLandings)
	assert.True(t, status.NightCurrent)
	assert.Equal(t, 3, status.NightLandings)

	// the third most recent landing happened 20 days ago for both kinds
	require.NotNil(t, status.DayExpiry)
	assert.Equal(t, daysAgo(20).AddDate(0, 0, 90), *status.DayExpiry)
	require.NotNil(t, status.NightExpiry)
	assert.Equal(t, daysAgo(20).AddDate(0, 0, 90), *status.NightExpiry)
}

func TestPassengerCurrency_PartialProgressSpansFlights(t *testing.T) {
	flights := []models.Flight{
		landing(5, 1, 0),
		landing(30, 0, 0),
		landing(45, 1, 0),
		landing(60, 4, 0),
	}

	status := PassengerCurrency(flights, asOf)

	require.NotNil(t, status.DayExpiry)
	assert.Equal(t, daysAgo(60).AddDate(0, 0, 90), *status.DayExpiry)
	assert.Equal(t, 6, status.DayLandings)
}

func TestPassengerCurrency_NightCountsOnlyFullStops(t *testing.T) {
	flights := []models.Flight{
		{Date: daysAgo(3), NightLandings: 6, NightFullStopLandings: 1},
		{Date: daysAgo(4), DayFullStopLandings: 6},
	}

	status := PassengerCurrency(flights, asOf)

	assert.Equal(t, 1, status.NightLandings)
	assert.False(t, status.NightCurrent)
	assert.Equal(t, 0, status.DayLandings, "day currency sums day landings only")
	assert.Nil(t, status.DayExpiry)
}

func TestPassengerCurrency_WindowBoundaries(t *testing.T) {
	flights := []models.Flight{
		landing(90, 1, 0),
		landing(0, 1, 0),
		landing(-3, 5, 5), // logged in the future relative to asOf
	}

	status := PassengerCurrency(flights, asOf)

	assert.Equal(t, 2, status.DayLandings)
	assert.Equal(t, 0, status.NightLandings)
	assert.Nil(t, status.DayExpiry)
}

func TestPassengerCurrency_Empty(t *testing.T) {
	status := PassengerCurrency(nil, asOf)

	assert.Equal(t, PassengerStatus{}, status)
}

func TestPassengerCurrency_DoesNotReorderInput(t *testing.T) {
	flights := []models.Flight{landing(50, 1, 0), landing(10, 1, 0), landing(30, 1, 0)}
	before := append([]models.Flight(nil), flights...)

	first := PassengerCurrency(flights, asOf)
	second := PassengerCurrency(flights, asOf)

	assert.Equal(t, before, flights)
	assert.Equal(t, first, second)
}

func TestDaysUntilCurrencyExpires(t *testing.T) {
	flights := []models.Flight{landing(10, 3, 1)}

	days := DaysUntilCurrencyExpires(flights, Day, asOf)
	require.NotNil(t, days)
	assert.Equal(t, 80, *days)

	assert.Nil(t, DaysUntilCurrencyExpires(flights, Night, asOf))
	assert.Nil(t, DaysUntilCurrencyExpires(nil, Day, asOf))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Night")
	require.NoError(t, err)
	assert.Equal(t, Night, k)

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Day, k)

	_, err = ParseKind("dusk")
	assert.Error(t, err)
}
