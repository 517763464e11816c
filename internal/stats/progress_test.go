package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"logbook/internal/models"
)

func TestCommercialLicenseProgress(t *testing.T) {
	a := flight(day(2024, 1, 1), cessna, "120.0")
	a.PICTime = hrs("110.0")
	a.XCTime = hrs("30.0")
	b := flight(day(2024, 1, 2), cessna, "5.0")
	b.XCTime = hrs("5.0")

	p := CommercialLicenseProgress([]models.Flight{a, b})

	assert.Equal(t, Progress{Current: 125, Required: 250, Remaining: 125, Percentage: 50}, p.TotalTime)
	assert.Equal(t, Progress{Current: 110, Required: 100, Remaining: 0, Percentage: 100}, p.PICTime)
	assert.Equal(t, Progress{Current: 30, Required: 50, Remaining: 20, Percentage: 60}, p.XCPICTime)
}

func TestCommercialLicenseProgress_Empty(t *testing.T) {
	p := CommercialLicenseProgress(nil)

	assert.Equal(t, Progress{Current: 0, Required: 250, Remaining: 250, Percentage: 0}, p.TotalTime)
}

func TestInstrumentRatingProgress_CapsSimulatorCredit(t *testing.T) {
	f := flight(day(2024, 1, 1), cessna, "10.0")
	f.ActualInstrument = hrs("5.0")
	f.SimulatedInstrument = hrs("8.0")
	sims := []models.SimulatorSession{
		{SimulatedInstrument: hrs("15.0")},
		{SimulatedInstrument: hrs("10.0")},
	}

	p := InstrumentRatingProgress([]models.Flight{f}, sims)

	assert.Equal(t, 25.0, p.SimulatorSimulated)
	assert.Equal(t, 20.0, p.CreditableSimulator)
	assert.Equal(t, 33.0, p.CreditableTotal)
	assert.Equal(t, 7.0, p.Remaining)
	assert.Equal(t, 82.5, p.Percentage)
	assert.Equal(t, 40.0, p.Required)
}

func TestInstrumentRatingProgress_CanExceedRequirement(t *testing.T) {
	f := flight(day(2024, 1, 1), cessna, "50.0")
	f.ActualInstrument = hrs("30.0")
	f.SimulatedInstrument = hrs("25.0")

	p := InstrumentRatingProgress([]models.Flight{f}, nil)

	assert.Equal(t, 55.0, p.CreditableTotal)
	assert.Equal(t, 0.0, p.Remaining)
	assert.Equal(t, 100.0, p.Percentage)
}

func TestInstrumentRatingProgress_RemainingMatchesCreditable(t *testing.T) {
	for i := 0; i < 60; i++ {
		f := flight(day(2024, 1, 1), cessna, "1.0")
		f.ActualInstrument = hrs("0.7")
		f.SimulatedInstrument = hrs("0.3")
		flights := make([]models.Flight, i)
		for j := range flights {
			flights[j] = f
		}
		sims := make([]models.SimulatorSession, i/2)
		for j := range sims {
			sims[j] = models.SimulatorSession{SimulatedInstrument: hrs("1.3")}
		}

		p := InstrumentRatingProgress(flights, sims)
		assert.InDelta(t, math.Max(0, 40-p.CreditableTotal), p.Remaining, 1e-9, "flights=%d", i)
	}
}

func TestInstrumentRatingProgress_XCPIC(t *testing.T) {
	f := flight(day(2024, 1, 1), cessna, "12.5")
	f.XCTime = hrs("12.5")
	f.PICTime = hrs("12.5")

	p := InstrumentRatingProgress([]models.Flight{f}, nil)

	assert.Equal(t, Progress{Current: 12.5, Required: 50, Remaining: 37.5, Percentage: 25}, p.XCPIC)
}
