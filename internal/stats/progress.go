package stats

import (
	"github.com/shopspring/decimal"

	"logbook/internal/models"
)

// Regulatory minimums
var (
	CommercialTotalRequired = decimal.NewFromInt(250)
	CommercialPICRequired   = decimal.NewFromInt(100)
	XCPICRequired           = decimal.NewFromInt(50)
	InstrumentRequired      = decimal.NewFromInt(40)
	// SimulatorCreditCap limits the simulator device time creditable
	// toward the instrument rating
	SimulatorCreditCap = decimal.NewFromInt(20)
)

// Progress tracks one requirement
type Progress struct {
	Current    float64 `json:"current"`
	Required   float64 `json:"required"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

func progressToward(current, required decimal.Decimal) Progress {
	return Progress{
		Current:    hours(current),
		Required:   hours(required),
		Remaining:  hours(decimal.Max(decimal.Zero, required.Sub(current))),
		Percentage: decimal.Min(hundred, current.Mul(hundred).Div(required)).Round(1).InexactFloat64(),
	}
}

// CommercialProgress holds the commercial license requirements
type CommercialProgress struct {
	TotalTime Progress `json:"total_time"`
	PICTime   Progress `json:"pic_time"`
	XCPICTime Progress `json:"xc_pic_time"`
}

// CommercialLicenseProgress measures flight time against the commercial
// license minimums
func CommercialLicenseProgress(flights []models.Flight) CommercialProgress {
	return CommercialProgress{
		TotalTime: progressToward(sumFlights(flights, flightTime), CommercialTotalRequired),
		PICTime: progressToward(sumFlights(flights, func(f models.Flight) decimal.Decimal {
			return f.PICTime
		}), CommercialPICRequired),
		XCPICTime: progressToward(xcPIC(flights), XCPICRequired),
	}
}

// InstrumentProgress holds the instrument rating requirements
type InstrumentProgress struct {
	Actual              float64  `json:"actual"`
	FlightSimulated     float64  `json:"flight_simulated"`
	SimulatorSimulated  float64  `json:"simulator_simulated"`
	CreditableSimulator float64  `json:"creditable_simulator"`
	CreditableTotal     float64  `json:"creditable_total"`
	Required            float64  `json:"required"`
	Remaining           float64  `json:"remaining"`
	Percentage          float64  `json:"percentage"`
	XCPIC               Progress `json:"xc_pic"`
}

// InstrumentRatingProgress measures instrument time against the instrument
// rating minimum. Simulated time in flight counts fully; simulator device
// time counts up to SimulatorCreditCap.
func InstrumentRatingProgress(flights []models.Flight, sims []models.SimulatorSession) InstrumentProgress {
	s := sumInstrument(flights, sims)
	creditableSim := decimal.Min(s.simulatorSimulated, SimulatorCreditCap)
	creditable := s.actual.Add(creditableSim).Add(s.flightSimulated)
	total := progressToward(creditable, InstrumentRequired)

	return InstrumentProgress{
		Actual:              hours(s.actual),
		FlightSimulated:     hours(s.flightSimulated),
		SimulatorSimulated:  hours(s.simulatorSimulated),
		CreditableSimulator: hours(creditableSim),
		CreditableTotal:     total.Current,
		Required:            total.Required,
		Remaining:           total.Remaining,
		Percentage:          total.Percentage,
		XCPIC:               progressToward(xcPIC(flights), XCPICRequired),
	}
}
