package stats

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"logbook/internal/dates"
	"logbook/internal/models"
)

// TotalTimes holds the per-category sums over all flights
type TotalTimes struct {
	TotalTime           float64 `json:"total_time"`
	PICTime             float64 `json:"pic_time"`
	SICTime             float64 `json:"sic_time"`
	DualTime            float64 `json:"dual_time"`
	XCTime              float64 `json:"xc_time"`
	SoloTime            float64 `json:"solo_time"`
	DayTime             float64 `json:"day_time"`
	NightTime           float64 `json:"night_time"`
	ActualInstrument    float64 `json:"actual_instrument"`
	SimulatedInstrument float64 `json:"simulated_instrument"`
	DayLandings         int     `json:"day_landings"`
	NightLandings       int     `json:"night_landings"`
	TotalLandings       int     `json:"total_landings"`
}

// Totals sums every time category and landing counter
func Totals(flights []models.Flight) TotalTimes {
	var total, pic, sic, dual, xc, solo, day, night, actual, simulated decimal.Decimal
	var t TotalTimes
	for _, f := range flights {
		total = total.Add(f.FlightTime)
		pic = pic.Add(f.PICTime)
		sic = sic.Add(f.SICTime)
		dual = dual.Add(f.DualReceived)
		xc = xc.Add(f.XCTime)
		solo = solo.Add(f.SoloTime)
		day = day.Add(f.DayTime)
		night = night.Add(f.NightTime)
		actual = actual.Add(f.ActualInstrument)
		simulated = simulated.Add(f.SimulatedInstrument)

		t.DayLandings += f.DayLandings
		t.NightLandings += f.NightLandings
		t.TotalLandings += f.TotalLandings()
	}

	t.TotalTime = hours(total)
	t.PICTime = hours(pic)
	t.SICTime = hours(sic)
	t.DualTime = hours(dual)
	t.XCTime = hours(xc)
	t.SoloTime = hours(solo)
	t.DayTime = hours(day)
	t.NightTime = hours(night)
	t.ActualInstrument = hours(actual)
	t.SimulatedInstrument = hours(simulated)
	return t
}

// InstrumentTimes splits instrument time by source. Simulated time is logged
// both in flights (hood/foggles) and in simulator sessions.
type InstrumentTimes struct {
	Actual             float64 `json:"actual"`
	FlightSimulated    float64 `json:"flight_simulated"`
	SimulatorSimulated float64 `json:"simulator_simulated"`
	Simulated          float64 `json:"simulated"`
	Total              float64 `json:"total"`
}

type instrumentSums struct {
	actual, flightSimulated, simulatorSimulated decimal.Decimal
}

func sumInstrument(flights []models.Flight, sims []models.SimulatorSession) instrumentSums {
	var s instrumentSums
	for _, f := range flights {
		s.actual = s.actual.Add(f.ActualInstrument)
		s.flightSimulated = s.flightSimulated.Add(f.SimulatedInstrument)
	}
	for _, sim := range sims {
		s.simulatorSimulated = s.simulatorSimulated.Add(sim.SimulatedInstrument)
	}
	return s
}

// InstrumentBreakdown reports actual vs simulated instrument time
func InstrumentBreakdown(flights []models.Flight, sims []models.SimulatorSession) InstrumentTimes {
	s := sumInstrument(flights, sims)
	simulated := s.flightSimulated.Add(s.simulatorSimulated)
	return InstrumentTimes{
		Actual:             hours(s.actual),
		FlightSimulated:    hours(s.flightSimulated),
		SimulatorSimulated: hours(s.simulatorSimulated),
		Simulated:          hours(simulated),
		Total:              hours(s.actual.Add(simulated)),
	}
}

func xcPIC(flights []models.Flight) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flights {
		if f.XCTime.IsPositive() && f.PICTime.IsPositive() {
			total = total.Add(f.XCTime)
		}
	}
	return total
}

// XCPICTime sums cross-country time of flights that were both cross-country
// and logged as PIC
func XCPICTime(flights []models.Flight) float64 {
	return hours(xcPIC(flights))
}

func selHours(flights []models.Flight) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flights {
		if f.Plane.Class == models.SingleEngineLand {
			total = total.Add(f.FlightTime)
		}
	}
	return total
}

// SELTotalHours sums flight time in single-engine land airplanes
func SELTotalHours(flights []models.Flight) float64 {
	return hours(selHours(flights))
}

// DaysSinceLastFlight returns the number of days between the most recent
// flight on or before asOf and asOf, or nil when nothing was flown by then
func DaysSinceLastFlight(flights []models.Flight, asOf time.Time) *int {
	asOf = dates.Day(asOf)
	var last *time.Time
	for _, f := range flights {
		d := dates.Day(f.Date)
		if d.After(asOf) {
			continue
		}
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	if last == nil {
		return nil
	}
	days := dates.DaysBetween(*last, asOf)
	return &days
}

// RecentFlight is a copy of a flight annotated with derived landing totals
type RecentFlight struct {
	models.Flight
	TotalDayLandings   int `json:"total_day_landings"`
	TotalNightLandings int `json:"total_night_landings"`
}

// MarshalJSON encodes the flight's hours as rounded numbers, matching the
// other report values
func (r RecentFlight) MarshalJSON() ([]byte, error) {
	type plain models.Flight
	f := r.Flight
	return json.Marshal(struct {
		plain
		FlightTime          float64 `json:"flight_time"`
		PICTime             float64 `json:"pic_time"`
		SICTime             float64 `json:"sic_time"`
		DualReceived        float64 `json:"dual_time"`
		XCTime              float64 `json:"xc_time"`
		SoloTime            float64 `json:"solo_time"`
		DayTime             float64 `json:"day_time"`
		NightTime           float64 `json:"night_time"`
		ActualInstrument    float64 `json:"actual_instrument_time"`
		SimulatedInstrument float64 `json:"simulated_instrument_time"`
		TotalDayLandings    int     `json:"total_day_landings"`
		TotalNightLandings  int     `json:"total_night_landings"`
	}{
		plain:               plain(f),
		FlightTime:          hours(f.FlightTime),
		PICTime:             hours(f.PICTime),
		SICTime:             hours(f.SICTime),
		DualReceived:        hours(f.DualReceived),
		XCTime:              hours(f.XCTime),
		SoloTime:            hours(f.SoloTime),
		DayTime:             hours(f.DayTime),
		NightTime:           hours(f.NightTime),
		ActualInstrument:    hours(f.ActualInstrument),
		SimulatedInstrument: hours(f.SimulatedInstrument),
		TotalDayLandings:    r.TotalDayLandings,
		TotalNightLandings:  r.TotalNightLandings,
	})
}

// byDateDesc returns a copy of flights ordered from newest to oldest;
// flights on the same day keep their input order
func byDateDesc(flights []models.Flight) []models.Flight {
	sorted := make([]models.Flight, len(flights))
	copy(sorted, flights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// byDateAsc returns a copy of flights ordered from oldest to newest
func byDateAsc(flights []models.Flight) []models.Flight {
	sorted := make([]models.Flight, len(flights))
	copy(sorted, flights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// RecentFlights returns the latest limit flights, newest first. The input
// records are never modified; annotations live on the returned copies.
func RecentFlights(flights []models.Flight, limit int) []RecentFlight {
	limit = orDefault(limit, DefaultLimit)
	sorted := byDateDesc(flights)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]RecentFlight, 0, len(sorted))
	for _, f := range sorted {
		f.Passengers = append([]models.Pilot(nil), f.Passengers...)
		recent = append(recent, RecentFlight{
			Flight:             f,
			TotalDayLandings:   f.DayLandings + f.DayFullStopLandings,
			TotalNightLandings: f.NightLandings + f.NightFullStopLandings,
		})
	}
	return recent
}

// CumulativePoint is one point of the cumulative time chart
type CumulativePoint struct {
	Date       string  `json:"date"`
	Total      float64 `json:"total"`
	PIC        float64 `json:"pic"`
	Dual       float64 `json:"dual"`
	Instrument float64 `json:"instrument"`
}

// CumulativeTimeData returns running totals, one point per flight in
// chronological order
func CumulativeTimeData(flights []models.Flight) []CumulativePoint {
	var total, pic, dual, instrument decimal.Decimal
	points := make([]CumulativePoint, 0, len(flights))
	for _, f := range byDateAsc(flights) {
		total = total.Add(f.FlightTime)
		pic = pic.Add(f.PICTime)
		dual = dual.Add(f.DualReceived)
		instrument = instrument.Add(f.ActualInstrument).Add(f.SimulatedInstrument)

		points = append(points, CumulativePoint{
			Date:       dates.ISO(f.Date),
			Total:      hours(total),
			PIC:        hours(pic),
			Dual:       hours(dual),
			Instrument: hours(instrument),
		})
	}
	return points
}
