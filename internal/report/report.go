// Package report assembles the dashboard snapshot served by the HTTP API,
// summarized by the bot and written by the export job
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logbook/internal/currency"
	"logbook/internal/dates"
	"logbook/internal/models"
	"logbook/internal/stats"
	"logbook/internal/storage"
)

// Stats is the dashboard header: totals, currency and certificates
type Stats struct {
	TotalTimes          stats.TotalTimes         `json:"total_times"`
	Currency            currency.PassengerStatus `json:"currency"`
	DayCurrencyDays     *int                     `json:"day_currency_days_remaining"`
	NightCurrencyDays   *int                     `json:"night_currency_days_remaining"`
	Medical             currency.MedicalInfo     `json:"medical"`
	License             currency.LicenseInfo     `json:"license"`
	IRProgress          stats.InstrumentProgress `json:"ir_progress"`
	CommercialProgress  stats.CommercialProgress `json:"commercial_progress"`
	InstrumentBreakdown stats.InstrumentTimes    `json:"instrument_breakdown"`
	DaysSinceLastFlight *int                     `json:"days_since_last_flight"`
	LastUpdated         time.Time                `json:"last_updated"`
}

// AircraftBar is one bar of the hours-per-aircraft chart
type AircraftBar struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Hours float64 `json:"hours"`
}

// Charts holds the series plotted on the dashboard
type Charts struct {
	MonthlyLabels         []string                `json:"monthly_labels"`
	MonthlyHours          []float64               `json:"monthly_hours"`
	CumulativeData        []stats.CumulativePoint `json:"cumulative_data"`
	AircraftBreakdown     []AircraftBar           `json:"aircraft_breakdown"`
	InstructorProgression stats.Progression       `json:"instructor_progression"`
}

// Leaderboards ranks the people flown with
type Leaderboards struct {
	Passengers  []stats.PassengerEntry  `json:"passengers"`
	Instructors []stats.InstructorEntry `json:"instructors"`
}

// Aircraft holds the aircraft page breakdowns
type Aircraft struct {
	SELHours          float64                                `json:"sel_hours"`
	ClassBreakdown    map[models.PlaneClass]stats.ClassHours `json:"class_breakdown"`
	TypeStats         []stats.TypeHours                      `json:"type_stats"`
	Highlights        stats.Highlights                       `json:"highlights"`
	AircraftBreakdown []stats.AircraftHours                  `json:"aircraft_breakdown"`
}

// People holds the counterpart statistics
type People struct {
	Counts           stats.PeopleCounts     `json:"unique_people_counts"`
	RoleDistribution stats.RoleDistribution `json:"role_distribution"`
	Insights         stats.Insights         `json:"insights"`
	Monthly          []stats.MonthlyPeople  `json:"monthly"`
}

// FlightRow is a flat, display-ready logbook line
type FlightRow struct {
	Date                  string   `json:"date"`
	Plane                 string   `json:"plane"`
	Type                  string   `json:"type"`
	Route                 string   `json:"route"`
	Instructor            *string  `json:"instructor"`
	Passengers            []string `json:"passengers"`
	FlightTime            float64  `json:"flight_time"`
	PICTime               float64  `json:"pic_time"`
	SICTime               float64  `json:"sic_time"`
	DualTime              float64  `json:"dual_time"`
	XCTime                float64  `json:"xc_time"`
	DayTime               float64  `json:"day_time"`
	NightTime             float64  `json:"night_time"`
	ActualInstrument      float64  `json:"actual_instrument_time"`
	SimulatedInstrument   float64  `json:"simulated_instrument_time"`
	DayLandings           int      `json:"day_landings"`
	DayFullStopLandings   int      `json:"day_fullstop_landings"`
	NightLandings         int      `json:"night_landings"`
	NightFullStopLandings int      `json:"night_fullstop_landings"`
	Notes                 string   `json:"notes"`
}

// Report is the complete snapshot for one pilot at one reference date
type Report struct {
	Pilot         models.Pilot         `json:"pilot"`
	AsOf          string               `json:"as_of"`
	Flights       []FlightRow          `json:"flights"`
	RecentFlights []stats.RecentFlight `json:"recent_flights"`
	Stats         Stats                `json:"stats"`
	Charts        Charts               `json:"charts"`
	Leaderboards  Leaderboards         `json:"leaderboards"`
	Aircraft      Aircraft             `json:"aircraft"`
	People        People               `json:"people"`
	Routes        []stats.RouteSummary `json:"routes"`
}

// Builder loads ledgers from storage and turns them into reports
type Builder struct {
	store  storage.Storage
	logger *zap.Logger
	now    func() time.Time
}

// NewBuilder creates a report builder
func NewBuilder(store storage.Storage, logger *zap.Logger) *Builder {
	return &Builder{store: store, logger: logger, now: time.Now}
}

// Build loads the pilot's ledger and computes the report. A failure to read
// medical records is logged and reported as "no medical"; every other
// storage error is returned.
func (b *Builder) Build(ctx context.Context, pilotID uuid.UUID, asOf time.Time) (*Report, error) {
	ledger, err := storage.LoadLedger(ctx, b.store, pilotID)
	if err != nil {
		if !errors.Is(err, storage.ErrMedicals) {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		b.logger.Warn("Medical records unavailable, reporting no medical",
			zap.String("pilot_id", pilotID.String()),
			zap.Error(err))
		ledger.Medicals = nil
	}

	r := FromLedger(ledger, asOf)
	r.Stats.LastUpdated = b.now().UTC()
	return r, nil
}

// Build is a convenience wrapper around a one-off Builder
func Build(ctx context.Context, store storage.Storage, logger *zap.Logger, pilotID uuid.UUID, asOf time.Time) (*Report, error) {
	return NewBuilder(store, logger).Build(ctx, pilotID, asOf)
}

// FromLedger computes the report from an already loaded ledger
func FromLedger(ledger models.Ledger, asOf time.Time) *Report {
	asOf = dates.Day(asOf)
	flights := ledger.Flights

	r := &Report{
		Pilot:         ledger.Pilot,
		AsOf:          dates.ISO(asOf),
		Flights:       flightRows(flights),
		RecentFlights: stats.RecentFlights(flights, stats.DefaultLimit),
		Stats: Stats{
			TotalTimes:          stats.Totals(flights),
			Currency:            currency.PassengerCurrency(flights, asOf),
			DayCurrencyDays:     currency.DaysUntilCurrencyExpires(flights, currency.Day, asOf),
			NightCurrencyDays:   currency.DaysUntilCurrencyExpires(flights, currency.Night, asOf),
			Medical:             currency.MedicalStatus(ledger.Medicals, asOf),
			License:             currency.LicenseStatus(ledger.Licenses, asOf),
			IRProgress:          stats.InstrumentRatingProgress(flights, ledger.Simulators),
			CommercialProgress:  stats.CommercialLicenseProgress(flights),
			InstrumentBreakdown: stats.InstrumentBreakdown(flights, ledger.Simulators),
			DaysSinceLastFlight: stats.DaysSinceLastFlight(flights, asOf),
		},
		Leaderboards: Leaderboards{
			Passengers:  stats.PassengerLeaderboard(flights, stats.DefaultLimit),
			Instructors: stats.InstructorLeaderboard(flights, ledger.Grounds, stats.DefaultLimit),
		},
		Aircraft: Aircraft{
			SELHours:          stats.SELTotalHours(flights),
			ClassBreakdown:    stats.AircraftClassBreakdown(flights),
			TypeStats:         stats.AircraftTypeStatistics(flights),
			Highlights:        stats.AircraftHighlights(flights),
			AircraftBreakdown: stats.AircraftBreakdown(flights),
		},
		People: People{
			Counts:           stats.UniquePeopleCounts(flights),
			RoleDistribution: stats.PeopleRoleDistribution(flights),
			Insights:         stats.PeopleInsights(flights, ledger.Grounds),
			Monthly:          stats.MonthlyPeopleFrequency(flights, stats.DefaultMonths, asOf),
		},
		Routes: stats.RouteSummaries(flights),
	}

	monthly := stats.MonthlyBreakdown(flights, stats.DefaultMonths, asOf)
	r.Charts = Charts{
		MonthlyLabels:         make([]string, 0, len(monthly)),
		MonthlyHours:          make([]float64, 0, len(monthly)),
		CumulativeData:        stats.CumulativeTimeData(flights),
		AircraftBreakdown:     make([]AircraftBar, 0, len(r.Aircraft.AircraftBreakdown)),
		InstructorProgression: stats.InstructorTimeProgression(flights),
	}
	for _, m := range monthly {
		r.Charts.MonthlyLabels = append(r.Charts.MonthlyLabels, m.Month)
		r.Charts.MonthlyHours = append(r.Charts.MonthlyHours, m.Hours)
	}
	for _, a := range r.Aircraft.AircraftBreakdown {
		r.Charts.AircraftBreakdown = append(r.Charts.AircraftBreakdown, AircraftBar{Name: a.TailNumber, Type: a.Type, Hours: a.Hours})
	}
	return r
}

// flightRows lists flights newest first
func flightRows(flights []models.Flight) []FlightRow {
	rows := make([]FlightRow, 0, len(flights))
	for i := len(flights) - 1; i >= 0; i-- {
		f := flights[i]
		row := FlightRow{
			Date:                  dates.ISO(f.Date),
			Plane:                 f.Plane.TailNumber,
			Type:                  f.Plane.Type,
			Passengers:            make([]string, 0, len(f.Passengers)),
			FlightTime:            f.FlightTime.Round(1).InexactFloat64(),
			PICTime:               f.PICTime.Round(1).InexactFloat64(),
			SICTime:               f.SICTime.Round(1).InexactFloat64(),
			DualTime:              f.DualReceived.Round(1).InexactFloat64(),
			XCTime:                f.XCTime.Round(1).InexactFloat64(),
			DayTime:               f.DayTime.Round(1).InexactFloat64(),
			NightTime:             f.NightTime.Round(1).InexactFloat64(),
			ActualInstrument:      f.ActualInstrument.Round(1).InexactFloat64(),
			SimulatedInstrument:   f.SimulatedInstrument.Round(1).InexactFloat64(),
			DayLandings:           f.DayLandings,
			DayFullStopLandings:   f.DayFullStopLandings,
			NightLandings:         f.NightLandings,
			NightFullStopLandings: f.NightFullStopLandings,
			Notes:                 f.Notes,
		}
		if f.Route != nil {
			row.Route = f.Route.Name
		}
		if f.Instructor != nil {
			name := f.Instructor.Name()
			row.Instructor = &name
		}
		for _, p := range f.Passengers {
			row.Passengers = append(row.Passengers, p.Name())
		}
		rows = append(rows, row)
	}
	return rows
}
