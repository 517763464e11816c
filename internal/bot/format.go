package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"logbook/internal/currency"
	"logbook/internal/dates"
	"logbook/internal/models"
	"logbook/internal/report"
	"logbook/internal/stats"
)

func statusIcon(s currency.Status) string {
	switch s {
	case currency.StatusCurrent:
		return "✅"
	case currency.StatusWarning:
		return "⚠️"
	case currency.StatusCritical:
		return "🟠"
	case currency.StatusExpired:
		return "❌"
	default:
		return "➖"
	}
}

func currentIcon(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return dates.ISO(*t)
}

func daysLeft(days *int) string {
	if days == nil {
		return ""
	}
	return fmt.Sprintf(" (%d days)", *days)
}

// formatStatus renders passenger currency and certificates
func formatStatus(s report.Stats, asOf string) string {
	var text strings.Builder
	fmt.Fprintf(&text, "🛩 Status as of %s\n\n", asOf)

	c := s.Currency
	text.WriteString("Passenger currency:\n")
	fmt.Fprintf(&text, "%s Day: %d landings, expires %s%s\n",
		currentIcon(c.DayCurrent), c.DayLandings, dateOrDash(c.DayExpiry), daysLeft(s.DayCurrencyDays))
	fmt.Fprintf(&text, "%s Night: %d landings, expires %s%s\n\n",
		currentIcon(c.NightCurrent), c.NightLandings, dateOrDash(c.NightExpiry), daysLeft(s.NightCurrencyDays))

	m := s.Medical
	if m.HasMedical {
		class := "-"
		if m.CurrentClass != nil {
			class = fmt.Sprintf("class %d", *m.CurrentClass)
		}
		fmt.Fprintf(&text, "%s Medical: %s, expires %s%s\n",
			statusIcon(m.Status), class, dateOrDash(m.Expiry), daysLeft(m.DaysRemaining))
	} else {
		fmt.Fprintf(&text, "%s Medical: none on file\n", statusIcon(m.Status))
	}

	l := s.License
	switch {
	case !l.HasLicense:
		fmt.Fprintf(&text, "%s License: none on file\n", statusIcon(l.Status))
	case l.Expiration == nil:
		fmt.Fprintf(&text, "%s License: %s, no expiration\n", statusIcon(l.Status), l.LicenseType)
	default:
		fmt.Fprintf(&text, "%s License: %s, expires %s%s\n",
			statusIcon(l.Status), l.LicenseType, dateOrDash(l.Expiration), daysLeft(l.DaysRemaining))
	}
	return text.String()
}

// formatTotals renders the logbook totals
func formatTotals(s report.Stats) string {
	t := s.TotalTimes
	var text strings.Builder
	text.WriteString("📒 Logbook totals\n\n")
	fmt.Fprintf(&text, "Total: %.1f h\n", t.TotalTime)
	fmt.Fprintf(&text, "PIC: %.1f h\nSIC: %.1f h\nDual: %.1f h\nSolo: %.1f h\n", t.PICTime, t.SICTime, t.DualTime, t.SoloTime)
	fmt.Fprintf(&text, "Cross-country: %.1f h\n", t.XCTime)
	fmt.Fprintf(&text, "Day: %.1f h\nNight: %.1f h\n", t.DayTime, t.NightTime)
	fmt.Fprintf(&text, "Instrument: %.1f h actual, %.1f h simulated\n",
		s.InstrumentBreakdown.Actual, s.InstrumentBreakdown.Simulated)
	fmt.Fprintf(&text, "Landings: %d (%d day, %d night)\n", t.TotalLandings, t.DayLandings, t.NightLandings)
	if s.DaysSinceLastFlight != nil {
		fmt.Fprintf(&text, "\nLast flight %d days ago", *s.DaysSinceLastFlight)
	}
	return text.String()
}

func progressLine(name string, p stats.Progress) string {
	return fmt.Sprintf("%s: %.1f / %.0f h (%.1f%%), %.1f h to go\n", name, p.Current, p.Required, p.Percentage, p.Remaining)
}

// formatProgress renders progress toward the commercial license and
// instrument rating
func formatProgress(s report.Stats) string {
	var text strings.Builder
	c := s.CommercialProgress
	text.WriteString("🎯 Commercial license\n")
	text.WriteString(progressLine("Total", c.TotalTime))
	text.WriteString(progressLine("PIC", c.PICTime))
	text.WriteString(progressLine("XC PIC", c.XCPICTime))

	ir := s.IRProgress
	text.WriteString("\n🌫 Instrument rating\n")
	fmt.Fprintf(&text, "Instrument: %.1f / %.0f h (%.1f%%), %.1f h to go\n", ir.CreditableTotal, ir.Required, ir.Percentage, ir.Remaining)
	fmt.Fprintf(&text, "  actual %.1f, flight simulated %.1f, simulator %.1f (%.1f creditable)\n",
		ir.Actual, ir.FlightSimulated, ir.SimulatorSimulated, ir.CreditableSimulator)
	text.WriteString(progressLine("XC PIC", ir.XCPIC))
	return text.String()
}

// formatPeople renders leaderboards and flight company insights
func formatPeople(r *report.Report) string {
	var text strings.Builder
	counts := r.People.Counts
	fmt.Fprintf(&text, "👥 Flown with %d people (%d passengers, %d instructors)\n",
		counts.TotalUniquePeople, counts.UniquePassengers, counts.UniqueInstructors)

	d := r.People.RoleDistribution
	fmt.Fprintf(&text, "Flights: %d total, %d solo, %d with passengers, %d with instruction\n",
		d.TotalFlights, d.SoloFlights, d.PassengerFlights, d.InstructionFlights)

	if len(r.Leaderboards.Passengers) > 0 {
		text.WriteString("\nTop passengers:\n")
		for i, p := range r.Leaderboards.Passengers {
			fmt.Fprintf(&text, "%d. %s - %d flights, %.1f h\n", i+1, p.Person.Name, p.FlightCount, p.TotalTime)
		}
	}
	if len(r.Leaderboards.Instructors) > 0 {
		text.WriteString("\nInstructors:\n")
		for i, in := range r.Leaderboards.Instructors {
			fmt.Fprintf(&text, "%d. %s - %.1f h (%d flights, %d ground)\n",
				i+1, in.Person.Name, in.TotalTime, in.FlightCount, in.GroundCount)
		}
	}
	return text.String()
}

// formatAircraft renders hours per class and per aircraft
func formatAircraft(a report.Aircraft) string {
	var text strings.Builder
	fmt.Fprintf(&text, "✈️ %d aircraft flown\n\n", a.Highlights.TotalAircraft)

	classes := make([]models.PlaneClass, 0, len(a.ClassBreakdown))
	for class := range a.ClassBreakdown {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for _, class := range classes {
		h := a.ClassBreakdown[class]
		fmt.Fprintf(&text, "%s: %.1f h, %d flights (%.1f%%)\n", class, h.Hours, h.FlightCount, h.Percentage)
	}

	if len(a.AircraftBreakdown) > 0 {
		text.WriteString("\n")
		for _, ac := range a.AircraftBreakdown {
			fmt.Fprintf(&text, "%s (%s) - %.1f h, %d flights\n", ac.TailNumber, ac.Type, ac.Hours, ac.FlightCount)
		}
	}
	return text.String()
}

// formatFlights renders logbook lines, newest first
func formatFlights(rows []report.FlightRow) string {
	if len(rows) == 0 {
		return "No flights logged yet."
	}
	var text strings.Builder
	text.WriteString("Last flights:\n\n")
	for i, f := range rows {
		fmt.Fprintf(&text, "%d. %s %s (%s) %.1f h", i+1, f.Date, f.Plane, f.Type, f.FlightTime)
		if f.Route != "" {
			fmt.Fprintf(&text, " %s", f.Route)
		}
		if f.Instructor != nil {
			fmt.Fprintf(&text, " with %s", *f.Instructor)
		}
		text.WriteString("\n")
	}
	return text.String()
}

// formatMonthly renders a monthly hours breakdown
func formatMonthly(months []stats.MonthlyHours) string {
	var text strings.Builder
	fmt.Fprintf(&text, "📊 Hours, last %d months\n\n", len(months))
	var total float64
	for _, m := range months {
		fmt.Fprintf(&text, "%s: %.1f h\n", m.Month, m.Hours)
		total += m.Hours
	}
	fmt.Fprintf(&text, "\nTotal: %.1f h", total)
	return text.String()
}
