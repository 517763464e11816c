package currency

import (
	"time"

	"logbook/internal/dates"
	"logbook/internal/models"
)

// Privilege durations in calendar months. Expiry is always snapped to the
// last day of the month.
const (
	firstClassMonths  = 12
	secondClassMonths = 12
	thirdClassMonths  = 60
)

// MedicalInfo is the derived status of the pilot's latest medical
type MedicalInfo struct {
	HasMedical        bool       `json:"has_medical"`
	OriginalClass     *int       `json:"original_class"`
	CurrentClass      *int       `json:"current_class"`
	ExaminationDate   *time.Time `json:"examination_date"`
	Expiry            *time.Time `json:"expiry"`
	FirstClassExpiry  *time.Time `json:"first_class_expiry"`
	SecondClassExpiry *time.Time `json:"second_class_expiry"`
	ThirdClassExpiry  *time.Time `json:"third_class_expiry"`
	DaysRemaining     *int       `json:"days_remaining"`
	Status            Status     `json:"status"`
}

// NoMedical is the result reported when no usable medical is on file
func NoMedical() MedicalInfo {
	return MedicalInfo{Status: StatusNone}
}

// FirstClassExpiry returns the last day first-class privileges may be
// exercised, or nil when the certificate was not issued as first class
func FirstClassExpiry(m models.Medical) *time.Time {
	if m.Class != 1 {
		return nil
	}
	expiry := dates.MonthEndAfter(m.ExaminationDate, firstClassMonths)
	return &expiry
}

// SecondClassExpiry returns the last day second-class privileges may be
// exercised, or nil for a third-class certificate
func SecondClassExpiry(m models.Medical) *time.Time {
	if m.Class != 1 && m.Class != 2 {
		return nil
	}
	expiry := dates.MonthEndAfter(m.ExaminationDate, secondClassMonths)
	return &expiry
}

// ThirdClassExpiry returns the last day third-class privileges may be
// exercised. Every certificate class carries third-class privileges.
func ThirdClassExpiry(m models.Medical) *time.Time {
	expiry := dates.MonthEndAfter(m.ExaminationDate, thirdClassMonths)
	return &expiry
}

// PrivilegeLevel returns the highest class whose privileges are still valid
// on asOf, or nil when the certificate has lapsed completely
func PrivilegeLevel(m models.Medical, asOf time.Time) *int {
	asOf = dates.Day(asOf)
	ladder := []struct {
		class  int
		expiry *time.Time
	}{
		{1, FirstClassExpiry(m)},
		{2, SecondClassExpiry(m)},
		{3, ThirdClassExpiry(m)},
	}
	for _, step := range ladder {
		if step.expiry != nil && !asOf.After(*step.expiry) {
			class := step.class
			return &class
		}
	}
	return nil
}

// wellFormed reports whether the medical can be evaluated at all
func wellFormed(m models.Medical) bool {
	return m.Class >= 1 && m.Class <= 3 && !m.ExaminationDate.IsZero()
}

// MedicalStatus evaluates the most recent medical issued on or before asOf.
// A pilot without such a medical, or whose latest one is malformed, gets the
// "none" status.
func MedicalStatus(medicals []models.Medical, asOf time.Time) MedicalInfo {
	asOf = dates.Day(asOf)

	var latest *models.Medical
	for i, m := range medicals {
		if dates.Day(m.ExaminationDate).After(asOf) {
			continue
		}
		if latest == nil || m.ExaminationDate.After(latest.ExaminationDate) {
			latest = &medicals[i]
		}
	}
	if latest == nil || !wellFormed(*latest) {
		return NoMedical()
	}

	exam := dates.Day(latest.ExaminationDate)
	original := latest.Class

	info := MedicalInfo{
		HasMedical:        true,
		OriginalClass:     &original,
		ExaminationDate:   &exam,
		FirstClassExpiry:  FirstClassExpiry(*latest),
		SecondClassExpiry: SecondClassExpiry(*latest),
		ThirdClassExpiry:  ThirdClassExpiry(*latest),
	}

	info.CurrentClass = PrivilegeLevel(*latest, asOf)
	if info.CurrentClass == nil {
		info.Status = StatusExpired
		return info
	}

	switch *info.CurrentClass {
	case 1:
		info.Expiry = info.FirstClassExpiry
	case 2:
		info.Expiry = info.SecondClassExpiry
	default:
		info.Expiry = info.ThirdClassExpiry
	}

	days := dates.DaysBetween(asOf, *info.Expiry)
	info.DaysRemaining = &days
	info.Status = statusForDaysRemaining(days)
	return info
}
