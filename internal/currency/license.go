package currency

import (
	"time"

	"logbook/internal/dates"
	"logbook/internal/models"
)

// LicenseInfo is the derived status of the pilot's primary license
type LicenseInfo struct {
	HasLicense    bool       `json:"has_license"`
	LicenseType   string     `json:"license_type"`
	Number        *int64     `json:"number"`
	Expiration    *time.Time `json:"expiration"`
	DaysRemaining *int       `json:"days_remaining"`
	Status        Status     `json:"status"`
}

// LicenseStatus reports on the license that stays valid the longest. A
// license without an expiration date never lapses and wins over any dated
// one; among dated licenses the latest expiration wins.
func LicenseStatus(licenses []models.License, asOf time.Time) LicenseInfo {
	if len(licenses) == 0 {
		return LicenseInfo{Status: StatusNone}
	}

	primary := licenses[0]
	for _, l := range licenses[1:] {
		if outlasts(l, primary) {
			primary = l
		}
	}

	number := primary.Number
	info := LicenseInfo{
		HasLicense:  true,
		LicenseType: primary.Name,
		Number:      &number,
	}

	if primary.Expiration == nil {
		info.Status = StatusCurrent
		return info
	}

	expiration := dates.Day(*primary.Expiration)
	days := dates.DaysBetween(asOf, expiration)
	info.Expiration = &expiration
	info.DaysRemaining = &days
	info.Status = statusForDaysRemaining(days)
	return info
}

// outlasts reports whether a stays valid strictly longer than b
func outlasts(a, b models.License) bool {
	switch {
	case b.Expiration == nil:
		return false
	case a.Expiration == nil:
		return true
	default:
		return a.Expiration.After(*b.Expiration)
	}
}
