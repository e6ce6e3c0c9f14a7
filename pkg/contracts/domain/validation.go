package domain

import (
	"time"
)

// Column names of the validations export
const (
	ColumnDay      = "jour"
	ColumnMonth    = "Mois"
	ColumnStop     = "libelle_arret"
	ColumnCategory = "categorie_titre"
	ColumnCount    = "nb_vald"
)

// RequiredColumns lists the columns every validations export must carry
var RequiredColumns = []string{ColumnDay, ColumnMonth, ColumnStop, ColumnCategory, ColumnCount}

// HeadlineMetrics holds the two figures shown at the top of the dashboard
type HeadlineMetrics struct {
	StationCount     int   `json:"station_count"`
	TotalValidations int64 `json:"total_validations"`
}

// DayTotal is the sum of validations for one calendar day
type DayTotal struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// CategoryShare is the share of a ticket category within one month
type CategoryShare struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Percent  float64 `json:"percent"`
}

// StopTotal is the sum of validations for one stop
type StopTotal struct {
	Stop  string `json:"stop"`
	Count int64  `json:"count"`
}
