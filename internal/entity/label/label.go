// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package label implements the Label entity materializer: a record label
or publisher, with founding artists and localized names.
*/
package label

import "time"

// DatePrecision is the granularity at which a partial date is known.
type DatePrecision string

const (
	PrecisionDay   DatePrecision = "day"
	PrecisionMonth DatePrecision = "month"
	PrecisionYear  DatePrecision = "year"
)

// Date is a value/precision pair; both must be set or unset together.
type Date struct {
	Value     *time.Time
	Precision *DatePrecision
}

// LocalizedName is a name in one language other than the primary Name.
type LocalizedName struct {
	LanguageID int
	Name       string
}

// Payload is the proposed state of a label.
type Payload struct {
	Name           string
	FoundedDate    Date
	DissolvedDate  Date
	FounderIDs     []string
	LocalizedNames []LocalizedName
}

// # Field Identifiers

const (
	FieldName = "name"
)
