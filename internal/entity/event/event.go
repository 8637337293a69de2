// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package event implements the Event entity materializer: a live event
(festival, concert, tour date) with alternative names.
*/
package event

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

// Payload is the proposed state of an event.
type Payload struct {
	Name                string
	ShortDescription    *string
	Description         *string
	StartDate           Date
	EndDate             Date
	AlternativeNames    []string
}

// # Field Identifiers

const (
	FieldName = "name"
)
