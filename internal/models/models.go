// Package models defines the records persisted by the credential store and
// the activity log, and the quote snapshot they embed.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CredentialRecord is the stored identity/password/recovery tuple for one
// account. Identifier is unique and compared case-sensitively.
type CredentialRecord struct {
	Identifier       string
	PasswordHash     string
	SecurityQuestion string
	// SecurityAnswer is stored and compared verbatim.
	SecurityAnswer string
}

// Quote is a point-in-time price snapshot for one ticker.
type Quote struct {
	Symbol        string
	CurrentPrice  decimal.Decimal
	OpenPrice     decimal.Decimal
	HighPrice     decimal.Decimal
	LowPrice      decimal.Decimal
	PreviousClose decimal.Decimal
	Volume        int64
}

// ActivityRecord is one logged authenticated action. Records are append-only.
type ActivityRecord struct {
	Identifier  string
	Timestamp   time.Time
	SubjectName string
	Quote       Quote
}

// Layouts of the date and time columns of the activity log.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Date returns the record's local date as YYYY-MM-DD.
func (r *ActivityRecord) Date() string {
	return r.Timestamp.Format(DateLayout)
}

// Time returns the record's local wall-clock time as HH:MM:SS.
func (r *ActivityRecord) Time() string {
	return r.Timestamp.Format(TimeLayout)
}

// ParseTimestamp rebuilds a local timestamp from the stored date and time columns.
func ParseTimestamp(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.Local)
}
