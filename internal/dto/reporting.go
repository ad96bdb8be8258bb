package dto

import "time"

// AsOfParams is the query of point-in-time reports.
type AsOfParams struct {
	AsOf *time.Time `form:"as_of" time_format:"2006-01-02" time_utc:"1"` // defaults to today
}

// DateRangeParams is the query of activity reports. Both bounds are inclusive.
type DateRangeParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}

// AccountLedgerParams is the query of the account ledger report.
type AccountLedgerParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"` // defaults to today
}
