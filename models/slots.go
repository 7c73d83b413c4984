package models

// AvailableSlot is a candidate bookable start time of fixed duration
// within a provider's working day. Start and End are minutes from
// midnight on Date, the same convention OperatingHours uses.
type AvailableSlot struct {
	Date  string `json:"date"`  // "2006-01-02"
	Start int    `json:"start"` // minutes from midnight
	End   int    `json:"end"`   // Start + requested duration
}
