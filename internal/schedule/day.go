package schedule

// DayRecord is one calendar day's unprocessed markup as fetched from the
// portal, plus its weekend/holiday flags. Records are immutable once built;
// dates are unique within a collection.
type DayRecord struct {
	Date    Date   `json:"date"`
	Markup  string `json:"markup"`
	Weekend bool   `json:"weekend"`
	Holiday bool   `json:"holiday"`
}

// Line is one atomic content line derived from a DayRecord. Markup carries
// the originating day's raw markup for traceability; the flags are copied
// from the source day unchanged.
type Line struct {
	Date    Date
	Text    string
	Weekend bool
	Holiday bool
	Markup  string
}

// NewLine derives a line of text from a day record.
func NewLine(day DayRecord, text string) Line {
	return Line{
		Date:    day.Date,
		Text:    text,
		Weekend: day.Weekend,
		Holiday: day.Holiday,
		Markup:  day.Markup,
	}
}
