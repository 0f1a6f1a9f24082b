package inventory

// Counts is the canonical shape of one inventory row's eleven counters. Use
// Normalize to build it from untrusted input; the calculators below assume
// the shape but still refuse to let a negative value reach a sum.
type Counts struct {
	InUseByEmployees   int `json:"in_use_by_employees"`
	Training           int `json:"training"`
	ConferenceRoom     int `json:"conference_room"`
	GSMOffice          int `json:"gsm_office"`
	ProspectingStation int `json:"prospecting_station"`
	ApplicantStation   int `json:"applicant_station"`
	VisitorStation     int `json:"visitor_station"`
	Other              int `json:"other"`
	SparesOnFloor      int `json:"spares_on_floor"`
	SparesInStorage    int `json:"spares_in_storage"`
	Broken             int `json:"broken"`
}

// RowTotals is the derived triple for one row. Never stored; always recomputed.
type RowTotals struct {
	TotalOtherUse int `json:"total_other_use"`
	SparesAuto    int `json:"spares_auto"`
	RowTotal      int `json:"row_total"`
}

// Summary aggregates every row of a report.
type Summary struct {
	TotalInUse    int `json:"total_in_use"`
	TotalOtherUse int `json:"total_other_use"`
	TotalSpares   int `json:"total_spares"`
	TotalBroken   int `json:"total_broken"`
	GrandTotal    int `json:"grand_total"`
}

// Totals computes the derived values for a single row. Pure: identical input
// yields identical output, and the receiver is never mutated.
func Totals(c Counts) RowTotals {
	totalOtherUse := nonNegative(c.Training) +
		nonNegative(c.ConferenceRoom) +
		nonNegative(c.GSMOffice) +
		nonNegative(c.ProspectingStation) +
		nonNegative(c.ApplicantStation) +
		nonNegative(c.VisitorStation) +
		nonNegative(c.Other)

	sparesAuto := nonNegative(c.SparesOnFloor) + nonNegative(c.SparesInStorage)

	return RowTotals{
		TotalOtherUse: totalOtherUse,
		SparesAuto:    sparesAuto,
		RowTotal:      nonNegative(c.InUseByEmployees) + totalOtherUse + sparesAuto + nonNegative(c.Broken),
	}
}

// Summarize folds a row collection into the report summary. An empty
// collection yields the zero Summary, and the result is invariant under row
// reordering.
func Summarize(rows []Counts) Summary {
	var summary Summary
	for _, row := range rows {
		totals := Totals(row)
		summary.TotalInUse += nonNegative(row.InUseByEmployees)
		summary.TotalOtherUse += totals.TotalOtherUse
		summary.TotalSpares += totals.SparesAuto
		summary.TotalBroken += nonNegative(row.Broken)
		summary.GrandTotal += totals.RowTotal
	}
	return summary
}
