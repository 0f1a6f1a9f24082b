package inventory

// RawCounts is the wire shape of a row's counters. Every field may arrive as
// a JSON number, a numeric string ("3,000", "2.7", ""), or be absent. Legacy
// report exports nest the seven other-use counters under an "other_use"
// object; when both shapes are present the nested value wins.
type RawCounts struct {
	InUseByEmployees   any          `json:"in_use_by_employees"`
	Training           any          `json:"training"`
	ConferenceRoom     any          `json:"conference_room"`
	GSMOffice          any          `json:"gsm_office"`
	ProspectingStation any          `json:"prospecting_station"`
	ApplicantStation   any          `json:"applicant_station"`
	VisitorStation     any          `json:"visitor_station"`
	Other              any          `json:"other"`
	SparesOnFloor      any          `json:"spares_on_floor"`
	SparesInStorage    any          `json:"spares_in_storage"`
	Broken             any          `json:"broken"`
	OtherUse           *RawOtherUse `json:"other_use,omitempty"`
}

// RawOtherUse is the legacy nested shape for the other-use counters.
type RawOtherUse struct {
	Training           any `json:"training"`
	ConferenceRoom     any `json:"conference_room"`
	GSMOffice          any `json:"gsm_office"`
	ProspectingStation any `json:"prospecting_station"`
	ApplicantStation   any `json:"applicant_station"`
	VisitorStation     any `json:"visitor_station"`
	Other              any `json:"other"`
}

// Normalize maps any accepted input shape into the canonical Counts record,
// sanitizing each field independently. The calculators never see raw input.
func Normalize(raw RawCounts) Counts {
	counts := Counts{
		InUseByEmployees:   Sanitize(raw.InUseByEmployees),
		Training:           Sanitize(raw.Training),
		ConferenceRoom:     Sanitize(raw.ConferenceRoom),
		GSMOffice:          Sanitize(raw.GSMOffice),
		ProspectingStation: Sanitize(raw.ProspectingStation),
		ApplicantStation:   Sanitize(raw.ApplicantStation),
		VisitorStation:     Sanitize(raw.VisitorStation),
		Other:              Sanitize(raw.Other),
		SparesOnFloor:      Sanitize(raw.SparesOnFloor),
		SparesInStorage:    Sanitize(raw.SparesInStorage),
		Broken:             Sanitize(raw.Broken),
	}

	if nested := raw.OtherUse; nested != nil {
		counts.Training = Sanitize(coalesce(nested.Training, raw.Training))
		counts.ConferenceRoom = Sanitize(coalesce(nested.ConferenceRoom, raw.ConferenceRoom))
		counts.GSMOffice = Sanitize(coalesce(nested.GSMOffice, raw.GSMOffice))
		counts.ProspectingStation = Sanitize(coalesce(nested.ProspectingStation, raw.ProspectingStation))
		counts.ApplicantStation = Sanitize(coalesce(nested.ApplicantStation, raw.ApplicantStation))
		counts.VisitorStation = Sanitize(coalesce(nested.VisitorStation, raw.VisitorStation))
		counts.Other = Sanitize(coalesce(nested.Other, raw.Other))
	}

	return counts
}

func coalesce(preferred, fallback any) any {
	if preferred != nil {
		return preferred
	}
	return fallback
}
