package domain

import "time"

// ApplicationRecord is one job-application entry: one data row of the sheet.
// Field order matches the sheet's column order.
type ApplicationRecord struct {
	Candidate      string `json:"candidate"`
	Company        string `json:"company"`
	JobTitle       string `json:"jobTitle"`
	WhoApplied     string `json:"whoApplied"`
	JDLink         string `json:"jdLink"`
	JobDescription string `json:"jobDescription"`
	DateApplied    string `json:"dateApplied"` // ISO 8601, YYYY-MM-DD
	ResumeSummary  string `json:"resumeSummary"`
	Status         string `json:"status"`
}

// DefaultStatus is used when a record is saved without a status, and when a
// stored row has an empty status cell.
const DefaultStatus = "Applied"

// DateLayout is the stored form of dateApplied.
const DateLayout = "2006-01-02"

// Header is the fixed first row of the backing table.
var Header = []string{
	"Candidate",
	"Company",
	"Job Title",
	"Who Applied",
	"JD Link",
	"Job Description",
	"Date Applied",
	"Resume Summary",
	"Status",
}

// Column indexes into a sheet row, in header order.
const (
	ColCandidate = iota
	ColCompany
	ColJobTitle
	ColWhoApplied
	ColJDLink
	ColJobDescription
	ColDateApplied
	ColResumeSummary
	ColStatus
)

// WithDefaults fills the fields that default at save time: dateApplied
// becomes the current date and an empty status becomes DefaultStatus.
// Explicit values are kept as-is.
func (r ApplicationRecord) WithDefaults(now time.Time) ApplicationRecord {
	if r.DateApplied == "" {
		r.DateApplied = now.Format(DateLayout)
	}
	if r.Status == "" {
		r.Status = DefaultStatus
	}
	return r
}

// Row flattens the record into a sheet row in header order.
func (r ApplicationRecord) Row() []string {
	return []string{
		r.Candidate,
		r.Company,
		r.JobTitle,
		r.WhoApplied,
		r.JDLink,
		r.JobDescription,
		r.DateApplied,
		r.ResumeSummary,
		r.Status,
	}
}

// RecordFromRow builds a record from a sheet row. Rows shorter than the
// header are tolerated; missing cells read as empty strings.
func RecordFromRow(row []string) ApplicationRecord {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return ApplicationRecord{
		Candidate:      cell(ColCandidate),
		Company:        cell(ColCompany),
		JobTitle:       cell(ColJobTitle),
		WhoApplied:     cell(ColWhoApplied),
		JDLink:         cell(ColJDLink),
		JobDescription: cell(ColJobDescription),
		DateApplied:    cell(ColDateApplied),
		ResumeSummary:  cell(ColResumeSummary),
		Status:         cell(ColStatus),
	}
}
