package models

// Column layout of one project row in the backing sheet (Sheet1!A:M).
const (
	ColProjectID = iota
	ColIndustry
	ColDuration
	ColTitle
	ColPI
	ColCoPI
	ColYear
	ColSanctioned
	ColReceived
	ColBillProof
	ColAgreementDoc
	ColStudents
	ColSummary

	ProjectColumnCount
)

// SheetFieldKeys maps the sheet's header names to the JSON field names
// served by the API. Unknown headers pass through unchanged.
var SheetFieldKeys = map[string]string{
	"projectID":    "projectId",
	"industry":     "industry",
	"duration":     "duration",
	"title":        "title",
	"pi":           "pi",
	"copi":         "copi",
	"year":         "academicYear",
	"sanctioned":   "sanctionedAmount",
	"received":     "receivedAmount",
	"billProof":    "billProofLink",
	"agreementDoc": "agreementDocumentLink",
	"students":     "studentParticipants",
	"summary":      "summary",
}
