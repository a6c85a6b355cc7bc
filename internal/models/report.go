package models

// Report cache placeholders
const (
	ReportPending   = "Waiting for AI to finish analysis..."
	ReportCompiling = "Wander AI is compiling your report..."
	ReportScanning  = "Scanning ticket with Gemini AI..."
)

// TicketUpload is the body of a ticket photo submission.
type TicketUpload struct {
	Ticket string `json:"ticket" form:"ticket"`
	Email  string `json:"email" form:"email"`
}

// CallbackPayload is the body the workflow posts when it pushes a finished report.
type CallbackPayload struct {
	Report string `json:"report" form:"report"`
	Email  string `json:"email" form:"email"`
}
