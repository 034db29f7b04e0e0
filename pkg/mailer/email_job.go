package mailer

// EmailJob is the optional email leg of a notification fan-out job.
// Delivery is best effort; the worker logs and drops failures.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
