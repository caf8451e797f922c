package domain

// MailTask outbound mail request published to the mail topic
type MailTask struct {
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	To      []string `json:"to_email"`
}
