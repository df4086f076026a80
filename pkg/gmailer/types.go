package gmailer

// SendRequest is the input for sending a notification email.
type SendRequest struct {
	To      string
	Subject string
	Body    string
}
