package domain

// Message represents one contact inquiry about a profile. Messages are
// written once by the contact flow and never updated; deleting the
// referenced profile only nulls profile_id.
type Message struct {
	ID            int    `json:"id" db:"id"`
	SenderName    string `json:"sender_name" db:"sender_name"`
	SenderPhone   string `json:"sender_phone" db:"sender_phone"`
	SenderEmail   string `json:"sender_email" db:"sender_email"`
	SenderJob     string `json:"sender_job" db:"sender_job"`
	SenderAge     int    `json:"sender_age" db:"sender_age"`
	SenderCity    string `json:"sender_city" db:"sender_city"`
	SenderMessage string `json:"sender_message" db:"sender_message"`
	ProfileID     *int   `json:"profile_id" db:"profile_id"`
	CreatedAt     string `json:"created_at" db:"created_at"`
}
