package domain

// ContactMessage is one contact-form submission.
// Only Read may change after creation.
type ContactMessage struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Read      bool    `json:"read"`
}

func (m ContactMessage) clone() ContactMessage {
	if m.Phone != nil {
		p := *m.Phone
		m.Phone = &p
	}
	return m
}

// Subscription is one newsletter signup. Email is unique across the collection.
type Subscription struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}
