package models

import "time"

// Notification is an in-app message addressed either to a single user
// (RecipientEmail) or to everyone holding a role (RecipientRole).
type Notification struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	ReportID       string     `json:"reportId,omitempty"`
	RecipientEmail string     `json:"recipientEmail,omitempty"`
	RecipientRole  Role       `json:"recipientRole,omitempty"`
	Read           bool       `json:"read"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NotificationFilter selects notifications for an inbox. A notification
// matches when it is addressed to the email or to the role; the two
// predicates are OR-ed, mirroring how the inbox is assembled for a logged-in
// user who has both an email and a role.
type NotificationFilter struct {
	RecipientEmail string `json:"recipientEmail,omitempty"`
	RecipientRole  Role   `json:"recipientRole,omitempty"`
}

// Matches reports whether the notification belongs to the inbox described
// by the filter.
func (f NotificationFilter) Matches(n Notification) bool {
	if f.RecipientEmail == "" && f.RecipientRole == "" {
		return true
	}
	if f.RecipientEmail != "" && n.RecipientEmail == f.RecipientEmail {
		return true
	}
	if f.RecipientRole != "" && n.RecipientRole == f.RecipientRole {
		return true
	}
	return false
}
