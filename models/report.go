package models

import "time"

// ReportStatus is the workflow state of a civic issue report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusApproved   ReportStatus = "approved"
	StatusRejected   ReportStatus = "rejected"
	StatusAssigned   ReportStatus = "assigned"
	StatusInProgress ReportStatus = "in-progress"
	StatusCompleted  ReportStatus = "completed"
)

// Issue categories citizens can report.
const (
	TypePothole     = "pothole"
	TypeStreetlight = "streetlight"
	TypeGarbage     = "garbage"
	TypeGraffiti    = "graffiti"
	TypeWaterLeak   = "water-leak"
	TypeOther       = "other"
)

// Complaint sub-workflow states, advanced via emailed deep links.
const (
	ComplaintProcessing = "processing"
	ComplaintCompleted  = "completed"
)

// Coords is an optional latitude/longitude pair attached to a report.
type Coords struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// AIValidation is the result blob returned by the external image
// classification service for a submitted photo.
type AIValidation struct {
	IsValid     bool     `json:"isValid"`
	Confidence  float64  `json:"confidence"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	IssueType   string   `json:"issueType,omitempty"`
}

// Report is a citizen-submitted civic issue record.
//
// Timestamps are always UTC instants regardless of which backend produced
// them: the remote store stamps rows with the database clock, the local store
// with the client clock, and both expose time.Time at the store boundary.
type Report struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Coords      *Coords `json:"coords,omitempty"`
	Type        string  `json:"type"`

	// Image is either a durable URL returned by the blob store or a
	// data URI produced by the local fallback encoder.
	Image string `json:"image,omitempty"`

	Status    ReportStatus `json:"status"`
	UserEmail string       `json:"userEmail"`

	AssignedWorkerID string `json:"assignedWorkerId,omitempty"`
	AssignedWorker   string `json:"assignedWorker,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	ComplaintSent            bool       `json:"complaintSent,omitempty"`
	ComplaintStatus          string     `json:"complaintStatus,omitempty"`
	ComplaintSentAt          *time.Time `json:"complaintSentAt,omitempty"`
	ComplaintStatusUpdatedAt *time.Time `json:"complaintStatusUpdatedAt,omitempty"`

	AIValidation *AIValidation `json:"aiValidation,omitempty"`
}

// ReportFilter is a sparse set of equality predicates. Empty fields match
// everything.
type ReportFilter struct {
	Status           ReportStatus `json:"status,omitempty"`
	Type             string       `json:"type,omitempty"`
	UserEmail        string       `json:"userEmail,omitempty"`
	AssignedWorkerID string       `json:"assignedWorkerId,omitempty"`
}

// Matches reports whether the report satisfies every supplied predicate.
func (f ReportFilter) Matches(r Report) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.UserEmail != "" && r.UserEmail != f.UserEmail {
		return false
	}
	if f.AssignedWorkerID != "" && r.AssignedWorkerID != f.AssignedWorkerID {
		return false
	}
	return true
}

// ReportPatch is a shallow update applied to an existing report. Nil fields
// are left untouched; UpdatedAt is stamped by the store, never by callers.
type ReportPatch struct {
	Title            *string       `json:"title,omitempty"`
	Description      *string       `json:"description,omitempty"`
	Location         *string       `json:"location,omitempty"`
	Coords           *Coords       `json:"coords,omitempty"`
	Type             *string       `json:"type,omitempty"`
	Image            *string       `json:"image,omitempty"`
	Status           *ReportStatus `json:"status,omitempty"`
	AssignedWorkerID *string       `json:"assignedWorkerId,omitempty"`
	AssignedWorker   *string       `json:"assignedWorker,omitempty"`
	StartedAt        *time.Time    `json:"startedAt,omitempty"`
	CompletedAt      *time.Time    `json:"completedAt,omitempty"`

	ComplaintSent            *bool      `json:"complaintSent,omitempty"`
	ComplaintStatus          *string    `json:"complaintStatus,omitempty"`
	ComplaintSentAt          *time.Time `json:"complaintSentAt,omitempty"`
	ComplaintStatusUpdatedAt *time.Time `json:"complaintStatusUpdatedAt,omitempty"`

	AIValidation *AIValidation `json:"aiValidation,omitempty"`
}

// Apply merges the patch into r, field by field.
func (p ReportPatch) Apply(r *Report) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Coords != nil {
		c := *p.Coords
		r.Coords = &c
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.AssignedWorkerID != nil {
		r.AssignedWorkerID = *p.AssignedWorkerID
	}
	if p.AssignedWorker != nil {
		r.AssignedWorker = *p.AssignedWorker
	}
	if p.StartedAt != nil {
		t := *p.StartedAt
		r.StartedAt = &t
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		r.CompletedAt = &t
	}
	if p.ComplaintSent != nil {
		r.ComplaintSent = *p.ComplaintSent
	}
	if p.ComplaintStatus != nil {
		r.ComplaintStatus = *p.ComplaintStatus
	}
	if p.ComplaintSentAt != nil {
		t := *p.ComplaintSentAt
		r.ComplaintSentAt = &t
	}
	if p.ComplaintStatusUpdatedAt != nil {
		t := *p.ComplaintStatusUpdatedAt
		r.ComplaintStatusUpdatedAt = &t
	}
	if p.AIValidation != nil {
		v := *p.AIValidation
		r.AIValidation = &v
	}
}

// IsZero reports whether the patch carries no changes.
func (p ReportPatch) IsZero() bool {
	return p == ReportPatch{}
}
