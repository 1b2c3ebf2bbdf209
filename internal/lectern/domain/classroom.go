package domain

import "time"

type Classroom struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// ClassroomMember links a student to a classroom. An inactive membership
// means the student has been blocked. Approved is false for rows created by
// blocking a student who was never admitted.
type ClassroomMember struct {
	ClassroomID string
	StudentID   string
	Active      bool
	Approved    bool
	JoinedAt    time.Time
	UpdatedAt   time.Time

	// Populated by listing queries.
	StudentEmail string
	StudentName  string
}

type JoinRequest struct {
	ID          string
	ClassroomID string
	StudentID   string
	CreatedAt   time.Time

	StudentEmail string
	StudentName  string
}
