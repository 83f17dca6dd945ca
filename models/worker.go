package models

// WorkerStatus is the availability state of a municipal field worker.
type WorkerStatus string

const (
	WorkerAvailable WorkerStatus = "available"
	WorkerBusy      WorkerStatus = "busy"
)

// Worker is an entry in the municipal worker roster shown to administrators
// when assigning reports.
type Worker struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Status        WorkerStatus `json:"status"`
	AssignedTasks int          `json:"assignedTasks"`
}
