package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/cwbudde/mosaicforge/internal/mosaic"
	"github.com/google/uuid"
)

// JobState represents the current state of a job
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateCancelled JobState = "cancelled"
)

// Job represents one mosaic generation tracked by the server. The finished
// PNG is kept out of the JSON representation and served through the image
// and result endpoints instead.
type Job struct {
	ID         string         `json:"id"`
	State      JobState       `json:"state"`
	Request    mosaic.Request `json:"request"`
	CellsDone  int            `json:"cellsDone"`
	TotalCells int            `json:"totalCells"`
	Cols       int            `json:"cols,omitempty"`
	Rows       int            `json:"rows,omitempty"`
	TileCount  int            `json:"tileCount,omitempty"`
	StartTime  time.Time      `json:"startTime"`
	EndTime    *time.Time     `json:"endTime,omitempty"`
	Error      string         `json:"error,omitempty"`

	png []byte
}

// PNG returns the finished mosaic bytes, nil until the job completes.
func (j *Job) PNG() []byte {
	return j.png
}

// SetPNG stores the finished mosaic bytes. Only the worker calls this,
// under the manager's lock via UpdateJob.
func (j *Job) SetPNG(data []byte) {
	j.png = data
}

// JobManager manages the lifecycle of jobs
type JobManager struct {
	mu          sync.RWMutex
	jobs        map[string]*Job
	broadcaster *EventBroadcaster
}

// NewJobManager creates a new JobManager
func NewJobManager() *JobManager {
	return &JobManager{
		jobs:        make(map[string]*Job),
		broadcaster: NewEventBroadcaster(),
	}
}

// CreateJob creates a new job for the given request
func (jm *JobManager) CreateJob(req mosaic.Request) *Job {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job := &Job{
		ID:        uuid.New().String(),
		State:     StatePending,
		Request:   req,
		StartTime: time.Now(),
	}

	jm.jobs[job.ID] = job
	return job
}

// GetJob retrieves a job by ID
func (jm *JobManager) GetJob(id string) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	job, exists := jm.jobs[id]
	return job, exists
}

// ListJobs returns all jobs
func (jm *JobManager) ListJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jobs := make([]*Job, 0, len(jm.jobs))
	for _, job := range jm.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// UpdateJob atomically updates a job using the provided function
func (jm *JobManager) UpdateJob(id string, updateFn func(*Job)) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job, exists := jm.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	updateFn(job)
	return nil
}

// GetRunningJobs returns all jobs currently in the running state
func (jm *JobManager) GetRunningJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	runningJobs := make([]*Job, 0)
	for _, job := range jm.jobs {
		if job.State == StateRunning {
			runningJobs = append(runningJobs, job)
		}
	}
	return runningJobs
}
