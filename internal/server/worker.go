package server

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cwbudde/mosaicforge/internal/mosaic"
	"github.com/cwbudde/mosaicforge/internal/store"
)

// runJob executes a mosaic generation in the background. If resultStore is
// not nil, the finished mosaic is persisted once the job completes.
func runJob(ctx context.Context, jm *JobManager, engine *mosaic.Engine, resultStore store.Store, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return &store.NotFoundError{ID: jobID}
	}

	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID, "target", job.Request.TargetImagePath)

	// Selection runs per cell in the engine; the counters are read by the
	// progress monitor without touching the manager's lock on the hot path.
	var cellsDone, totalCells atomic.Int64
	progress := func(done, total int) {
		cellsDone.Store(int64(done))
		totalCells.Store(int64(total))
	}

	start := time.Now()
	monitorDone := make(chan struct{})
	go monitorProgress(ctx, jm, jobID, start, &cellsDone, &totalCells, monitorDone)

	result, genErr := engine.Generate(ctx, job.Request, progress)
	close(monitorDone)
	elapsed := time.Since(start)

	if genErr != nil {
		if ctx.Err() != nil {
			markJobCancelled(jm, jobID)
			return ctx.Err()
		}
		markJobFailed(jm, jobID, genErr)
		return genErr
	}

	png, err := mosaic.EncodePNG(result.Image)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.CellsDone = result.Cells
		j.TotalCells = result.Cells
		j.Cols = result.Cols
		j.Rows = result.Rows
		j.TileCount = result.TileCount
		j.EndTime = &endTime
		j.SetPNG(png)
	})
	if err != nil {
		return err
	}

	cps := float64(result.Cells) / elapsed.Seconds()
	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"cells", result.Cells,
		"resampled", result.Resampled,
		"cells_per_second", cps,
	)

	if resultStore != nil {
		if err := persistResult(resultStore, job, result, png); err != nil {
			// Persistence is best-effort; the in-memory result still serves.
			slog.Warn("Failed to persist result", "job_id", jobID, "error", err)
		}
	}

	// Broadcast final completion event
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:      jobID,
		State:      StateCompleted,
		CellsDone:  result.Cells,
		TotalCells: result.Cells,
		CellsPerS:  cps,
		Timestamp:  time.Now(),
	})

	return nil
}

// monitorProgress periodically publishes selection progress while the
// generation runs. Updates are throttled to two per second.
func monitorProgress(ctx context.Context, jm *JobManager, jobID string, startTime time.Time, cellsDone, totalCells *atomic.Int64, done chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, exists := jm.GetJob(jobID)
			if !exists {
				return
			}

			doneCells := int(cellsDone.Load())
			total := int(totalCells.Load())

			elapsed := time.Since(startTime).Seconds()
			var cps float64
			if elapsed > 0 {
				cps = float64(doneCells) / elapsed
			}

			jm.UpdateJob(jobID, func(j *Job) {
				j.CellsDone = doneCells
				j.TotalCells = total
			})

			jm.broadcaster.Broadcast(ProgressEvent{
				JobID:      jobID,
				State:      job.State,
				CellsDone:  doneCells,
				TotalCells: total,
				CellsPerS:  cps,
				Timestamp:  time.Now(),
			})
		}
	}
}

// persistResult saves the finished mosaic through the result store.
func persistResult(resultStore store.Store, job *Job, result *mosaic.Result, png []byte) error {
	rec := &store.Record{
		ID:              job.ID,
		TargetImagePath: job.Request.TargetImagePath,
		TileDirectory:   job.Request.TileDirectory,
		TileSize:        job.Request.TileSize,
		PenaltyFactor:   job.Request.PenaltyFactor,
		SigmaDivisor:    job.Request.SigmaDivisor,
		Cols:            result.Cols,
		Rows:            result.Rows,
		Cells:           result.Cells,
		TileCount:       result.TileCount,
		ElapsedSeconds:  result.Elapsed.Seconds(),
		CreatedAt:       time.Now(),
	}
	return resultStore.SaveResult(rec, png)
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
