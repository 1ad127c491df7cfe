package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docoutline/internal/markup"
	"github.com/dgallion1/docoutline/internal/outline"
)

// Worker builds the outline for a single job.
type Worker struct {
	builder *outline.Builder
	log     *slog.Logger
}

func NewWorker(builder *outline.Builder, log *slog.Logger) *Worker {
	return &Worker{builder: builder, log: log}
}

// Process parses the job's outline file and builds its chapters.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusBuilding, "building")
	o, err := markup.Build(ctx, w.builder, job.Filename, job.Source())
	if o == nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	var issues outline.Errors
	if err != nil && !errors.As(err, &issues) {
		log.Error("build failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "building")
		return
	}
	for _, msg := range issues.Messages() {
		job.AddError(msg)
	}
	job.SetResult(o)

	stats := o.Stats()
	log.Info("outline built", "chapters", stats.Chapters, "drafts", stats.Drafts, "issues", len(issues))

	if len(issues) > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}
