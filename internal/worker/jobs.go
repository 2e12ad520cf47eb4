package worker

import (
	"context"
	"fmt"

	"github.com/vytor/mathsprint/internal/logger"
	"github.com/vytor/mathsprint/internal/models"
	"github.com/vytor/mathsprint/internal/repository"
)

// ArchiveRunJob writes one finished run to the run archive.
type ArchiveRunJob struct {
	Runs   repository.RunRepository
	Record models.RunRecord
}

func (j *ArchiveRunJob) Name() string { return "archive_run" }

func (j *ArchiveRunJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"game": j.Record.GameID,
		"mode": string(j.Record.Mode),
	})

	id, err := j.Runs.Insert(ctx, j.Record)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	log.Info("run archived: id=%d, score=%d, reason=%s", id, j.Record.Score, j.Record.EndReason)
	return nil
}
