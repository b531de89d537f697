package tasks

import (
	"context"
	"time"

	"github.com/edenlabs/edenbot/internal/content"
)

// newDescriptionBackfillTask creates the task that recomputes missing
// derived descriptions. The description is a pure function of the stored
// project fields, so a write lost between project creation and the derived
// update is recoverable here.
func newDescriptionBackfillTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "description_backfill")

	return func(ctx context.Context) error {
		startTime := time.Now()

		projects, err := deps.Store.ListProjectsMissingDescription(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list projects missing description", "error", err)
			return err
		}
		if len(projects) == 0 {
			return nil
		}

		var filled int
		for _, project := range projects {
			derived := content.PumpFunDescription(project.Description, project.Website.String, project.Twitter.String)
			if err := deps.Store.UpdateProjectPumpFunDescription(ctx, project.ID, derived); err != nil {
				log.WarnContext(ctx, "Failed to backfill description", "error", err, "project_id", project.ID)
				continue
			}
			filled++
		}

		log.InfoContext(ctx, "Description backfill completed",
			"candidates", len(projects), "filled", filled, "duration", time.Since(startTime))
		return nil
	}
}
