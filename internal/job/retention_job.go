package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"option-set-api/internal/repository"
	"option-set-api/internal/service"
)

// RetentionJob purges archive records past the retention window. Each
// record is exported to cold storage before removal; an export failure
// leaves that record in place for the next run.
type RetentionJob struct {
	archiveRepo   repository.ArchiveRepository
	exporter      service.ArchiveExporter
	retentionDays int
	logger        *zap.Logger
}

// NewRetentionJob creates a new RetentionJob instance
func NewRetentionJob(
	archiveRepo repository.ArchiveRepository,
	exporter service.ArchiveExporter,
	retentionDays int,
	logger *zap.Logger,
) *RetentionJob {
	return &RetentionJob{
		archiveRepo:   archiveRepo,
		exporter:      exporter,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run executes the retention job
func (j *RetentionJob) Run() {
	if j.retentionDays <= 0 {
		return
	}

	ctx := context.Background()
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	j.logger.Info("Starting archive retention job",
		zap.Time("cutoff", cutoff),
		zap.Int("retention_days", j.retentionDays),
	)

	expired, err := j.archiveRepo.FindDeletedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to find expired archives", zap.Error(err))
		return
	}

	if len(expired) == 0 {
		j.logger.Info("No expired archives found")
		return
	}

	successCount := 0
	failCount := 0

	for _, archived := range expired {
		if j.exporter != nil {
			if err := j.exporter.ExportArchive(ctx, archived); err != nil {
				j.logger.Error("Failed to export archive, keeping record",
					zap.String("archive_id", archived.ID.String()),
					zap.Error(err),
				)
				failCount++
				continue
			}
		}

		if err := j.archiveRepo.Delete(ctx, archived.ID); err != nil {
			j.logger.Error("Failed to delete expired archive",
				zap.String("archive_id", archived.ID.String()),
				zap.Error(err),
			)
			failCount++
			continue
		}

		successCount++
		j.logger.Debug("Purged expired archive",
			zap.String("archive_id", archived.ID.String()),
			zap.String("name", archived.Name),
		)
	}

	j.logger.Info("Archive retention job completed",
		zap.Int("total_expired", len(expired)),
		zap.Int("purged", successCount),
		zap.Int("failed", failCount),
	)
}
