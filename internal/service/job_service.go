package service

import (
	"fmt"
	"log"
	"time"
)

// Expired notes stay queryable for a week before they are purged.
const expiredNoteGracePeriod = 7 * 24 * time.Hour

type NoteJobRepository interface {
	GetNoteIDsExpiredBefore(cutoff time.Time) ([]int, error)
	DeleteNotes(ids []int) (int64, error)
}

type JobService struct {
	Repo NoteJobRepository
}

func NewJobService(repo NoteJobRepository) *JobService {
	return &JobService{Repo: repo}
}

// PurgeExpiredNotes deletes supporter notes that expired more than the grace period before now.
func (s *JobService) PurgeExpiredNotes(now time.Time) (int64, error) {
	log.Println("Cron Job: Checking for expired supporter notes...")

	cutoff := now.Add(-expiredNoteGracePeriod)
	ids, err := s.Repo.GetNoteIDsExpiredBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to get expired notes: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No expired supporter notes to purge.")
		return 0, nil
	}

	log.Printf("Cron Job: Found %d expired supporter notes. IDs: %v", len(ids), ids)

	deleted, err := s.Repo.DeleteNotes(ids)
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to delete expired notes: %w", err)
	}

	log.Printf("Cron Job: Purged %d expired supporter notes.", deleted)
	return deleted, nil
}
