package state

import (
	"context"
	"time"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	AddLearned(ctx context.Context, item LearnedWord) (bool, error)
	IsLearned(ctx context.Context, front, regionKey string) (bool, error)
	LearnedCountByRegion(ctx context.Context) (map[string]int, error)
	TotalXP(ctx context.Context) (int, error)
	StartStudyRun(ctx context.Context, run StudyRun) (int64, error)
	IncrementCardsSeen(ctx context.Context, runID int64) error
	GetSummary(ctx context.Context) (Summary, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	ClearSettings(ctx context.Context) error
	SetPref(ctx context.Context, key, value string) error
	GetPref(ctx context.Context, key string) (string, error)
	Close() error
}

type LearnedWord struct {
	Front     string
	Back      string
	RegionKey string
	Points    int
	LearnedTS time.Time
}

type StudyRun struct {
	SessionID string
	RegionKey string
	Mode      string
	StartTS   time.Time
}

type Summary struct {
	StudyRuns    int
	CardsSeen    int
	LearnedWords int
	TotalXP      int
}
