package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/papergen/papergen-backend/internal/config"
	"github.com/papergen/papergen-backend/internal/model"
	"github.com/papergen/papergen-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrDuplicateName is returned when a taxonomy name collides within its parent.
var ErrDuplicateName = errors.New("name already exists")

const curriculumCacheTTL = 10 * time.Minute

// CurriculumService manages the board/subject/chapter taxonomy with a
// read-through Redis cache. Cache failures degrade to database reads.
type CurriculumService struct {
	repo *repository.CurriculumRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewCurriculumService creates a new CurriculumService.
func NewCurriculumService(repo *repository.CurriculumRepository, rdb *redis.Client, log zerolog.Logger) *CurriculumService {
	return &CurriculumService{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "curriculum_service").Logger(),
	}
}

// ListBoards returns all boards, served from cache when possible.
func (s *CurriculumService) ListBoards(ctx context.Context) ([]model.Board, error) {
	key := config.CacheKey.BoardsKey()
	var boards []model.Board
	if s.cacheGet(ctx, key, &boards) {
		return boards, nil
	}

	boards, err := s.repo.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	s.cacheSet(ctx, key, boards)
	return boards, nil
}

// CreateBoard creates a board and invalidates the board list cache.
func (s *CurriculumService) CreateBoard(ctx context.Context, b *model.Board) error {
	exists, err := s.repo.BoardExists(ctx, b.Name)
	if err != nil {
		return fmt.Errorf("check board: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}
	if err := s.repo.CreateBoard(ctx, b); err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	s.cacheDel(ctx, config.CacheKey.BoardsKey())
	return nil
}

// ListSubjects returns a board's subjects, served from cache when possible.
func (s *CurriculumService) ListSubjects(ctx context.Context, boardID int) ([]model.Subject, error) {
	key := config.CacheKey.SubjectsKey(boardID)
	var subjects []model.Subject
	if s.cacheGet(ctx, key, &subjects) {
		return subjects, nil
	}

	subjects, err := s.repo.ListSubjects(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	s.cacheSet(ctx, key, subjects)
	return subjects, nil
}

// CreateSubject creates a subject and invalidates the board's subject cache.
func (s *CurriculumService) CreateSubject(ctx context.Context, sub *model.Subject) error {
	exists, err := s.repo.SubjectExists(ctx, sub.Name, sub.BoardID)
	if err != nil {
		return fmt.Errorf("check subject: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}
	if err := s.repo.CreateSubject(ctx, sub); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	s.cacheDel(ctx, config.CacheKey.SubjectsKey(sub.BoardID))
	return nil
}

// ListChapters returns a subject's chapters, served from cache when possible.
func (s *CurriculumService) ListChapters(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	key := config.CacheKey.ChaptersKey(subjectID)
	var chapters []model.Chapter
	if s.cacheGet(ctx, key, &chapters) {
		return chapters, nil
	}

	chapters, err := s.repo.ListChapters(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	s.cacheSet(ctx, key, chapters)
	return chapters, nil
}

// CreateChapter creates a chapter and invalidates the subject's chapter cache.
func (s *CurriculumService) CreateChapter(ctx context.Context, c *model.Chapter) error {
	exists, err := s.repo.ChapterExists(ctx, c.Name, c.SubjectID)
	if err != nil {
		return fmt.Errorf("check chapter: %w", err)
	}
	if exists {
		return ErrDuplicateName
	}
	if err := s.repo.CreateChapter(ctx, c); err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}
	s.cacheDel(ctx, config.CacheKey.ChaptersKey(c.SubjectID))
	return nil
}

func (s *CurriculumService) cacheGet(ctx context.Context, key string, dest any) bool {
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		return false
	}
	return true
}

func (s *CurriculumService) cacheSet(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, curriculumCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *CurriculumService) cacheDel(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
