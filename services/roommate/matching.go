package roommate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	roommateRepo "roomhive/database/repository/roommate"
	userRepo "roomhive/database/repository/user"
	"roomhive/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// matchCacheTTL bounds staleness of cached rankings. The score is advisory,
// so a short window of staleness is acceptable.
const matchCacheTTL = 2 * time.Minute

// DefaultRoommateService implements RoommateService.
type DefaultRoommateService struct {
	Repo     roommateRepo.RoommateRepository
	UserRepo userRepo.UserRepository
	Cache    *redis.Client
	Logger   *zap.Logger
}

// RankMatches scores every other profile against the requester's and
// returns the full ranked list, best match first.
func (s *DefaultRoommateService) RankMatches(ctx context.Context, requesterID string) ([]models.RoommateMatch, error) {
	requester, err := s.Repo.GetByUserID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, roommateRepo.ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to load requester profile: %w", err)
	}

	if cached := s.cachedMatches(ctx, requesterID); cached != nil {
		return cached, nil
	}

	candidates, err := s.Repo.ListExcluding(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}

	// Score concurrently, writing by index so candidate enumeration order
	// is preserved as the tie-break order.
	matches := make([]*models.RoommateMatch, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate models.RoommateProfile) {
			defer wg.Done()
			owner, err := s.UserRepo.GetByID(ctx, candidate.UserID)
			if err != nil {
				// Broken user reference; drop the candidate.
				return
			}
			matches[i] = &models.RoommateMatch{
				Profile: candidate,
				User:    owner.Summary(),
				Score:   CompatibilityScore(*requester, candidate),
			}
		}(i, candidate)
	}
	wg.Wait()

	ranked := make([]models.RoommateMatch, 0, len(candidates))
	for _, m := range matches {
		if m != nil {
			ranked = append(ranked, *m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	s.cacheMatches(ctx, requesterID, ranked)
	return ranked, nil
}

// CompatibilityScore computes the heuristic fit between two profiles as the
// sum of closeness sub-scores, clamped at zero and rounded half-up.
func CompatibilityScore(a, b models.RoommateProfile) int {
	raw := 0.0
	raw += 10 - math.Abs(float64(a.Age-b.Age))
	raw += 10 - math.Abs(a.Budget-b.Budget)/1000
	if a.Habits.Smoking == b.Habits.Smoking {
		raw += 5
	}
	if a.Habits.Drinking == b.Habits.Drinking {
		raw += 5
	}
	if a.Habits.Pets == b.Habits.Pets {
		raw += 5
	}
	raw += 5 - math.Abs(float64(a.Habits.Cleanliness-b.Habits.Cleanliness))
	raw += 10 - math.Abs(float64(a.VibeScore-b.VibeScore))

	if raw < 0 {
		raw = 0
	}
	return int(math.Floor(raw + 0.5))
}

func (s *DefaultRoommateService) matchCacheKey(userID string) string {
	return "roommate:matches:" + userID
}

func (s *DefaultRoommateService) cachedMatches(ctx context.Context, userID string) []models.RoommateMatch {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, s.matchCacheKey(userID)).Result()
	if err != nil {
		return nil
	}
	var matches []models.RoommateMatch
	if err := json.Unmarshal([]byte(data), &matches); err != nil {
		return nil
	}
	return matches
}

func (s *DefaultRoommateService) cacheMatches(ctx context.Context, userID string, matches []models.RoommateMatch) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(matches)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, s.matchCacheKey(userID), data, matchCacheTTL).Err(); err != nil {
		s.Logger.Debug("match cache write failed", zap.String("userID", userID), zap.Error(err))
	}
}
