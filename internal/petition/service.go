package petition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/saafhawa/petition/internal/config"
	"github.com/saafhawa/petition/internal/util"
)

const (
	recentLimit  = 5
	defaultLimit = 50
	maxLimit     = 200
	trendDays    = 30
)

// SignatureRepository is the store contract the service depends on.
type SignatureRepository interface {
	Create(ctx context.Context, input CreateSignatureInput) (*Signature, error)
	Get(ctx context.Context, id uuid.UUID) (*Signature, error)
	List(ctx context.Context, filter ListFilter) ([]Signature, int64, error)
	ListAll(ctx context.Context) ([]Signature, error)
	Recent(ctx context.Context, limit int) ([]Signature, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountSince(ctx context.Context, today, week, month time.Time) (total, todayN, weekN, monthN int64, err error)
	DailyTrend(ctx context.Context, since time.Time) ([]DailyCount, error)
}

// Service applies intake validation and bounds every store call with a
// deadline so a slow store surfaces as ErrUnavailable instead of hanging.
type Service struct {
	repo    SignatureRepository
	variant string
	timeout time.Duration
	now     func() time.Time
}

// NewService creates the petition service for the configured campaign variant.
func NewService(repo SignatureRepository, variant string, timeout time.Duration) *Service {
	return &Service{repo: repo, variant: variant, timeout: timeout, now: time.Now}
}

// Create validates and persists a new signature.
func (s *Service) Create(ctx context.Context, input CreateSignatureInput) (*Signature, error) {
	if err := util.ValidateName(input.Name); err != nil {
		return nil, validationErr(err)
	}

	switch s.variant {
	case config.VariantMobileState:
		if err := util.ValidateMobile(input.Phone); err != nil {
			return nil, validationErr(err)
		}
		if err := util.RequireString(input.State, "state"); err != nil {
			return nil, validationErr(err)
		}
	default:
		if err := util.ValidatePhone(input.Phone); err != nil {
			return nil, validationErr(err)
		}
	}

	if err := util.ValidateEmail(input.Email); err != nil {
		return nil, validationErr(err)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	sig, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return sig, nil
}

// Get fetches one signature.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Signature, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	sig, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return sig, nil
}

// List returns a 1-indexed page. A page past the end yields an empty page,
// not an error.
func (s *Service) List(ctx context.Context, page, limit int, search string, dateFrom, dateTo *time.Time) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := ListFilter{
		Search:   search,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	signatures, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if signatures == nil {
		signatures = []Signature{}
	}

	return &ListResult{
		Signatures: signatures,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Delete removes a signature. A second delete of the same id is ErrNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// PublicStats backs the polled counter on the campaign page.
func (s *Service) PublicStats(ctx context.Context) (*PublicStats, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	now := s.now()
	total, _, _, _, err := s.repo.CountSince(ctx, now, now, now)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	stats := &PublicStats{TotalSignatures: total, RecentSignatures: []RecentSignature{}}
	for _, sig := range recent {
		stats.RecentSignatures = append(stats.RecentSignatures, RecentSignature{
			Name:      sig.Name,
			Timestamp: sig.CreatedAt,
			TimeAgo:   TimeAgo(sig.CreatedAt, now),
		})
	}

	return stats, nil
}

// AdminStats aggregates counts against server-local midnight, ISO-week Monday
// and first-of-month boundaries, plus a 30-day daily trend.
func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week := today.AddDate(0, 0, -int((today.Weekday()+6)%7))
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total, todayN, weekN, monthN, err := s.repo.CountSince(ctx, today, week, month)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	trend, err := s.repo.DailyTrend(ctx, today.AddDate(0, 0, -trendDays))
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if trend == nil {
		trend = []DailyCount{}
	}

	return &AdminStats{
		TotalSignatures: total,
		Today:           todayN,
		ThisWeek:        weekN,
		ThisMonth:       monthN,
		DailyTrend:      trend,
	}, nil
}

// ExportAll returns every signature ordered by signature_number ascending.
func (s *Service) ExportAll(ctx context.Context) ([]Signature, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	signatures, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return signatures, nil
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	return err
}
