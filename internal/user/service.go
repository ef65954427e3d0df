package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user_details/internal/observability"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type UserServiceInterface interface {
	FetchUserDetails(ctx context.Context, userID int64) (*UserDetails, error)
}

type UserService struct {
	repo    UserRepositoryInterface
	timeout time.Duration
	metrics *observability.Metrics
}

// NewUserService wires the service to a data source. A zero timeout leaves the
// caller's deadline in charge; metrics may be nil.
func NewUserService(repo UserRepositoryInterface, timeout time.Duration, metrics *observability.Metrics) UserServiceInterface {
	return &UserService{
		repo:    repo,
		timeout: timeout,
		metrics: metrics,
	}
}

// FetchUserDetails loads the user and their posts concurrently. A failed user
// lookup takes precedence over a failed posts lookup.
func (s *UserService) FetchUserDetails(ctx context.Context, userID int64) (*UserDetails, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		u        *User
		posts    []Post
		userErr  error
		postsErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		userErr = s.observe(gctx, "get_user", func(ctx context.Context) error {
			var err error
			u, err = s.repo.GetUser(ctx, userID)
			return err
		})
		return userErr
	})

	g.Go(func() error {
		postsErr = s.observe(gctx, "get_posts", func(ctx context.Context) error {
			var err error
			posts, err = s.repo.GetPostsByUser(ctx, userID)
			return err
		})
		return postsErr
	})

	groupErr := g.Wait()

	// The caller went away; nothing we return will be used.
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: fetching user %d: %v", ErrServiceUnavailable, userID, ctx.Err())
	}

	if userErr != nil && !errors.Is(userErr, context.Canceled) {
		return nil, userErr
	}
	if groupErr != nil {
		return nil, groupErr
	}
	if u == nil {
		return nil, fmt.Errorf("%w: empty user record for %d", ErrServiceUnavailable, userID)
	}

	return &UserDetails{
		User:  *u,
		Posts: postsOwnedBy(u.ID, posts),
	}, nil
}

// postsOwnedBy keeps only posts written by userID and never returns nil.
func postsOwnedBy(userID int64, posts []Post) []Post {
	owned := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.UserID != userID {
			logrus.WithFields(logrus.Fields{
				"user_id":      userID,
				"post_id":      p.ID,
				"post_user_id": p.UserID,
			}).Warn("Dropping post that belongs to another user")
			continue
		}
		owned = append(owned, p)
	}
	return owned
}

func (s *UserService) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := fn(ctx)

	if s.metrics != nil {
		s.metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		s.metrics.UpstreamRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
	}

	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, ErrServiceUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
