package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/response"
	"github.com/roamerv/dealer-backend/pkg/logger"
)

// AccessResolver validates portal access URLs and resolves group member
// selection. Served by the dealer service.
type AccessResolver interface {
	ResolveAccess(ctx context.Context, accessURL string) (*models.DealerConfig, error)
	SelectMember(cfg *models.DealerConfig, requested string) (string, error)
}

type contextKey string

const (
	dealerKey contextKey = "dealer"
	memberKey contextKey = "member"
)

type accessMiddleware struct {
	Resolver        AccessResolver
	ResponseHandler response.ResponseHandler
}

func NewAccessMiddleware(resolver AccessResolver, rh response.ResponseHandler) *accessMiddleware {
	return &accessMiddleware{Resolver: resolver, ResponseHandler: rh}
}

// DealerAccess guards the portal routes. The {access} URL segment is a
// "{slug}-{code}" pair; a group session may pick one member via the
// ?dealer= query parameter, defaulting to the first member.
func (m *accessMiddleware) DealerAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, err := m.Resolver.ResolveAccess(r.Context(), chi.URLParam(r, "access"))
		if err != nil {
			m.ResponseHandler.HandleError(w, r, err)
			return
		}
		member, err := m.Resolver.SelectMember(cfg, r.URL.Query().Get("dealer"))
		if err != nil {
			m.ResponseHandler.HandleError(w, r, err)
			return
		}

		_, ctx := logger.With(r.Context(), "dealer", member)
		next.ServeHTTP(w, r.WithContext(WithAccess(ctx, cfg, member)))
	})
}

// WithAccess stores the resolved dealer config and member slug on the
// context. Exposed for handler tests.
func WithAccess(ctx context.Context, cfg *models.DealerConfig, member string) context.Context {
	ctx = context.WithValue(ctx, dealerKey, cfg)
	return context.WithValue(ctx, memberKey, member)
}

// Dealer returns the resolved dealer or group config for the request.
func Dealer(ctx context.Context) *models.DealerConfig {
	cfg, _ := ctx.Value(dealerKey).(*models.DealerConfig)
	return cfg
}

// MemberSlug returns the member dealer slug the request is scoped to.
func MemberSlug(ctx context.Context) string {
	slug, _ := ctx.Value(memberKey).(string)
	return slug
}
