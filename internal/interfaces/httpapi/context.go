package httpapi

import (
	"context"

	"github.com/riskibarqy/hoopscheduler/internal/domain/tenant"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p tenant.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (tenant.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(tenant.Principal)
	return p, ok
}
