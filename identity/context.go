package identity

import (
	"context"
	"strings"
)

type authorizationKey struct{}

// WithAuthorization stores the caller's Authorization header so outbound
// lookups can present the same credential. Blank values are ignored.
func WithAuthorization(ctx context.Context, header string) context.Context {
	if strings.TrimSpace(header) == "" {
		return ctx
	}
	return context.WithValue(ctx, authorizationKey{}, header)
}

// AuthorizationFrom returns the header stored by WithAuthorization.
func AuthorizationFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(authorizationKey{}).(string)
	return v, ok && v != ""
}
