package domain

import "context"

type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}

type accessTokenKey struct{}

// WithAccessToken stores the caller's bearer token so row-level-secured
// repositories can act on the caller's behalf.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the token stored by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}
