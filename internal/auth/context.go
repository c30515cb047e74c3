package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxEmail ctxKey = iota
	ctxUserID
	ctxTokenID
)

func WithIdentity(ctx context.Context, email, userID, tokenID string) context.Context {
	ctx = context.WithValue(ctx, ctxEmail, email)
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxTokenID, tokenID)
	return ctx
}

func Email(ctx context.Context) (string, error) {
	v := ctx.Value(ctxEmail)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("email not in context")
}

func UserID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxUserID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("user_id not in context")
}

// TokenID returns the jti of the token that authenticated the request.
// Logout uses it as the revocation key.
func TokenID(ctx context.Context) (string, error) {
	v := ctx.Value(ctxTokenID)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("token_id not in context")
}
