package ports

import "context"

type accessTokenKey struct{}

// WithAccessToken adjunta el token del usuario para que el adaptador upstream lo reenvíe.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken token adjunto al contexto o "".
func AccessToken(ctx context.Context) string {
	tok, _ := ctx.Value(accessTokenKey{}).(string)
	return tok
}
