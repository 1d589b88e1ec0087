package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wellness-admin/internal/application/auth"
	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBridge_MaxAgeEsFloorDeLaDiferencia(t *testing.T) {
	base := now.UnixMilli()
	cases := []struct {
		deltaMs int64
		want    int
	}{
		{1000, 1},
		{1999, 1},
		{2000, 2},
		{90_500, 90},
		{86_400_000, 86_400},
	}
	for _, tc := range cases {
		got := auth.Bridge(dto.StoredToken{Token: "tok", ExpiresAt: base + tc.deltaMs, Valid: true}, now)
		assert.False(t, got.Clear, "delta=%d", tc.deltaMs)
		assert.Equal(t, tc.want, got.MaxAge, "delta=%d", tc.deltaMs)
		assert.Equal(t, "tok", got.Token)
		assert.Equal(t, base+tc.deltaMs, got.ExpiresAt)
	}
}

func TestBridge_PropiedadMaxAge(t *testing.T) {
	base := now.UnixMilli()
	for delta := int64(1000); delta < 5_000_000; delta += 7919 {
		got := auth.Bridge(dto.StoredToken{Token: "tok", ExpiresAt: base + delta, Valid: true}, now)
		assert.Equal(t, int(delta/1000), got.MaxAge)
	}
}

func TestBridge_BorraCookies(t *testing.T) {
	base := now.UnixMilli()
	cases := map[string]dto.StoredToken{
		"sin sesión":      {},
		"inválido":        {Token: "tok", ExpiresAt: base + 60_000, Valid: false},
		"sin token":       {ExpiresAt: base + 60_000, Valid: true},
		"expirado":        {Token: "tok", ExpiresAt: base - 1, Valid: true},
		"expira ahora":    {Token: "tok", ExpiresAt: base, Valid: true},
		"menos de un seg": {Token: "tok", ExpiresAt: base + 999, Valid: true},
	}
	for name, stored := range cases {
		got := auth.Bridge(stored, now)
		assert.Equal(t, auth.Cookies{Clear: true}, got, name)
	}
}

func TestFromCookies(t *testing.T) {
	future := now.Add(time.Hour).UnixMilli()

	got := auth.FromCookies("tok", "1740834000000", now)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, int64(1740834000000), got.ExpiresAt)
	assert.True(t, auth.FromCookies("tok", itoa(future), now).Valid)
	assert.False(t, auth.FromCookies("tok", itoa(now.UnixMilli()-1), now).Valid)
	assert.False(t, auth.FromCookies("", itoa(future), now).Valid)
	assert.False(t, auth.FromCookies("tok", "mañana", now).Valid)
}
