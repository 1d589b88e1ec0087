package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wellness-admin/internal/application/auth"
	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

// Locals usados entre el puente de sesión y los handlers.
const (
	localSession      = "session"
	localSessionDirty = "session_dirty"
	localUnauthorized = "unauthorized"
	localLogout       = "logout"
)

// Claves del token dentro de la sesión.
const (
	sessionToken     = "token"
	sessionExpiresAt = "expires_at"
	sessionValid     = "valid"
)

// CookieConfig atributos comunes de las cookies del puente.
type CookieConfig struct {
	Domain string
	Secure bool
}

// TokenBridge corre alrededor de cada petición: abre la sesión, deja que el handler
// la modifique y al final sincroniza las cookies access-token y token-expires-at
// con el token guardado. Un 401 o un logout destruyen la sesión.
func TokenBridge(store *session.Store, cookies CookieConfig, now func() time.Time, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Warn().Err(err).Msg("sesión ilegible, se continúa sin sesión")
			err = c.Next()
			writeCookies(c, auth.Cookies{Clear: true}, cookies)
			return err
		}
		c.Locals(localSession, sess)

		err = c.Next()

		if flag(c, localUnauthorized) || flag(c, localLogout) {
			if derr := sess.Destroy(); derr != nil {
				log.Warn().Err(derr).Msg("no se pudo destruir la sesión")
			}
			writeCookies(c, auth.Cookies{Clear: true}, cookies)
			return err
		}

		writeCookies(c, auth.Bridge(loadToken(sess), now()), cookies)
		if flag(c, localSessionDirty) {
			if serr := sess.Save(); serr != nil {
				log.Error().Err(serr).Msg("no se pudo guardar la sesión")
			}
		}
		return err
	}
}

func writeCookies(c *fiber.Ctx, ck auth.Cookies, cfg CookieConfig) {
	if ck.Clear {
		for _, name := range []string{auth.CookieToken, auth.CookieExpiresAt} {
			c.Cookie(&fiber.Cookie{
				Name:     name,
				Value:    "",
				Path:     "/",
				Domain:   cfg.Domain,
				Expires:  time.Unix(0, 0).UTC(),
				Secure:   cfg.Secure,
				HTTPOnly: name == auth.CookieToken,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieToken,
		Value:    ck.Token,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   ck.MaxAge,
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	// El navegador lee la expiración para programar el aviso de sesión.
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieExpiresAt,
		Value:    formatMillis(ck.ExpiresAt),
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   ck.MaxAge,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// currentSession sesión abierta por TokenBridge; nil si la ruta no pasa por él.
func currentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(localSession).(*session.Session)
	return sess
}

// storeToken guarda el token tras un login correcto; se persiste al terminar la petición.
func storeToken(c *fiber.Ctx, tok dto.StoredToken) {
	sess := currentSession(c)
	if sess == nil {
		return
	}
	sess.Set(sessionToken, tok.Token)
	sess.Set(sessionExpiresAt, tok.ExpiresAt)
	sess.Set(sessionValid, tok.Valid)
	c.Locals(localSessionDirty, true)
}

func loadToken(sess *session.Session) dto.StoredToken {
	tok, _ := sess.Get(sessionToken).(string)
	exp, _ := sess.Get(sessionExpiresAt).(int64)
	valid, _ := sess.Get(sessionValid).(bool)
	return dto.StoredToken{Token: tok, ExpiresAt: exp, Valid: valid}
}

func markUnauthorized(c *fiber.Ctx) { c.Locals(localUnauthorized, true) }

func markLogout(c *fiber.Ctx) { c.Locals(localLogout, true) }

func flag(c *fiber.Ctx, key string) bool {
	v, _ := c.Locals(key).(bool)
	return v
}

func formatMillis(ms int64) string { return strconv.FormatInt(ms, 10) }
