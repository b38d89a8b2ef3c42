package middleware

import (
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	apierrors "github.com/yukikurage/task-service/internal/errors"
	"github.com/yukikurage/task-service/internal/identity"
)

// NewJWKS fetches the identity provider's JSON Web Key Set used to verify
// access tokens.
func NewJWKS(issuerURL, realm string) (*keyfunc.JWKS, error) {
	jwksURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/certs",
		strings.TrimRight(issuerURL, "/"), realm)
	return keyfunc.Get(jwksURL, keyfunc.Options{})
}

// tokenClaims is the subset of the access token this service reads.
type tokenClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// RequireAuth verifies the bearer token and stores the resulting principal in
// the request context for the identity service and the handlers.
func RequireAuth(keyFunc jwt.Keyfunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		rawToken := strings.TrimPrefix(header, "Bearer ")

		var claims tokenClaims
		token, err := jwt.ParseWithClaims(rawToken, &claims, keyFunc)
		if err != nil || !token.Valid {
			apierrors.Unauthorized(c, "invalid access token")
			c.Abort()
			return
		}
		if claims.PreferredUsername == "" {
			apierrors.Unauthorized(c, "token carries no username")
			c.Abort()
			return
		}

		principal := identity.Principal{
			Username:    claims.PreferredUsername,
			Roles:       claims.RealmAccess.Roles,
			AccessToken: rawToken,
		}

		c.Request = c.Request.WithContext(identity.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireRole gates a route on the caller holding at least one of the given
// roles. The engine still makes the per-project and per-task decisions; this
// only reproduces the route-level role annotations.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := identity.FromContext(c.Request.Context())
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.HasRole(role) {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}
