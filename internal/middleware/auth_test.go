package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-service/internal/identity"
)

var testSigningKey = []byte("test-signing-key")

func testKeyfunc(*jwt.Token) (interface{}, error) {
	return testSigningKey, nil
}

func signedToken(t *testing.T, username string, roles []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"preferred_username": username,
		"realm_access":       map[string]any{"roles": roles},
		"exp":                time.Now().Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)
	return token
}

func authRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(testKeyfunc)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		principal, _ := identity.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"username": principal.Username})
	})
	router.GET("/probe", chain...)
	return router
}

func doProbe(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router := authRouter()

	w := doProbe(router, "Bearer "+signedToken(t, "alice", []string{identity.RoleManager}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := authRouter()

	w := doProbe(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_NotBearer(t *testing.T) {
	router := authRouter()

	w := doProbe(router, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BadSignature(t *testing.T) {
	router := authRouter()

	claims := jwt.MapClaims{
		"preferred_username": "alice",
		"exp":                time.Now().Add(time.Minute).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-key"))
	require.NoError(t, err)

	w := doProbe(router, "Bearer "+forged)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	router := authRouter()

	claims := jwt.MapClaims{
		"preferred_username": "alice",
		"exp":                time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	require.NoError(t, err)

	w := doProbe(router, "Bearer "+expired)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TokenWithoutUsername(t *testing.T) {
	router := authRouter()

	w := doProbe(router, "Bearer "+signedToken(t, "", []string{identity.RoleManager}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	router := authRouter(RequireRole(identity.RoleManager))

	w := doProbe(router, "Bearer "+signedToken(t, "alice", []string{identity.RoleManager}))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_AnyOfSeveral(t *testing.T) {
	router := authRouter(RequireRole(identity.RoleManager, identity.RoleEmployee))

	w := doProbe(router, "Bearer "+signedToken(t, "bob", []string{identity.RoleEmployee}))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	router := authRouter(RequireRole(identity.RoleManager))

	w := doProbe(router, "Bearer "+signedToken(t, "bob", []string{identity.RoleEmployee}))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
