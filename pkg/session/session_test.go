package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"blog-system/config"
	"blog-system/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func initTestLogger(t *testing.T) {
	t.Helper()
	logger.InitLogger(config.LogConfig{
		Level:    "info",
		Filename: filepath.Join(t.TempDir(), "test.log"),
		MaxSize:  1,
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := signSessionID(secret, "abc123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sid, err := parseSessionID(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sid)
}

func TestSessionTokenRejections(t *testing.T) {
	secret := []byte("test-secret")
	token, err := signSessionID(secret, "abc123", time.Hour)
	require.NoError(t, err)

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := parseSessionID([]byte("other-secret"), token)
		assert.Error(t, err)
	})

	t.Run("Tampered", func(t *testing.T) {
		_, err := parseSessionID(secret, token+"x")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := parseSessionID(secret, "")
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired, err := signSessionID(secret, "abc123", -time.Hour)
		require.NoError(t, err)
		_, err = parseSessionID(secret, expired)
		assert.Error(t, err)
	})

	t.Run("EmptySID", func(t *testing.T) {
		_, err := signSessionID(secret, "", time.Hour)
		assert.Error(t, err)
	})
}

func TestRequireLogin(t *testing.T) {
	initTestLogger(t)
	svc := &Service{cookieName: "blog_session", secret: []byte("test-secret"), lifetime: time.Hour}

	router := gin.New()
	// 测试中跳过Redis，用中间件直接注入用户ID
	router.GET("/open", func(c *gin.Context) {
		c.Set(ContextUserIDKey, uint(7))
		c.Next()
	}, svc.RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, "user=%d", CurrentUserID(c))
	})
	router.GET("/protected", svc.RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("AnonymousRedirectsToLogin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("LoggedInPassesThrough", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/open", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user=7", w.Body.String())
	})
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), CurrentUserID(c))

	c.Set(ContextUserIDKey, uint(42))
	assert.Equal(t, uint(42), CurrentUserID(c))
}

func TestFlash(t *testing.T) {
	t.Run("SetAndTake", func(t *testing.T) {
		setRecorder := httptest.NewRecorder()
		setCtx, _ := gin.CreateTestContext(setRecorder)
		setCtx.Request = httptest.NewRequest("GET", "/", nil)
		Flash(setCtx, "Login successful.")

		cookies := setRecorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, flashCookieName, cookies[0].Name)

		takeRecorder := httptest.NewRecorder()
		takeCtx, _ := gin.CreateTestContext(takeRecorder)
		takeCtx.Request = httptest.NewRequest("GET", "/", nil)
		takeCtx.Request.AddCookie(&http.Cookie{Name: flashCookieName, Value: cookies[0].Value})

		assert.Equal(t, "Login successful.", TakeFlash(takeCtx))

		// 读取后Cookie被清除
		cleared := takeRecorder.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, flashCookieName, cleared[0].Name)
		assert.Empty(t, cleared[0].Value)
		assert.Negative(t, cleared[0].MaxAge)
	})

	t.Run("NoCookie", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		assert.Empty(t, TakeFlash(c))
	})

	t.Run("SpecialCharsSurviveRoundTrip", func(t *testing.T) {
		message := "100% done & \"quoted\"; next?"

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		Flash(c, message)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)

		takeCtx, _ := gin.CreateTestContext(httptest.NewRecorder())
		takeCtx.Request = httptest.NewRequest("GET", "/", nil)
		takeCtx.Request.AddCookie(&http.Cookie{Name: flashCookieName, Value: cookies[0].Value})
		assert.Equal(t, message, TakeFlash(takeCtx))
	})
}
