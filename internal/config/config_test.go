package config_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/receiptsweeper/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "APP_PORT", "STORE_DRIVER", "FEED_SIZE", "DEVELOPMENT"} {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 50, cfg.FeedSize)
	assert.False(t, cfg.Development)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
store_driver: sqlite
sqlite_path: /tmp/games.db
redis_ttl: 1h
feed_size: 5
`), 0o600))

	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("FEED_SIZE", "7")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, "/tmp/games.db", cfg.SQLitePath)
	assert.Equal(t, time.Hour, cfg.RedisTTL)
	assert.Equal(t, 7, cfg.FeedSize)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}},
		{"bad feed size", map[string]string{"FEED_SIZE": "many"}},
		{"zero feed size", map[string]string{"FEED_SIZE": "0"}},
		{"bad ttl", map[string]string{"REDIS_TTL": "forever"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestJWT(t *testing.T) {
	signer := config.NewJWTWithSecret([]byte("secret"))

	token, err := signer.Sign("otter")
	require.NoError(t, err)

	assert.NoError(t, signer.Verify(token, "otter"))
	assert.ErrorIs(t, signer.Verify(token, "heron"), config.ErrBadTicket)
	assert.ErrorIs(t, signer.Verify("garbage", "otter"), config.ErrBadTicket)

	other := config.NewJWTWithSecret([]byte("other"))
	assert.ErrorIs(t, other.Verify(token, "otter"), config.ErrBadTicket)
}

func TestJWTRejectsOtherAlgorithms(t *testing.T) {
	signer := config.NewJWTWithSecret([]byte("secret"))
	claims := &config.GameClaims{Slug: "otter"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	assert.ErrorIs(t, signer.Verify(token, "otter"), config.ErrBadTicket)
}

func TestJWTExpired(t *testing.T) {
	signer := config.NewJWTWithSecret([]byte("secret"))
	signer.TokenLifetime = -time.Minute
	token, err := signer.Sign("otter")
	require.NoError(t, err)
	assert.ErrorIs(t, signer.Verify(token, "otter"), config.ErrBadTicket)
}

func TestTicket(t *testing.T) {
	cookies := &config.Cookies{SameSite: http.SameSiteLaxMode}

	rec := httptest.NewRecorder()
	cookies.SetTicket(rec, "otter", "from-cookie", time.Now().Add(time.Hour))

	r := httptest.NewRequest(http.MethodPost, "/game/otter/move", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	token, ok := cookies.Ticket(r, "otter")
	assert.True(t, ok)
	assert.Equal(t, "from-cookie", token)

	_, ok = cookies.Ticket(r, "heron")
	assert.False(t, ok)

	r.Header.Set("Authorization", "Bearer from-header")
	token, ok = cookies.Ticket(r, "otter")
	assert.True(t, ok)
	assert.Equal(t, "from-header", token)

	r.Header.Set("Authorization", "Basic abc")
	_, ok = cookies.Ticket(r, "otter")
	assert.False(t, ok)
}
