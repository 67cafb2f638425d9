package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"jobly-relay/config"
	v1 "jobly-relay/internal/delivery/http/v1"
	"jobly-relay/internal/delivery/http/middleware"
	"jobly-relay/internal/usecase"
	"jobly-relay/pkg/telegram"
	"jobly-relay/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeTelegram records every sendMessage call and answers with reply.
type fakeTelegram struct {
	mu     sync.Mutex
	calls  []telegram.SendMessageRequest
	paths  []string
	reply  string
	status int
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var msg telegram.SendMessageRequest
	_ = json.NewDecoder(r.Body).Decode(&msg)

	f.mu.Lock()
	f.calls = append(f.calls, msg)
	f.paths = append(f.paths, r.URL.Path)
	f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = w.Write([]byte(f.reply))
}

type body struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Time  string `json:"time"`
}

func newTestRouter(t *testing.T, cfg *config.Config, tg *fakeTelegram) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(tg)
	t.Cleanup(server.Close)

	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{config.DefaultFrontendURL}
	}
	cfg.TelegramAPIURL = server.URL

	client := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, 5*time.Second)
	return v1.NewRouter(v1.RouterDeps{
		RelayUC:  usecase.NewRelayUsecase(cfg, client, validation.New()),
		HealthUC: usecase.NewHealthUsecase(),
		Config:   cfg,
	})
}

func configured() *config.Config {
	return &config.Config{TelegramBotToken: "123:abc", TelegramChatID: "-100500"}
}

func do(r http.Handler, method, path, payload string, headers ...string) (*httptest.ResponseRecorder, body) {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var b body
	_ = json.Unmarshal(w.Body.Bytes(), &b)
	return w, b
}

func TestHealth(t *testing.T) {
	for name, cfg := range map[string]*config.Config{
		"configured":   configured(),
		"unconfigured": {},
	} {
		t.Run(name, func(t *testing.T) {
			r := newTestRouter(t, cfg, &fakeTelegram{})

			w, b := do(r, http.MethodGet, "/api/health", "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, b.OK)
			ts, err := time.Parse(time.RFC3339, b.Time)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now(), ts, time.Minute)
			assert.True(t, strings.HasSuffix(b.Time, "Z"))
		})
	}
}

func TestSubmitForm_Success(t *testing.T) {
	tg := &fakeTelegram{reply: `{"ok":true,"result":{"message_id":1}}`}
	r := newTestRouter(t, configured(), tg)

	w, b := do(r, http.MethodPost, "/api/telegram", `{"name":"Ann","tg":"@ann"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.True(t, b.OK)

	require.Len(t, tg.calls, 1)
	assert.Equal(t, "/bot123:abc/sendMessage", tg.paths[0])
	msg := tg.calls[0]
	assert.Equal(t, "-100500", msg.ChatID)
	assert.Equal(t, "HTML", msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
	assert.Equal(t, "<b>Новая заявка с Jobly</b>\n👤 Имя: Ann\n✈️ Telegram: @ann\n", msg.Text)
}

func TestSubmitForm_Validation(t *testing.T) {
	payloads := map[string]string{
		"missing tg":      `{"name":"Ann"}`,
		"missing name":    `{"tg":"@ann"}`,
		"empty strings":   `{"name":"","tg":""}`,
		"empty object":    `{}`,
		"empty body":      ``,
		"malformed json":  `{"name":`,
		"not an object":   `[1,2]`,
		"wrong type":      `{"name":42,"tg":"@ann"}`,
		"only optional":   `{"email":"a@b.c","city":"Msk"}`,
		"whitespace only": `{"name":"  ","tg":"@ann"}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			tg := &fakeTelegram{reply: `{"ok":true}`}
			r := newTestRouter(t, configured(), tg)

			w, b := do(r, http.MethodPost, "/api/telegram", payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, b.OK)
			assert.Equal(t, "name и tg обязательны", b.Error)
			assert.Empty(t, tg.calls)
		})
	}
}

func TestSubmitForm_NotConfigured(t *testing.T) {
	tg := &fakeTelegram{reply: `{"ok":true}`}
	r := newTestRouter(t, &config.Config{TelegramBotToken: "123:abc"}, tg)

	w, b := do(r, http.MethodPost, "/api/telegram", `{"name":"Ann","tg":"@ann"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, b.OK)
	assert.Equal(t, "Сервер не сконфигурирован (нет токена/чат-айди)", b.Error)
	assert.Empty(t, tg.calls)
}

func TestSubmitForm_ValidationWinsOverConfiguration(t *testing.T) {
	tg := &fakeTelegram{}
	r := newTestRouter(t, &config.Config{}, tg)

	w, b := do(r, http.MethodPost, "/api/telegram", `{"name":"Ann"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name и tg обязательны", b.Error)
	assert.Empty(t, tg.calls)
}

func TestSubmitForm_Upstream(t *testing.T) {
	t.Run("with description", func(t *testing.T) {
		tg := &fakeTelegram{status: http.StatusBadRequest, reply: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`}
		r := newTestRouter(t, configured(), tg)

		w, b := do(r, http.MethodPost, "/api/telegram", `{"name":"Ann","tg":"@ann"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.False(t, b.OK)
		assert.Equal(t, "Bad Request: chat not found", b.Error)
		assert.Len(t, tg.calls, 1)
	})

	t.Run("without description", func(t *testing.T) {
		tg := &fakeTelegram{reply: `{"ok":false}`}
		r := newTestRouter(t, configured(), tg)

		w, b := do(r, http.MethodPost, "/api/telegram", `{"name":"Ann","tg":"@ann"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Telegram error", b.Error)
		assert.Len(t, tg.calls, 1, "no retry after a rejection")
	})
}

func TestSubmitForm_UnexpectedProviderReply(t *testing.T) {
	tg := &fakeTelegram{status: http.StatusBadGateway, reply: `<html>nginx</html>`}
	r := newTestRouter(t, configured(), tg)

	w, b := do(r, http.MethodPost, "/api/telegram", `{"name":"Ann","tg":"@ann"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"server_error"}`, w.Body.String())
	assert.Equal(t, "server_error", b.Error)
	assert.Len(t, tg.calls, 1)
}

func TestSubmitForm_EscapesMarkup(t *testing.T) {
	tg := &fakeTelegram{reply: `{"ok":true}`}
	r := newTestRouter(t, configured(), tg)

	payload := `{"name":"<i>Ann</i>","tg":"@ann","message":"a & b \"quoted\" <script>"}`
	w, _ := do(r, http.MethodPost, "/api/telegram", payload)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, tg.calls, 1)
	text := tg.calls[0].Text
	assert.Contains(t, text, "👤 Имя: &lt;i&gt;Ann&lt;/i&gt;\n")
	assert.Contains(t, text, "📝 Сообщение:\na &amp; b &quot;quoted&quot; &lt;script&gt;\n")
	assert.NotContains(t, text, "<i>")
	assert.NotContains(t, text, "<script>")
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, configured(), &fakeTelegram{})

	t.Run("preflight from frontend", func(t *testing.T) {
		w, _ := do(r, http.MethodOptions, "/api/telegram", "", "Origin", "http://localhost:5173")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("preflight from elsewhere", func(t *testing.T) {
		w, _ := do(r, http.MethodOptions, "/api/telegram", "", "Origin", "https://evil.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request from frontend", func(t *testing.T) {
		w, _ := do(r, http.MethodGet, "/api/health", "", "Origin", "http://localhost:5173")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDAndNotFound(t *testing.T) {
	r := newTestRouter(t, configured(), &fakeTelegram{})

	w, b := do(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, b.OK)
	assert.Equal(t, "not_found", b.Error)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w, _ = do(r, http.MethodGet, "/api/health", "", middleware.RequestIDHeader, "req-42")
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSwaggerDoc(t *testing.T) {
	r := newTestRouter(t, configured(), &fakeTelegram{})

	w, _ := do(r, http.MethodGet, "/api/swagger/doc.json", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/telegram"`)
}
