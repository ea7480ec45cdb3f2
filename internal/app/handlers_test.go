package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sachinth/koda/internal/config"
	"github.com/sachinth/koda/internal/inventory"
	"github.com/sachinth/koda/internal/logger"
	"github.com/sachinth/koda/internal/relay"
	"github.com/sachinth/koda/internal/router"
	"github.com/sachinth/koda/theme"
)

type fakeRunner struct {
	output []byte
	err    error
}

func (r *fakeRunner) Run(_ context.Context) ([]byte, error) {
	return r.output, r.err
}

func testLogger() *logger.StyledLogger {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logger.NewStyledLogger(discard, theme.Default())
}

// newTestApplication builds an Application around a canned inventory
// command and an Ollama endpoint stub, skipping config file loading.
func newTestApplication(t *testing.T, runner inventory.CommandRunner, endpoint string) *Application {
	t.Helper()

	cfg := config.DefaultConfig()
	if endpoint != "" {
		cfg.Ollama.Endpoint = endpoint
	}

	log := testLogger()
	a := &Application{
		StartTime: time.Now(),
		logger:    log,
		registry:  router.NewRouteRegistry(log),
		errCh:     make(chan error, 1),
	}
	a.config = cfg
	a.inventory = inventory.NewReader(runner, time.Second, log)
	a.relay = relay.NewClient(cfg.Ollama.Endpoint, cfg.Chat.SystemPrompt, time.Second, time.Second, log)
	return a
}

func TestHealthHandler(t *testing.T) {
	a := newTestApplication(t, &fakeRunner{}, "")

	rec := httptest.NewRecorder()
	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/internal/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeJSON, rec.Header().Get(ContentTypeHeader))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestVersionHandler(t *testing.T) {
	a := newTestApplication(t, &fakeRunner{}, "")

	rec := httptest.NewRecorder()
	a.versionHandler(rec, httptest.NewRequest(http.MethodGet, "/internal/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "koda", gjson.Get(rec.Body.String(), "name").String())
	assert.Equal(t, "/api/v0/chat", gjson.Get(rec.Body.String(), "api.endpoints.chat").String())
}

func TestProcessStatsHandler(t *testing.T) {
	a := newTestApplication(t, &fakeRunner{}, "")

	rec := httptest.NewRecorder()
	a.processStatsHandler(rec, httptest.NewRequest(http.MethodGet, "/internal/process", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gjson.Get(rec.Body.String(), "goroutines.count").Int() > 0)
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "runtime.go_version").String())
}

func TestModelsHandler(t *testing.T) {
	t.Run("returns parsed inventory", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(
			"NAME            ID     SIZE    MODIFIED\n" +
				"codellama:13b   abc    7.4 GB  2 weeks ago\n",
		)}
		a := newTestApplication(t, runner, "")

		rec := httptest.NewRecorder()
		a.modelsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v0/models", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		models := gjson.Get(rec.Body.String(), "models").Array()
		require.Len(t, models, 1)
		assert.Equal(t, "codellama", models[0].Get("name").String())
		assert.Equal(t, "codellama:13b", models[0].Get("full_name").String())
		assert.Equal(t, "7.4 GB", models[0].Get("size").String())
	})

	t.Run("returns placeholder when inventory fails", func(t *testing.T) {
		runner := &fakeRunner{err: context.DeadlineExceeded}
		a := newTestApplication(t, runner, "")

		rec := httptest.NewRecorder()
		a.modelsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v0/models", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		models := gjson.Get(rec.Body.String(), "models").Array()
		require.Len(t, models, 1)
		assert.Equal(t, "llama2", models[0].Get("name").String())
	})
}

func TestChatHandler(t *testing.T) {
	t.Run("relays message and returns reply", func(t *testing.T) {
		var captured []byte
		ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"sure thing"}}`))
		}))
		defer ollama.Close()

		a := newTestApplication(t, &fakeRunner{}, ollama.URL)

		body := strings.NewReader(`{"message":"hi","history":[{"user":"a","assistant":"b"}],"model":"llama2:7b","temperature":0.3}`)
		rec := httptest.NewRecorder()
		a.chatHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/chat", body))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sure thing", gjson.Get(rec.Body.String(), "reply").String())
		assert.Equal(t, "llama2:7b", gjson.Get(rec.Body.String(), "model").String())

		// system + one turn pair + new message
		assert.Equal(t, int64(4), gjson.GetBytes(captured, "messages.#").Int())
		assert.InDelta(t, 0.3, gjson.GetBytes(captured, "options.temperature").Float(), 1e-9)
	})

	t.Run("applies configured defaults for model and temperature", func(t *testing.T) {
		var captured []byte
		ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"message":{"content":"ok"}}`))
		}))
		defer ollama.Close()

		a := newTestApplication(t, &fakeRunner{}, ollama.URL)

		rec := httptest.NewRecorder()
		a.chatHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/chat", strings.NewReader(`{"message":"hi"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "llama2", gjson.GetBytes(captured, "model").String())
		assert.InDelta(t, 0.7, gjson.GetBytes(captured, "options.temperature").Float(), 1e-9)
	})

	t.Run("surfaces relay failure as error reply not HTTP error", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "http://127.0.0.1:1")

		rec := httptest.NewRecorder()
		a.chatHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/chat", strings.NewReader(`{"message":"hi"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(gjson.Get(rec.Body.String(), "reply").String(), "Error: "))
	})

	t.Run("rejects empty message", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "")

		rec := httptest.NewRecorder()
		a.chatHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/chat", strings.NewReader(`{"message":""}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "")

		rec := httptest.NewRecorder()
		a.chatHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/chat", strings.NewReader(`not json`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects non-POST", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "")

		rec := httptest.NewRecorder()
		a.chatHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v0/chat", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestGenerateHandler(t *testing.T) {
	t.Run("sends single user message without system prompt", func(t *testing.T) {
		var captured []byte
		ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = io.ReadAll(r.Body)
			_, _ = w.Write([]byte(`{"message":{"content":"done"}}`))
		}))
		defer ollama.Close()

		a := newTestApplication(t, &fakeRunner{}, ollama.URL)

		body := strings.NewReader(`{"model":"qwen2.5-coder:1.5b","prompt":"reverse a string"}`)
		rec := httptest.NewRecorder()
		a.generateHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/generate", body))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "done", gjson.Get(rec.Body.String(), "reply").String())
		assert.Equal(t, int64(1), gjson.GetBytes(captured, "messages.#").Int())
		assert.Equal(t, "user", gjson.GetBytes(captured, "messages.0.role").String())
	})

	t.Run("rejects empty prompt", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "")

		rec := httptest.NewRecorder()
		a.generateHandler(rec, httptest.NewRequest(http.MethodPost, "/api/v0/generate", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUIHandler(t *testing.T) {
	t.Run("serves embedded widget at root", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "")

		rec := httptest.NewRecorder()
		a.uiHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ContentTypeHTML, rec.Header().Get(ContentTypeHeader))
		assert.Contains(t, rec.Body.String(), "koda")
	})

	t.Run("unknown paths return 404", func(t *testing.T) {
		a := newTestApplication(t, &fakeRunner{}, "")

		rec := httptest.NewRecorder()
		a.uiHandler(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
