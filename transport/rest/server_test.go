package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func gatedConfig(answer string) *config.Config {
	return &config.Config{
		Gate: config.Gate{Question: "what is the answer", Answer: answer},
	}
}

func postAnswer(t *testing.T, conf *config.Config, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/answer", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handleAnswer(testLogger(), recorder, req, conf)

	return recorder
}

func TestHandleAnswer(t *testing.T) {
	t.Run("The right answer earns the pass cookie", func(t *testing.T) {
		// Given: a gate expecting "42"
		conf := gatedConfig("42")

		// When: answering correctly
		recorder := postAnswer(t, conf, `{"answer":"42"}`)

		// Then: the response is positive and carries the cookie
		var result answerResult
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
		assert.True(t, result.Correct)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, passCookieName, cookies[0].Name)
		assert.Equal(t, "42", cookies[0].Value)
	})

	t.Run("The comparison ignores case and surrounding spaces", func(t *testing.T) {
		// Given: a gate expecting "Fortytwo"
		conf := gatedConfig("Fortytwo")

		// When: answering in a different case with padding
		recorder := postAnswer(t, conf, `{"answer":"  FORTYTWO "}`)

		// Then: the answer still counts
		var result answerResult
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
		assert.True(t, result.Correct)
	})

	t.Run("A wrong answer earns no cookie", func(t *testing.T) {
		// Given: a gate expecting "42"
		conf := gatedConfig("42")

		// When: answering wrongly
		recorder := postAnswer(t, conf, `{"answer":"41"}`)

		// Then: the response is negative and cookie-free
		var result answerResult
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
		assert.False(t, result.Correct)
		assert.Empty(t, recorder.Result().Cookies())
	})

	t.Run("A disabled gate accepts anything", func(t *testing.T) {
		// Given: no configured answer
		conf := gatedConfig("")

		// When: posting an empty body
		recorder := postAnswer(t, conf, "")

		// Then: the caller passes
		var result answerResult
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
		assert.True(t, result.Correct)
	})

	t.Run("A malformed body is a bad request", func(t *testing.T) {
		// Given: a gate expecting "42"
		conf := gatedConfig("42")

		// When: posting garbage
		recorder := postAnswer(t, conf, "{not json")

		// Then: the request is rejected
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
