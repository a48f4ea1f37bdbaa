package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTheoryRouter() *gin.Engine {
	h := NewProgressionHandler()
	router := gin.New()
	router.POST("/progressions/transpose", h.Transpose)
	router.POST("/progressions/humanize", h.Humanize)
	router.GET("/circle/:root", Circle)
	router.GET("/keys", Keys)
	return router
}

func TestProgressionHandler_Transpose(t *testing.T) {
	router := newTheoryRouter()

	w := performRequest(t, router, http.MethodPost, "/progressions/transpose", gin.H{
		"chords": []string{"Cmaj", "Fmaj", "Gmaj"},
		"key":    "Bb",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []any{"Bbmaj", "Ebmaj", "Fmaj"}, body["chords"])
	assert.Equal(t, "Bb Major / G Minor", body["key_label"])
	assert.Equal(t, "C", body["from_key"])

	w = performRequest(t, router, http.MethodPost, "/progressions/transpose", gin.H{"chords": []string{"Cmaj"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodPost, "/progressions/transpose", gin.H{"chords": []string{"Cmaj"}, "key": "H"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressionHandler_Humanize(t *testing.T) {
	router := newTheoryRouter()

	w := performRequest(t, router, http.MethodPost, "/progressions/humanize", gin.H{
		"chords": []string{"Cmaj", "Fmaj"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []any{"Cmaj", "Fmaj"}, body["chords"])
	assert.Equal(t, "C", body["key_of"])

	w = performRequest(t, router, http.MethodPost, "/progressions/humanize", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCircle(t *testing.T) {
	router := newTheoryRouter()

	w := performRequest(t, router, http.MethodGet, "/circle/C", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "A", body["relative_minor"])
	assert.Equal(t, "G", body["dominant"])
	assert.Equal(t, "F", body["subdominant"])

	w = performRequest(t, router, http.MethodGet, "/circle/X", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeys(t *testing.T) {
	w := performRequest(t, newTheoryRouter(), http.MethodGet, "/keys", nil)
	require.Equal(t, http.StatusOK, w.Code)

	keys := decode(t, w)["keys"].([]any)
	require.Len(t, keys, 15)
	first := keys[0].(map[string]any)
	assert.Equal(t, "C", first["key"])
	assert.Equal(t, "C Major / A Minor", first["label"])
	assert.Equal(t, "sharps", first["signature"])
}
