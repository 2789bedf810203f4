package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talksy/pkg/failure"
	"talksy/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Alan_Turing":
			_, _ = w.Write([]byte(`{"type":"standard","title":"Alan Turing","extract":"Alan Turing was a mathematician. He was born in London. He worked at Bletchley Park. He died in 1954."}`))
		case "/Mercury":
			_, _ = w.Write([]byte(`{"type":"disambiguation","title":"Mercury","extract":"Mercury may refer to:"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	w := NewWithBaseURL(httpclient.New(time.Second), srv.URL+"/")

	got, err := w.Summary(context.Background(), "search for Alan Turing on wikipedia", 2)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing was a mathematician. He was born in London.", got)

	_, err = w.Summary(context.Background(), "Mercury", 3)
	assert.True(t, failure.Is(err, failure.NotFound))

	_, err = w.Summary(context.Background(), "Nothing Here", 3)
	assert.Equal(t, "No information found for 'Nothing Here'.", failure.Text(err))

	_, err = w.Summary(context.Background(), "on wikipedia", 3)
	assert.True(t, failure.Is(err, failure.InvalidInput))
}

func TestFirstSentences(t *testing.T) {
	text := "Go is a language. It was designed at Google! Is it fast? Yes."
	assert.Equal(t, "Go is a language.", FirstSentences(text, 1))
	assert.Equal(t, "Go is a language. It was designed at Google! Is it fast?", FirstSentences(text, 3))
	assert.Equal(t, text, FirstSentences(text, 10))
	assert.Equal(t, text, FirstSentences(text, 0))
}

func TestCleanQuery(t *testing.T) {
	assert.Equal(t, "Black Holes", CleanQuery("Search for Black Holes on Wikipedia"))
	assert.Equal(t, "quantum computing", CleanQuery("wikipedia   quantum computing"))
}
