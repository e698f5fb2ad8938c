package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURLStripsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><head><style>body{color:red}</style>
<script>alert("hi")</script></head>
<body><h1>Refund Policy</h1><p>Refunds are issued within 30 days.</p></body></html>`))
	}))
	defer srv.Close()

	doc, err := FetchURL(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, doc.Name)
	assert.Equal(t, OriginURL, doc.Origin)
	assert.Contains(t, doc.Text, "Refund Policy")
	assert.Contains(t, doc.Text, "Refunds are issued within 30 days.")
	assert.NotContains(t, doc.Text, "alert")
	assert.NotContains(t, doc.Text, "color:red")
}

func TestFetchURLNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchURL(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchURLEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><script>only_code()</script></body></html>"))
	}))
	defer srv.Close()

	_, err := FetchURL(context.Background(), srv.URL)
	require.Error(t, err)
}
