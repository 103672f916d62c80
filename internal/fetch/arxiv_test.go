// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/safety-digest/pkg/types"
)

const arxivFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2601.01234v1</id>
    <title>Eliciting Latent  Knowledge
      from Language Models</title>
    <summary>  We study whether probes recover beliefs the model does not verbalize.  </summary>
    <published>2026-01-04T18:30:00Z</published>
    <author><name>Alice Example</name></author>
    <author><name>Bob Example</name></author>
  </entry>
  <entry>
    <id></id>
    <title>Malformed entry without an id</title>
  </entry>
</feed>`

func TestArxivFetch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		assert.Equal(t, "submittedDate", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "25", r.URL.Query().Get("max_results"))
		fmt.Fprint(w, arxivFixture)
	}))
	defer ts.Close()

	orig := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = orig }()

	src := NewArxivSource(types.ArxivSource{
		Keywords:   []string{"alignment", "interpretability"},
		Categories: []string{"cs.AI", "cs.LG"},
		MaxResults: 25,
	}, types.HTTPConfig{Timeout: 5 * time.Second})

	papers, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, papers, 1)

	assert.Equal(t, `(ti:"alignment" OR ti:"interpretability") AND (cat:cs.AI OR cat:cs.LG)`, gotQuery)

	p := papers[0]
	assert.Equal(t, "Eliciting Latent Knowledge from Language Models", p.Title)
	assert.Equal(t, "We study whether probes recover beliefs the model does not verbalize.", p.Abstract)
	assert.Equal(t, "arXiv", p.Organization)
	assert.Equal(t, types.SourceArxiv, p.SourceType)
	assert.Equal(t, "http://arxiv.org/abs/2601.01234v1", p.URL)
	assert.Equal(t, []string{"Alice Example", "Bob Example"}, p.Authors)
	assert.Equal(t, time.Date(2026, 1, 4, 18, 30, 0, 0, time.UTC), p.PublishedDate)
}

func TestArxivFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	orig := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = orig }()

	src := NewArxivSource(types.ArxivSource{
		Keywords:   []string{"alignment"},
		Categories: []string{"cs.AI"},
	}, types.HTTPConfig{Timeout: 5 * time.Second})

	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "HTTP 400")
}

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		name       string
		keywords   []string
		categories []string
		want       string
	}{
		{"both", []string{"safety"}, []string{"cs.AI"}, `(ti:"safety") AND (cat:cs.AI)`},
		{"keywords only", []string{"safety"}, nil, `(ti:"safety")`},
		{"categories only", nil, []string{"cs.AI"}, `(cat:cs.AI)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArxivQuery(tt.keywords, tt.categories))
		})
	}
}
