package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/osintbo/rastro/internal/config"
	"github.com/osintbo/rastro/internal/model"
)

const duckduckgoResultsPage = `<html><body>
<a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.instagram.com%2Fana.paz%2F&rut=abc">Ana Paz (@ana.paz)</a>
<a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fanapaz">Ana Paz homepage</a>
<a href="https://www.linkedin.com/in/ana-paz">Ana Paz - LinkedIn</a>
<a href="https://duckduckgo.com/settings">settings</a>
<a href="/html/?q=next">next page</a>
<a href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.instagram.com%2Fana.paz%2F">duplicate</a>
</body></html>`

// TestDuckDuckGoSearch tests redirect unwrapping and the social-domain filter.
func TestDuckDuckGoSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got == "" {
			t.Error("expected q parameter")
		}
		if got := r.URL.Query().Get("kl"); got != "xl-es" {
			t.Errorf("unexpected region parameter: %q", got)
		}
		_, _ = w.Write([]byte(duckduckgoResultsPage))
	}))
	defer server.Close()

	provider := NewDuckDuckGo(config.DefaultDomains(), WithDuckDuckGoBaseURL(server.URL))

	results, err := provider.Search(context.Background(), `"Ana Paz" Bolivia`, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{
		"https://www.instagram.com/ana.paz/",
		"https://www.linkedin.com/in/ana-paz",
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("unexpected results (-want +got):\n%s", diff)
	}
}

// TestDuckDuckGoSearchError tests that non-200 responses fail cleanly.
func TestDuckDuckGoSearchError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	provider := NewDuckDuckGo(config.DefaultDomains(), WithDuckDuckGoBaseURL(server.URL))
	results, err := provider.Search(context.Background(), "q", 5)
	if err == nil {
		t.Error("expected error for 403 response")
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

// TestDuckDuckGoPlanQueries tests the single combined fallback query.
func TestDuckDuckGoPlanQueries(t *testing.T) {
	t.Parallel()

	provider := NewDuckDuckGo(config.DefaultDomains())
	queries := provider.PlanQueries(model.Subject{FullName: "Ana Paz", Organization: "UMSA"})

	want := []string{`"Ana Paz" Bolivia Instagram OR Facebook OR Twitter OR LinkedIn`}
	if diff := cmp.Diff(want, queries); diff != "" {
		t.Errorf("unexpected queries (-want +got):\n%s", diff)
	}
}

// TestResolveDuckDuckGoAnchor tests anchor unwrapping edge cases.
func TestResolveDuckDuckGoAnchor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "redirect anchor",
			href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fx.com%2Fana",
			want: "https://x.com/ana",
		},
		{
			name: "relative redirect anchor",
			href: "/l/?uddg=https%3A%2F%2Fx.com%2Fana",
			want: "https://x.com/ana",
		},
		{
			name: "direct external link",
			href: "https://www.tiktok.com/@ana",
			want: "https://www.tiktok.com/@ana",
		},
		{
			name: "internal navigation",
			href: "https://duckduckgo.com/settings",
			want: "",
		},
		{
			name: "relative path",
			href: "/html/?q=next",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveDuckDuckGoAnchor(tt.href); got != tt.want {
				t.Errorf("resolveDuckDuckGoAnchor(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
