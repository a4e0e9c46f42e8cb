package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrifields/internal/domain"
	"agrifields/internal/infra/geoip"
)

type assertError string

func (e assertError) Error() string { return string(e) }

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		fallback domain.Language
		region   geoip.Region
		want     domain.Language
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "TE_IN")
				r.Header.Set("Accept-Language", "hi")
			},
			want: domain.LanguageTelugu,
		},
		{
			name: "unsupported x-locale ignored",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "fr")
				r.Header.Set("Accept-Language", "mr-IN,en;q=0.5")
			},
			want: domain.LanguageMarathi,
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "kn-IN,kn;q=0.9")
			},
			want: domain.LanguageKannada,
		},
		{
			name:   "region hint",
			region: geoip.Region{Country: "IN", Subdivision: "TN"},
			want:   domain.LanguageTamil,
		},
		{
			name:     "region outside india uses fallback",
			region:   geoip.Region{Country: "US", Subdivision: "CA"},
			fallback: domain.LanguageHindi,
			want:     domain.LanguageHindi,
		},
		{
			name: "default to en",
			want: domain.LanguageEnglish,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			got := DetectLanguage(req, tc.fallback, tc.region)
			if got != tc.want {
				t.Fatalf("DetectLanguage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		resolver RegionLookup
		want     geoip.Region
	}{
		{
			name: "header precedence",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "in")
				r.Header.Set("X-Region-Code", "ka")
				r.Header.Set("CF-IPCountry", "us")
			},
			want: geoip.Region{Country: "IN", Subdivision: "KA"},
		},
		{
			name: "resolver fallback",
			resolver: func(ip string) (geoip.Region, error) {
				if ip != "203.0.113.4" {
					t.Fatalf("unexpected ip: %s", ip)
				}
				return geoip.Region{Country: "IN", Subdivision: "MH"}, nil
			},
			want: geoip.Region{Country: "IN", Subdivision: "MH"},
		},
		{
			name: "resolver error returns empty",
			resolver: func(ip string) (geoip.Region, error) {
				return geoip.Region{}, assertError("boom")
			},
			want: geoip.Region{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			got := ResolveRegion(req, tc.resolver)
			if got != tc.want {
				t.Fatalf("ResolveRegion() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLanguageMiddleware(t *testing.T) {
	var got domain.Language
	var region geoip.Region
	h := Language(domain.LanguageEnglish, func(string) (geoip.Region, error) {
		return geoip.Region{Country: "IN", Subdivision: "TG"}, nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LanguageFromContext(r.Context())
		region = RegionFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != domain.LanguageTelugu || region.Subdivision != "TG" {
		t.Fatalf("language = %q region = %+v", got, region)
	}
}

func TestLanguageFromContext(t *testing.T) {
	if got := LanguageFromContext(context.Background()); got != domain.LanguageEnglish {
		t.Fatalf("LanguageFromContext() default = %q", got)
	}
}
