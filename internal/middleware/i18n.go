package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"agrifields/internal/domain"
	"agrifields/internal/i18n"
	"agrifields/internal/infra/geoip"
)

type languageContextKey struct{}
type regionContextKey struct{}

// RegionLookup resolves the coarse region of an IP address.
type RegionLookup func(ip string) (geoip.Region, error)

// Language stores the best UI language for the request in its context. It is
// only a default: a browser's workspace keeps its own language once created.
func Language(fallback domain.Language, lookup RegionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			region := ResolveRegion(r, lookup)
			lang := DetectLanguage(r, fallback, region)
			ctx := context.WithValue(r.Context(), languageContextKey{}, lang)
			if region.Country != "" {
				ctx = context.WithValue(ctx, regionContextKey{}, region)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DetectLanguage prefers X-Locale, then Accept-Language, then the language
// spoken in the client's region, then fallback.
func DetectLanguage(r *http.Request, fallback domain.Language, region geoip.Region) domain.Language {
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		base, _, _ := strings.Cut(strings.ReplaceAll(v, "_", "-"), "-")
		if lang, err := domain.ParseLanguage(base); err == nil {
			return lang
		}
	}
	if lang, ok := i18n.Match(r.Header.Get("Accept-Language")); ok {
		return lang
	}
	if lang, ok := i18n.LanguageForRegion(region.Country, region.Subdivision); ok {
		return lang
	}
	return fallback.OrDefault()
}

// ResolveRegion uses CDN headers when present and the GeoIP lookup otherwise.
func ResolveRegion(r *http.Request, lookup RegionLookup) geoip.Region {
	if r == nil {
		return geoip.Region{}
	}
	for _, key := range []string{"X-Country-Code", "CF-IPCountry", "X-Appengine-Country"} {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return geoip.Region{
				Country:     strings.ToUpper(val),
				Subdivision: strings.ToUpper(strings.TrimSpace(r.Header.Get("X-Region-Code"))),
			}
		}
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if region, err := lookup(ip); err == nil {
				return region
			}
		}
	}
	return geoip.Region{}
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func LanguageFromContext(ctx context.Context) domain.Language {
	if v, ok := ctx.Value(languageContextKey{}).(domain.Language); ok {
		return v
	}
	return domain.DefaultLanguage
}

// RegionFromContext returns the region resolved for the request, if any.
func RegionFromContext(ctx context.Context) geoip.Region {
	if v, ok := ctx.Value(regionContextKey{}).(geoip.Region); ok {
		return v
	}
	return geoip.Region{}
}
