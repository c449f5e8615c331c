package httpmiddleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	// AllowOrigins lists the origins allowed to call the API. Empty, or a
	// single "*" entry, allows every origin.
	AllowOrigins []string

	// AllowMethods lists the methods clients may use. Defaults to the
	// read-only set "GET, HEAD, OPTIONS" when empty.
	AllowMethods []string

	// AllowHeaders lists the request headers clients may send. When empty,
	// preflight responses echo back Access-Control-Request-Headers.
	AllowHeaders []string

	// ExposeHeaders lists response headers scripts may read.
	ExposeHeaders []string

	// AllowCredentials permits cookies and auth headers on cross-origin
	// requests. Incompatible with the wildcard origin, so enabling it forces
	// specific-origin echo-back.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds. Zero omits the
	// header; negative sends "0" to disable caching.
	MaxAge int
}

// corsPolicy is a CORSConfig resolved into precomputed header values.
type corsPolicy struct {
	allowAll      bool
	origins       map[string]string // lowercase -> configured spelling
	methods       string
	headers       string
	exposeHeaders string
	credentials   bool
	maxAge        string
}

func newCORSPolicy(cfg CORSConfig) corsPolicy {
	p := corsPolicy{
		allowAll:      len(cfg.AllowOrigins) == 0,
		origins:       make(map[string]string, len(cfg.AllowOrigins)),
		methods:       strings.Join(cfg.AllowMethods, ", "),
		headers:       strings.Join(cfg.AllowHeaders, ", "),
		exposeHeaders: strings.Join(cfg.ExposeHeaders, ", "),
		credentials:   cfg.AllowCredentials,
	}
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			p.allowAll = true
			break
		}
		p.origins[strings.ToLower(o)] = o
	}
	// The wildcard origin is invalid with credentials; echo specific origins.
	if p.credentials {
		p.allowAll = false
	}
	if p.methods == "" {
		p.methods = "GET, HEAD, OPTIONS"
	}
	switch {
	case cfg.MaxAge > 0:
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	case cfg.MaxAge < 0:
		p.maxAge = "0"
	}
	return p
}

// allowOrigin resolves the Access-Control-Allow-Origin value for a request
// origin, "" when the origin is not allowed. Matching is case-insensitive;
// the configured spelling is echoed back.
func (p corsPolicy) allowOrigin(origin string) string {
	if p.allowAll {
		return "*"
	}
	return p.origins[strings.ToLower(origin)]
}

// CORS returns a middleware handling cross-origin resource sharing, including
// OPTIONS preflight. Responses vary on Origin (and the preflight request
// headers) so shared caches never serve one origin's answer to another.
func CORS(cfg CORSConfig) Middleware {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Same-origin request: nothing to add beyond the cache hint.
			if origin == "" {
				if !policy.allowAll {
					w.Header().Add("Vary", "Origin")
				}
				next.ServeHTTP(w, r)
				return
			}

			allowOrigin := policy.allowOrigin(origin)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				policy.preflight(w, r, allowOrigin)
				return
			}

			if !policy.allowAll {
				w.Header().Add("Vary", "Origin")
			}
			if allowOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				if policy.credentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				if policy.exposeHeaders != "" {
					w.Header().Set("Access-Control-Expose-Headers", policy.exposeHeaders)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// preflight answers an OPTIONS probe. Disallowed origins get a bare 204 with
// no CORS headers, which the browser treats as a denial.
func (p corsPolicy) preflight(w http.ResponseWriter, r *http.Request, allowOrigin string) {
	w.Header().Add("Vary", "Origin")
	w.Header().Add("Vary", "Access-Control-Request-Method")
	w.Header().Add("Vary", "Access-Control-Request-Headers")

	if allowOrigin == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", p.methods)

	if p.headers != "" {
		w.Header().Set("Access-Control-Allow-Headers", p.headers)
	} else if rh := r.Header.Get("Access-Control-Request-Headers"); rh != "" {
		w.Header().Set("Access-Control-Allow-Headers", rh)
	}

	if p.credentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	if p.maxAge != "" {
		w.Header().Set("Access-Control-Max-Age", p.maxAge)
	}
	w.WriteHeader(http.StatusNoContent)
}
