// Package filter implements the stateless header filter that runs ahead of
// rate limiting. It checks the Origin header against a hostname allow-list
// and the User-Agent header against a pattern deny-list. Decisions depend
// only on the request headers and the configured rules, never on stored
// state, so the filter is safe to share across goroutines.
package filter

import (
	"net/url"
	"strings"

	"github.com/mssola/useragent"

	"gatekeeper/internal/admission/models"
	platformStrings "gatekeeper/pkg/platform/strings"
)

// Config holds the filter rules. Hostnames and patterns are normalized
// to lowercase at construction.
type Config struct {
	// AllowedOrigins lists acceptable Origin hostnames. An entry of the
	// form "*.example.com" matches any subdomain of example.com but not
	// example.com itself. Empty list means any Origin is accepted.
	AllowedOrigins []string

	// BlockedUserAgents lists case-insensitive substrings. A User-Agent
	// containing any of them is rejected.
	BlockedUserAgents []string

	// BlockBots rejects requests whose User-Agent parses as a known
	// crawler even when no deny pattern matches.
	BlockBots bool
}

// Filter evaluates requests against the configured rules.
type Filter struct {
	exactOrigins    map[string]struct{}
	wildcardOrigins []string // stored as the ".example.com" suffix
	blockedAgents   []string
	blockBots       bool
}

// New builds a Filter from the config. Rule normalization happens here
// so Evaluate does no allocation on the hot path.
func New(cfg Config) *Filter {
	f := &Filter{
		exactOrigins: make(map[string]struct{}, len(cfg.AllowedOrigins)),
		blockBots:    cfg.BlockBots,
	}

	for _, origin := range platformStrings.DedupeAndTrimLower(cfg.AllowedOrigins) {
		if suffix, ok := strings.CutPrefix(origin, "*."); ok {
			f.wildcardOrigins = append(f.wildcardOrigins, "."+suffix)
			continue
		}
		f.exactOrigins[origin] = struct{}{}
	}

	f.blockedAgents = platformStrings.DedupeAndTrimLower(cfg.BlockedUserAgents)

	return f
}

// Evaluate checks the Origin and User-Agent headers and returns the
// first failing rule's reason. The Origin check runs before the
// User-Agent check.
func (f *Filter) Evaluate(origin, userAgent string) models.FilterDecision {
	if !f.originAllowed(origin) {
		return models.Deny(models.ReasonOriginNotAllowed)
	}

	ua := strings.ToLower(userAgent)
	for _, pattern := range f.blockedAgents {
		if strings.Contains(ua, pattern) {
			return models.Deny(models.ReasonUserAgentBlocked)
		}
	}

	if f.blockBots && userAgent != "" {
		if parsed := useragent.New(userAgent); parsed.Bot() {
			return models.Deny(models.ReasonBotDetected)
		}
	}

	return models.Allow()
}

// originAllowed compares the Origin hostname against the allow-list.
// Scheme and port are ignored. Requests without an Origin header pass,
// since same-origin and non-browser clients do not send one. A
// malformed Origin never passes a non-empty allow-list.
func (f *Filter) originAllowed(origin string) bool {
	if origin == "" || (len(f.exactOrigins) == 0 && len(f.wildcardOrigins) == 0) {
		return true
	}

	host := originHostname(origin)
	if host == "" {
		return false
	}

	if _, ok := f.exactOrigins[host]; ok {
		return true
	}
	for _, suffix := range f.wildcardOrigins {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

func originHostname(origin string) string {
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
