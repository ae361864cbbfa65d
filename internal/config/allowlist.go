package config

import (
	"sort"
	"strings"
	"sync"
)

// Allowlist is the set of emails granted administrative capability.
// It is process configuration: callers must consult it on every check.
type Allowlist struct {
	mu     sync.RWMutex
	emails map[string]struct{}
}

func NewAllowlist(csv string) *Allowlist {
	a := &Allowlist{}
	a.Replace(csv)
	return a
}

// Replace swaps the allowlist for the comma-separated emails in csv.
func (a *Allowlist) Replace(csv string) {
	emails := make(map[string]struct{})
	for _, e := range strings.Split(csv, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails[e] = struct{}{}
		}
	}

	a.mu.Lock()
	a.emails = emails
	a.mu.Unlock()
}

func (a *Allowlist) Contains(email string) bool {
	if a == nil || email == "" {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (a *Allowlist) Emails() []string {
	a.mu.RLock()
	out := make([]string, 0, len(a.emails))
	for e := range a.emails {
		out = append(out, e)
	}
	a.mu.RUnlock()
	sort.Strings(out)
	return out
}
