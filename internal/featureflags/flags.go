// Package featureflags evaluates operational kill switches and staged
// rollouts from a flat config string, no external flag service required.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Flags evaluates flags parsed from a comma-separated key=value list, e.g.
// "broadcast_dispatch=on,geo_analytics=50%".
type Flags struct {
	values map[string]string
}

// Parse builds a Flags set from the raw config string. Malformed pairs are
// dropped rather than failing the boot.
func Parse(raw string) *Flags {
	values := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = canon(key)
		value = canon(value)
		if key == "" || value == "" {
			continue
		}
		values[key] = value
	}
	return &Flags{values: values}
}

// Enabled reports whether a flag is on for the given user. Values are
// on/true/1, off/false/0, or "N%" for a deterministic per-user rollout.
// Unknown flags are off.
func (f *Flags) Enabled(name string, userID uint) bool {
	if f == nil {
		return false
	}

	value, ok := f.values[canon(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if pctRaw, isPct := strings.CutSuffix(value, "%"); isPct {
		pct, err := strconv.Atoi(pctRaw)
		if err != nil || pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		// Rollouts need a stable identity to bucket on.
		if userID == 0 {
			return false
		}
		return bucket(name, userID) < pct
	}

	return false
}

// Snapshot evaluates every configured flag for one user. The admin dashboard
// renders this next to the raw values.
func (f *Flags) Snapshot(userID uint) map[string]bool {
	if f == nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(f.values))
	for name := range f.values {
		out[name] = f.Enabled(name, userID)
	}
	return out
}

// Raw returns a copy of the configured flag values.
func (f *Flags) Raw() map[string]string {
	if f == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// bucket hashes flag name and user ID into [0,100) so a user's rollout
// position is stable across restarts but independent per flag.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", canon(name), userID)))
	return int(h.Sum32() % 100)
}
