package settings

import (
	"log/slog"
	"sort"
	"strings"
)

type cmdCacheEntry struct {
	key     string
	profile *Profile
}

// ProfileForCommandLine finds the profile whose configured launch command is
// the longest normalized prefix of the given command line, or nil when no
// profile matches.
//
// The (normalized key, profile) cache is built exactly once, on first use;
// concurrent first callers block on the same construction and then share the
// read-only cache for the lifetime of this Settings object. Normalization
// failures for individual profiles exclude that profile from the cache and
// never abort a lookup.
func (s *Settings) ProfileForCommandLine(commandLine string) *Profile {
	if s.normalize == nil {
		return nil
	}
	s.cmdCacheOnce.Do(s.buildCommandLineCache)

	needle, err := s.normalize(commandLine)
	if err != nil {
		slog.Debug("failed to normalize command line", "commandline", commandLine, "error", err)
		return nil
	}

	// Entries are sorted by descending key length, so the first prefix hit
	// is the longest match. A key longer than the needle can never be a
	// prefix of it; binary-search past all of those.
	i := sort.Search(len(s.cmdCache), func(i int) bool {
		return len(s.cmdCache[i].key) <= len(needle)
	})
	for ; i < len(s.cmdCache); i++ {
		if strings.HasPrefix(needle, s.cmdCache[i].key) {
			return s.cmdCache[i].profile
		}
	}
	return nil
}

func (s *Settings) buildCommandLineCache() {
	s.cmdCache = make([]cmdCacheEntry, 0, len(s.allProfiles))
	for _, p := range s.allProfiles {
		cmd := p.Commandline()
		if cmd == "" {
			continue
		}
		key, err := s.normalize(cmd)
		if err != nil {
			// A profile whose command line cannot be resolved is simply
			// not matchable.
			slog.Debug("excluding profile from command line cache",
				"profile", p.Name(), "error", err)
			continue
		}
		s.cmdCache = append(s.cmdCache, cmdCacheEntry{key: key, profile: p})
	}
	sort.SliceStable(s.cmdCache, func(i, j int) bool {
		return len(s.cmdCache[i].key) > len(s.cmdCache[j].key)
	})
}
