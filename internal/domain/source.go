package domain

// Fetch strategies understood by the downloader.
const (
	StrategyDirect  = "direct"
	StrategyLanding = "landing"
)

// Source is a configured newspaper feed. It is read-only at runtime.
type Source struct {
	Name     string
	URL      string
	Enabled  bool
	Strategy string
	Options  map[string]string
}

// Option returns a strategy option or the fallback when it is unset.
func (s Source) Option(key, fallback string) string {
	if v, ok := s.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// EnabledSources filters the configured list down to enabled entries, keeping order.
func EnabledSources(sources []Source) []Source {
	enabled := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}
