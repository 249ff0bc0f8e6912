package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new packing sessions
	DefaultContainer     Dimensions   `json:"default_container"`
	DefaultAllowRotation RotationMode `json:"default_allow_rotation"`
	DefaultHeuristic     Heuristic    `json:"default_heuristic"`
	DefaultBinPolicy     BinPolicy    `json:"default_bin_policy"`
	DefaultAlgorithm     Algorithm    `json:"default_algorithm"`
	DefaultEpsilon       float64      `json:"default_epsilon"`

	// Application preferences
	ServerAddr     string   `json:"server_addr"`
	RecentSessions []string `json:"recent_sessions"`
	Units          string   `json:"units"` // display only, e.g. "cm"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultContainer:     Dims(120, 100, 80),
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultHeuristic:     defaults.Heuristic,
		DefaultBinPolicy:     defaults.BinPolicy,
		DefaultAlgorithm:     defaults.Algorithm,
		DefaultEpsilon:       defaults.Epsilon,
		ServerAddr:           ":8080",
		RecentSessions:       []string{},
		Units:                "cm",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.AllowRotation = c.DefaultAllowRotation
	s.Heuristic = c.DefaultHeuristic
	s.BinPolicy = c.DefaultBinPolicy
	s.Algorithm = c.DefaultAlgorithm
	s.Epsilon = c.DefaultEpsilon
}

// AddRecentSession records path as the most recently used session file,
// keeping at most limit entries without duplicates.
func (c *AppConfig) AddRecentSession(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentSessions {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentSessions = recent
}
