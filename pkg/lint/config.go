package lint

// Config selects which checks run and at what severity. The zero value and
// nil are both usable and mean "all rules, default severities".
type Config struct {
	// DisabledRules holds IDs of checks that never run.
	DisabledRules map[string]bool

	// SeverityOverrides replaces a rule's registered severity when set.
	SeverityOverrides map[string]Severity
}

// NewConfig returns a config with every rule enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
	}
}

// IsDisabled reports whether ruleID is switched off.
func (c *Config) IsDisabled(ruleID string) bool {
	return c != nil && c.DisabledRules[ruleID]
}

// Severity resolves the effective severity for ruleID, falling back to
// defaultSeverity when no override exists.
func (c *Config) Severity(ruleID string, defaultSeverity Severity) Severity {
	if c == nil {
		return defaultSeverity
	}
	if sev, ok := c.SeverityOverrides[ruleID]; ok {
		return sev
	}
	return defaultSeverity
}

// Disable switches a rule off. Returns c for chaining.
func (c *Config) Disable(ruleID string) *Config {
	if c.DisabledRules == nil {
		c.DisabledRules = make(map[string]bool)
	}
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity pins a rule to the given severity. Returns c for chaining.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	if c.SeverityOverrides == nil {
		c.SeverityOverrides = make(map[string]Severity)
	}
	c.SeverityOverrides[ruleID] = severity
	return c
}
