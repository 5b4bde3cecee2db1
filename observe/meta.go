package observe

// LoadMeta identifies a cache operation for telemetry.
type LoadMeta struct {
	Cache  string // cache name, may be empty
	Loader string // loader name, see loader.NameOf
}

// SpanName returns the span name for a load.
// Format: cache.load.<loader>
func (m LoadMeta) SpanName() string {
	return "cache.load." + m.Loader
}

// Fields returns the log fields describing m.
func (m LoadMeta) Fields() []Field {
	fields := []Field{F("loader.name", m.Loader)}
	if m.Cache != "" {
		fields = append(fields, F("cache.name", m.Cache))
	}
	return fields
}
