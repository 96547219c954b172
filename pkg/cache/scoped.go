package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis without colliding.
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) BoundsKey(instanceHash string, opts BoundsKeyOpts) string {
	return k.prefix + k.inner.BoundsKey(instanceHash, opts)
}

func (k *ScopedKeyer) ScheduleKey(instanceHash string, opts ScheduleKeyOpts) string {
	return k.prefix + k.inner.ScheduleKey(instanceHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(scheduleHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scheduleHash, opts)
}
