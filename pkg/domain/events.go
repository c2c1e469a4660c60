package domain

// QueryKind names a reachability query routed through the classifier cache.
type QueryKind string

const (
	QueryAncestors   QueryKind = "ancestors"
	QueryDescendants QueryKind = "descendants"
)

// Hooks defines callbacks for classifier observability.
// Nil fields are skipped.
type Hooks struct {
	OnClassify    func(Verdict)
	OnCacheLookup func(kind QueryKind, hit bool)
}

// Classified fires OnClassify if set.
func (h Hooks) Classified(v Verdict) {
	if h.OnClassify != nil {
		h.OnClassify(v)
	}
}

// CacheLookup fires OnCacheLookup if set.
func (h Hooks) CacheLookup(kind QueryKind, hit bool) {
	if h.OnCacheLookup != nil {
		h.OnCacheLookup(kind, hit)
	}
}

// Merge returns hooks that call h first, then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnClassify: func(v Verdict) {
			h.Classified(v)
			other.Classified(v)
		},
		OnCacheLookup: func(kind QueryKind, hit bool) {
			h.CacheLookup(kind, hit)
			other.CacheLookup(kind, hit)
		},
	}
}
