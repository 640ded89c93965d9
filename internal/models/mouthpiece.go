package models

// Type is the construction of a mouthpiece.
type Type string

const (
	OnePiece Type = "one-piece"
	TwoPiece Type = "two-piece"
	Cup      Type = "cup"
	Rim      Type = "rim"
)

// Threads is the thread standard of a detachable mouthpiece.
type Threads string

const (
	ThreadsNone     Threads = ""
	ThreadsStandard Threads = "standard"
	ThreadsMetric   Threads = "metric"
	ThreadsOther    Threads = "other"
)

// Finish is the plating or material of a mouthpiece.
type Finish string

const (
	SilverPlated Finish = "silver-plated"
	GoldPlated   Finish = "gold-plated"
	Brass        Finish = "brass"
	Nickel       Finish = "nickel"
	Stainless    Finish = "stainless"
	Bronze       Finish = "bronze"
	Plastic      Finish = "plastic"
)

// Prompt order. Positions are 1-based in menus and must stay stable.
var (
	Types         = []Type{OnePiece, TwoPiece, Cup, Rim}
	ThreadOptions = []Threads{ThreadsStandard, ThreadsMetric, ThreadsOther}
	Finishes      = []Finish{SilverPlated, GoldPlated, Brass, Nickel, Stainless, Bronze, Plastic}
)

// Mouthpiece is one physical mouthpiece in a user's collection.
type Mouthpiece struct {
	// ID is assigned by the backend on creation and never changes.
	ID      string
	Make    string
	Model   string
	Type    Type
	Threads Threads
	Finish  Finish
	Note    string
}

// EffectiveThreads returns the threads value, which is always empty for
// one-piece mouthpieces regardless of what is stored.
func (m Mouthpiece) EffectiveThreads() Threads {
	if m.Type == OnePiece {
		return ThreadsNone
	}
	return m.Threads
}

// Normalize drops threads on one-piece mouthpieces.
func (m Mouthpiece) Normalize() Mouthpiece {
	m.Threads = m.EffectiveThreads()
	return m
}

// SameFields reports whether two mouthpieces are equal ignoring their IDs.
func (m Mouthpiece) SameFields(o Mouthpiece) bool {
	m.ID, o.ID = "", ""
	return m.Normalize() == o.Normalize()
}

// StoredMouthpiece is a mouthpiece as kept by the backend, scoped to its owner.
type StoredMouthpiece struct {
	Mouthpiece
	OwnerID string
	// Version orders records by creation for stable listing.
	Version int64
}
