package links

import (
	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/storage"
)

const linkName = "links.Link"

// Link is an optional single-valued reference from each source to a target.
type Link[S, T genid.Entity] struct {
	targets   storage.RawComponent[S, genid.ID[T]]
	sourceSum genid.AllocGen[S]
	targetSum genid.AllocGen[T]
}

func NewLink[S, T genid.Entity]() *Link[S, T] {
	return &Link[S, T]{}
}

// Set points source at target, replacing any previous target.
func (l *Link[S, T]) Set(source genid.Valid[S], target genid.Valid[T]) {
	l.targets.InsertWith(source.ID(), target.ID(), genid.None[T])
}

// Clear removes the reference held by source.
func (l *Link[S, T]) Clear(source genid.Valid[S]) bool {
	return l.clear(source.ID())
}

func (l *Link[S, T]) clear(source genid.ID[S]) bool {
	slot := l.targets.Ptr(source)
	if slot == nil || slot.IsNone() {
		return false
	}
	*slot = genid.None[T]()
	return true
}

// Get returns the target referenced by source.
func (l *Link[S, T]) Get(source genid.ID[S]) (genid.ID[T], bool) {
	t, ok := l.targets.Get(source)
	if !ok || t.IsNone() {
		return genid.None[T](), false
	}
	return t, true
}

// KillTarget clears every reference to target and records the kill.
func (l *Link[S, T]) KillTarget(target genid.ID[T]) {
	mustBeDynamic[T]("KillTarget")
	values := l.targets.Values()
	for i := range values {
		if values[i] == target {
			values[i] = genid.None[T]()
		}
	}
	l.targetSum.Advance(target)
}

// KillTargets clears references to every handle of the batch in one pass.
func (l *Link[S, T]) KillTargets(killed *genid.Killed[T]) {
	mustBeDynamic[T]("KillTargets")
	genid.AssertSynced(l.targetSum, killed.Before(), linkName+".targets")
	values := l.targets.Values()
	for i, t := range values {
		if !t.IsNone() && killed.Contains(t) {
			values[i] = genid.None[T]()
		}
	}
	for id := range killed.All() {
		l.targetSum.Advance(id)
	}
	genid.AssertSynced(l.targetSum, killed.After(), linkName+".targets")
}

// KillSource clears the reference held by source and records the kill.
func (l *Link[S, T]) KillSource(source genid.ID[S]) {
	mustBeDynamic[S]("KillSource")
	l.clear(source)
	l.sourceSum.Advance(source)
}

func (l *Link[S, T]) KillSources(killed *genid.Killed[S]) {
	killed.Replay(linkName+".sources", l.SourceChecksum, l.KillSource)
}

func (l *Link[S, T]) SourceChecksum() genid.AllocGen[S] {
	return l.sourceSum
}

func (l *Link[S, T]) TargetChecksum() genid.AllocGen[T] {
	return l.targetSum
}

// Sync drops references to targets killed without notifying the link, then adopts
// the allocator's checksum. It returns the number of references cleared.
func (l *Link[S, T]) Sync(targets genid.Tracker[T]) int {
	state, missed := targets.Compare(l.targetSum)
	if state == genid.InSync {
		return 0
	}
	cleared := 0
	values := l.targets.Values()
	for i, t := range values {
		if t.IsNone() {
			continue
		}
		stale := t == missed
		if state == genid.Outdated {
			stale = !targets.IsAlive(t)
		}
		if stale {
			values[i] = genid.None[T]()
			cleared++
		}
	}
	l.targetSum = targets.Checksum()
	return cleared
}

// Validate asserts the link is synchronized with both allocators. A nil validator is
// accepted for a static side.
func (l *Link[S, T]) Validate(sources genid.Validator[S], targets genid.Validator[T]) *LinkView[S, T] {
	return &LinkView[S, T]{
		l:       l,
		sources: proofFor(l.sourceSum, sources, linkName+".sources"),
		targets: proofFor(l.targetSum, targets, linkName+".targets"),
	}
}

// LinkView reads a synchronized Link.
type LinkView[S, T genid.Entity] struct {
	l       *Link[S, T]
	sources genid.Proof[S]
	targets genid.Proof[T]
}

func (v *LinkView[S, T]) Get(source genid.Valid[S]) (genid.Valid[T], bool) {
	v.sources.Assert()
	t, ok := v.l.Get(source.ID())
	if !ok {
		return genid.Valid[T]{}, false
	}
	return v.targets.Vouch(t), true
}

func (v *LinkView[S, T]) Release() {
	v.sources.Assert()
	v.targets.Assert()
}
