package genid

// Command is a deferred arena mutation. Commands are recorded while the arena's
// handles are being read and applied afterwards with Arena.Apply.
type Command[E DynamicEntity] interface {
	apply(a *Arena[E], kills *[]ID[E])
}

// NewCreateCommand queues a handle creation. If target is non-nil it receives the
// allocated handle.
func NewCreateCommand[E DynamicEntity](target *Valid[E]) Command[E] {
	return createCommand[E]{target: target}
}

// NewKillCommand queues a kill. Kills from one buffer are committed as one batch.
func NewKillCommand[E DynamicEntity](id ID[E]) Command[E] {
	return killCommand[E]{id: id}
}

type createCommand[E DynamicEntity] struct {
	target *Valid[E]
}

type killCommand[E DynamicEntity] struct {
	id ID[E]
}

func (c createCommand[E]) apply(a *Arena[E], _ *[]ID[E]) {
	v := a.alloc.Create()
	if c.target != nil {
		*c.target = v
	}
}

func (c killCommand[E]) apply(_ *Arena[E], kills *[]ID[E]) {
	*kills = append(*kills, c.id)
}

// Apply runs the creates in buf in order, then commits every queued kill as a single
// batch and forwards it to the dependents. The buffer is drained.
func (a *Arena[E]) Apply(buf *CommandBuffer[E]) (*Killed[E], error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	var kills []ID[E]
	for _, cmd := range buf.Drain() {
		cmd.apply(a, &kills)
	}
	return a.Kill(kills...), nil
}

var (
	_ Command[Dynamic] = createCommand[Dynamic]{}
	_ Command[Dynamic] = killCommand[Dynamic]{}
)
