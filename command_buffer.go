package genid

import "sync"

// maxPooledCommands bounds the capacity a pooled buffer may keep.
const maxPooledCommands = 4096

// CommandBuffer accumulates deferred creates and kills for one entity kind.
type CommandBuffer[E DynamicEntity] struct {
	commands []Command[E]
	kills    int
	drains   uint64
}

// Mark is a restore point taken with CommandBuffer.Snapshot.
type Mark struct {
	commands int
	kills    int
	drains   uint64
}

// NewCommandBuffer creates an empty buffer.
func NewCommandBuffer[E DynamicEntity]() *CommandBuffer[E] {
	return &CommandBuffer[E]{}
}

// Len reports how many commands are queued.
func (b *CommandBuffer[E]) Len() int {
	return len(b.commands)
}

// Kills reports how many kills are queued.
func (b *CommandBuffer[E]) Kills() int {
	return b.kills
}

// Creates reports how many creates are queued.
func (b *CommandBuffer[E]) Creates() int {
	return len(b.commands) - b.kills
}

// Push appends a command to the buffer.
func (b *CommandBuffer[E]) Push(cmd Command[E]) {
	if cmd == nil {
		return
	}
	if _, ok := cmd.(killCommand[E]); ok {
		b.kills++
	}
	b.commands = append(b.commands, cmd)
}

// Kill queues a kill of id. The none handle is dropped.
func (b *CommandBuffer[E]) Kill(id ID[E]) {
	if id.IsNone() {
		return
	}
	b.Push(NewKillCommand(id))
}

// Create queues a creation whose handle is written to target.
func (b *CommandBuffer[E]) Create(target *Valid[E]) {
	b.Push(NewCreateCommand(target))
}

// Drain returns queued commands and resets the buffer.
func (b *CommandBuffer[E]) Drain() []Command[E] {
	drained := b.commands
	b.commands = nil
	b.kills = 0
	b.drains++
	return drained
}

// Snapshot marks the current queue so that Restore can discard later commands.
func (b *CommandBuffer[E]) Snapshot() Mark {
	return Mark{commands: len(b.commands), kills: b.kills, drains: b.drains}
}

// Restore discards every command queued after m. A mark taken before a Drain
// leaves the buffer untouched.
func (b *CommandBuffer[E]) Restore(m Mark) {
	if m.drains != b.drains || m.commands >= len(b.commands) {
		return
	}
	b.commands = b.commands[:m.commands]
	b.kills = m.kills
}

// CommandBufferPool reuses buffers across frames of deferred work.
type CommandBufferPool[E DynamicEntity] struct {
	pool sync.Pool
}

// NewCommandBufferPool constructs a pool that returns fresh buffers.
func NewCommandBufferPool[E DynamicEntity]() *CommandBufferPool[E] {
	p := &CommandBufferPool[E]{}
	p.pool.New = func() any { return NewCommandBuffer[E]() }
	return p
}

// Get retrieves an empty buffer from the pool.
func (p *CommandBufferPool[E]) Get() *CommandBuffer[E] {
	return p.pool.Get().(*CommandBuffer[E])
}

// Put clears buf and returns it to the pool. Buffers that grew past
// maxPooledCommands are left to the garbage collector.
func (p *CommandBufferPool[E]) Put(buf *CommandBuffer[E]) {
	if buf == nil || cap(buf.commands) > maxPooledCommands {
		return
	}
	clear(buf.commands)
	buf.commands = buf.commands[:0]
	buf.kills = 0
	buf.drains++
	p.pool.Put(buf)
}
