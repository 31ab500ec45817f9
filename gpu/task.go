package gpu

import (
	"github.com/gogpu/wgpu/core"

	"github.com/blockcompress/bc/bc"
)

// Task describes one image's worth of compression work submitted to an
// Engine (§4.4 add_compression_task; §3/§5: source texture views and
// destination buffers are owned by the caller, never the engine). TextureView
// is the caller's source image, bound to the compute shader at binding 2;
// Dest is the caller's destination storage buffer and DestOffset the
// byte offset within it where this task's compressed blocks land.
type Task struct {
	Variant     bc.CompressionVariant
	Width       int
	Height      int
	TextureView *core.TextureView
	Dest        *core.Buffer
	DestOffset  uint64

	// uniformOffset and settingsOffset are filled in by
	// Engine.AddCompressionTask once the task has been placed into the
	// engine's ring buffers; they become the dynamic offsets passed to
	// SetBindGroup at dispatch time. bindGroup is built once, at task
	// creation, since it binds this task's specific texture view and
	// destination buffer and so cannot be shared across tasks the way the
	// pipeline and bind-group layout are.
	uniformOffset  uint64
	settingsOffset uint64
	destSize       uint64
	blocksX        int
	blocksY        int
	bindGroup      *core.BindGroup
}

// Result is returned once a submitted Task has been dispatched: the
// caller-owned destination buffer and the byte range within it holding the
// task's compressed output, ready for the caller to read back (or map
// directly) via the device's buffer-read path.
type Result struct {
	Dest       *core.Buffer
	DestOffset uint64
	DestSize   uint64
}
