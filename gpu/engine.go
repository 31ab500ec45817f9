// Package gpu implements the batching compute engine (§4.4): many
// compression tasks of possibly-different variants, packed into one compute
// submission via dynamic-offset bind groups, so the device sees one
// BeginComputePass/Submit cycle no matter how many images are queued.
//
// Grounded on gogpu/wgpu/core's ComputePassEncoder wrapper pattern (see
// other_examples' internal/gpu/compute_pass.go): SetBindGroup takes a
// per-call dynamic-offset slice, which is exactly the mechanism used here to
// give each task its own uniform/settings sub-allocation without a bind
// group per task for those two bindings. The source texture view and
// destination buffer are per-task (§3/§5: both are caller-owned), so the bind
// group itself is built once per task rather than cached by variant tag; only
// the pipeline, shader module and bind-group layout are tag-cached.
package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/blockcompress/bc/bc"
)

const (
	initialRingBytes = 1 << 20 // 1 MiB initial ring size, doubled on overflow.
)

// Engine owns the uniform and per-task settings ring buffers, plus the
// pipeline/bind-group-layout caches keyed by variant tag only (§3 invariant:
// caches never key on settings). Source textures and destination buffers are
// supplied by the caller per task and never touch these rings.
type Engine struct {
	device *core.Device
	queue  *core.Queue

	uniformBuf  *core.Buffer
	settingsBuf *core.Buffer

	uniformCap  uint64
	settingsCap uint64

	uniformUsed  uint64
	settingsUsed uint64

	pipelines  map[bc.VariantTag]*core.ComputePipeline
	layouts    map[bc.VariantTag]*core.BindGroupLayout
	shaderMods map[bc.VariantTag]*core.ShaderModule
}

// New creates an Engine bound to device/queue, allocating the initial ring
// buffers.
func New(device *core.Device, queue *core.Queue) (*Engine, error) {
	e := &Engine{
		device:     device,
		queue:      queue,
		pipelines:  make(map[bc.VariantTag]*core.ComputePipeline),
		layouts:    make(map[bc.VariantTag]*core.BindGroupLayout),
		shaderMods: make(map[bc.VariantTag]*core.ShaderModule),
	}
	if err := e.growUniformBuffer(initialRingBytes); err != nil {
		return nil, err
	}
	if err := e.growSettingsBuffer(initialRingBytes); err != nil {
		return nil, err
	}
	return e, nil
}

// AddCompressionTask reserves space for variant/settings in the uniform and
// settings ring buffers, growing them if needed (§4.4 update_buffer_sizes),
// builds the task's bind group against the caller's source texture view and
// destination buffer (§3/§5), and returns the Task ready for Compress.
func (e *Engine) AddCompressionTask(variant bc.CompressionVariant, textureView *core.TextureView, width, height int, dest *core.Buffer, destOffset uint64) (*Task, error) {
	if width <= 0 || height <= 0 {
		return nil, bcError(bc.ErrBadDimensions, "gpu: AddCompressionTask: bad dimensions %dx%d", width, height)
	}
	if textureView == nil {
		return nil, bcError(bc.ErrBadDimensions, "gpu: AddCompressionTask: nil source texture view")
	}
	if dest == nil {
		return nil, bcError(bc.ErrBadDimensions, "gpu: AddCompressionTask: nil destination buffer")
	}

	t := &Task{
		Variant:     variant,
		Width:       width,
		Height:      height,
		TextureView: textureView,
		Dest:        dest,
		DestOffset:  destOffset,
	}
	t.blocksX = (width + 3) / 4
	t.blocksY = (height + 3) / 4
	t.destSize = uint64(variant.BlocksByteSize(width, height))

	uniformOff := alignUp(e.uniformUsed, uniformStride)
	if need := uniformOff + uniformStride; need > e.uniformCap {
		if err := e.growUniformBuffer(need * 2); err != nil {
			return nil, err
		}
	}
	t.uniformOffset = uniformOff
	e.uniformUsed = uniformOff + uniformStride

	settingsStride := settingsStrideFor(variant.Tag)
	settingsOff := alignUp(e.settingsUsed, 256)
	if need := settingsOff + settingsStride; need > e.settingsCap {
		if err := e.growSettingsBuffer(need * 2); err != nil {
			return nil, err
		}
	}
	t.settingsOffset = settingsOff
	e.settingsUsed = settingsOff + settingsStride

	u := encodeUniforms(Uniforms{BlocksX: uint32(t.blocksX), BlocksY: uint32(t.blocksY)})
	e.queue.WriteBuffer(e.uniformBuf, t.uniformOffset, u[:])

	settings := encodeSettingsPayload(variant)
	e.queue.WriteBuffer(e.settingsBuf, t.settingsOffset, settings)

	bindGroup, err := e.bindGroupFor(t)
	if err != nil {
		return nil, err
	}
	t.bindGroup = bindGroup

	return t, nil
}

// Compress dispatches the tasks passed to it, in slice order, in a single
// compute pass, one DispatchWorkgroups per task against a pipeline selected
// by its variant tag, and submits the command buffer (§4.4 compress(pass)).
// The engine keeps no list of tasks created by AddCompressionTask; only the
// tasks in this call are dispatched. Returns a Result per task in slice order.
func (e *Engine) Compress(tasks []*Task) ([]Result, error) {
	encoder, err := e.device.CreateCommandEncoder(&core.CommandEncoderDescriptor{Label: "bc.gpu.compress"})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: CreateCommandEncoder: %v", err)
	}

	pass, err := encoder.BeginComputePass(&core.ComputePassDescriptor{Label: "bc.gpu.compress.pass"})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: BeginComputePass: %v", err)
	}

	results := make([]Result, len(tasks))
	for i, t := range tasks {
		pipeline, err := e.pipelineFor(t.Variant.Tag)
		if err != nil {
			return nil, err
		}
		if err := pass.SetPipeline(pipeline); err != nil {
			return nil, bcError(bc.ErrDevice, "gpu: SetPipeline: %v", err)
		}

		offsets := []uint32{uint32(t.uniformOffset), uint32(t.settingsOffset)}
		if err := pass.SetBindGroup(0, t.bindGroup, offsets); err != nil {
			return nil, bcError(bc.ErrDevice, "gpu: SetBindGroup: %v", err)
		}

		wgX := uint32((t.blocksX + 7) / 8)
		wgY := uint32((t.blocksY + 7) / 8)
		if wgX == 0 {
			wgX = 1
		}
		if wgY == 0 {
			wgY = 1
		}
		if err := pass.DispatchWorkgroups(wgX, wgY, 1); err != nil {
			return nil, bcError(bc.ErrDevice, "gpu: DispatchWorkgroups: %v", err)
		}

		results[i] = Result{Dest: t.Dest, DestOffset: t.DestOffset, DestSize: t.destSize}
	}

	if err := pass.End(); err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: pass.End: %v", err)
	}

	cmdBuf, err := encoder.Finish(nil)
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: encoder.Finish: %v", err)
	}
	e.queue.Submit([]*core.CommandBuffer{cmdBuf})

	e.uniformUsed = 0
	e.settingsUsed = 0

	return results, nil
}

// ReadResult reads a task's compressed blocks back from its caller-owned
// destination buffer. This is a synchronizing map/read, intended for tests
// and small batches; production callers should prefer persistent mapped
// ranges on their own buffer.
func (e *Engine) ReadResult(r Result) ([]byte, error) {
	data, err := e.device.ReadBuffer(r.Dest, r.DestOffset, r.DestSize)
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: ReadBuffer: %v", err)
	}
	return data, nil
}

func (e *Engine) growUniformBuffer(size uint64) error {
	buf, err := e.device.CreateBuffer(&core.BufferDescriptor{
		Label: "bc.gpu.uniforms",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return bcError(bc.ErrDevice, "gpu: growUniformBuffer: %v", err)
	}
	e.uniformBuf = buf
	e.uniformCap = size
	return nil
}

func (e *Engine) growSettingsBuffer(size uint64) error {
	buf, err := e.device.CreateBuffer(&core.BufferDescriptor{
		Label: "bc.gpu.settings",
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return bcError(bc.ErrDevice, "gpu: growSettingsBuffer: %v", err)
	}
	e.settingsBuf = buf
	e.settingsCap = size
	return nil
}

// pipelineFor returns the cached compute pipeline for tag, compiling and
// caching it on first use. Keyed on tag only (§3): two tasks of the same
// variant tag but different settings share one pipeline.
func (e *Engine) pipelineFor(tag bc.VariantTag) (*core.ComputePipeline, error) {
	if p, ok := e.pipelines[tag]; ok {
		return p, nil
	}
	mod, err := e.shaderModuleFor(tag)
	if err != nil {
		return nil, err
	}
	layout, err := e.bindGroupLayoutFor(tag)
	if err != nil {
		return nil, err
	}
	pipelineLayout, err := e.device.CreatePipelineLayout(&core.PipelineLayoutDescriptor{
		Label:            tag.String() + ".layout",
		BindGroupLayouts: []*core.BindGroupLayout{layout},
	})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: CreatePipelineLayout: %v", err)
	}
	entryPoint := entryPointFor(tag)
	pipeline, err := e.device.CreateComputePipeline(&core.ComputePipelineDescriptor{
		Label:  tag.String() + ".pipeline",
		Layout: pipelineLayout,
		Compute: core.ComputeState{
			Module:     mod,
			EntryPoint: entryPoint,
		},
	})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: CreateComputePipeline: %v", err)
	}
	e.pipelines[tag] = pipeline
	return pipeline, nil
}

func (e *Engine) shaderModuleFor(tag bc.VariantTag) (*core.ShaderModule, error) {
	if m, ok := e.shaderMods[tag]; ok {
		return m, nil
	}
	mod, err := e.device.CreateShaderModule(&core.ShaderModuleDescriptor{
		Label:  tag.String() + ".wgsl",
		Source: core.ShaderSource{WGSL: wgslSourceFor(tag)},
	})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: CreateShaderModule(%s): %v", tag, err)
	}
	e.shaderMods[tag] = mod
	return mod, nil
}

// bindGroupLayoutFor describes the four-binding layout every variant's
// shader uses: uniforms (0), settings (1), source texture (2, §3: "source
// texture view handle"), destination storage buffer (3, §3: "destination
// storage-buffer handle"). Built from gputypes so the layout entries carry
// real webgpu.h-shaped binding descriptions rather than ad hoc constants.
func (e *Engine) bindGroupLayoutFor(tag bc.VariantTag) (*core.BindGroupLayout, error) {
	if l, ok := e.layouts[tag]; ok {
		return l, nil
	}
	layout, err := e.device.CreateBindGroupLayout(&core.BindGroupLayoutDescriptor{
		Label: tag.String() + ".bgl",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, HasDynamicOffset: true},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage, HasDynamicOffset: true},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: CreateBindGroupLayout(%s): %v", tag, err)
	}
	e.layouts[tag] = layout
	return layout, nil
}

// bindGroupFor builds t's bind group against this engine's uniform/settings
// rings and t's own caller-supplied texture view and destination buffer. It
// is built once, at AddCompressionTask time, and reused for every Compress
// call until the task is dropped; it is not cached by tag since the texture
// view and destination buffer differ per task.
func (e *Engine) bindGroupFor(t *Task) (*core.BindGroup, error) {
	layout, err := e.bindGroupLayoutFor(t.Variant.Tag)
	if err != nil {
		return nil, err
	}
	group, err := e.device.CreateBindGroup(&core.BindGroupDescriptor{
		Label:  t.Variant.Tag.String() + ".bg",
		Layout: layout,
		Entries: []core.BindGroupEntry{
			{Binding: 0, Buffer: e.uniformBuf, Size: uniformStride},
			{Binding: 1, Buffer: e.settingsBuf, Size: settingsStrideFor(t.Variant.Tag)},
			{Binding: 2, TextureView: t.TextureView},
			{Binding: 3, Buffer: t.Dest, Offset: t.DestOffset, Size: t.destSize},
		},
	})
	if err != nil {
		return nil, bcError(bc.ErrDevice, "gpu: CreateBindGroup(%s): %v", t.Variant.Tag, err)
	}
	return group, nil
}

func entryPointFor(tag bc.VariantTag) string {
	v := bc.CompressionVariant{Tag: tag}
	return v.ShaderEntryPoint()
}

func bcError(code bc.ErrorCode, format string, args ...any) error {
	return &bc.Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}
