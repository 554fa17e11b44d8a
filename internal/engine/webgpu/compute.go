//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Engine's shaders map.
func (e *Engine) compileShader(name, code string) *wgpu.ShaderModule {
	e.mu.RLock()
	if shader, exists := e.shaders[name]; exists {
		e.mu.RUnlock()
		return shader
	}
	e.mu.RUnlock()

	shader := e.device.CreateShaderModuleWGSL(code)

	e.mu.Lock()
	e.shaders[name] = shader
	e.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (e *Engine) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	e.mu.RLock()
	if pipeline, exists := e.pipelines[name]; exists {
		e.mu.RUnlock()
		return pipeline
	}
	e.mu.RUnlock()

	// Auto layout (nil layout) derives bindings from the shader.
	pipeline := e.device.CreateComputePipelineSimple(nil, shader, "main")

	e.mu.Lock()
	e.pipelines[name] = pipeline
	e.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU storage buffer and uploads initial data.
func (e *Engine) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (e *Engine) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer through a staging buffer,
// since storage buffers can't be mapped directly.
func (e *Engine) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := e.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := e.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	e.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(e.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// f32Bytes views a float32 slice as bytes for buffer upload.
func f32Bytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy view, lifetime bounded by caller
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

// packParams encodes uniform words little-endian, padded to 16 bytes.
func packParams(words []uint32) []byte {
	n := max(len(words)*4, 16)
	n = (n + 15) &^ 15
	buf := make([]byte, n)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

// run executes one compute dispatch: inputs bound read-only at bindings
// 0..len(inputs)-1, the output at len(inputs), uniform params last. The
// result is copied into dst. When initOut is set the output buffer starts
// with the current contents of dst, for kernels that write only part of
// their output (scatter, row-range insert).
func (e *Engine) run(name, code string, inputs [][]float32, dst []float32, outLen int, initOut bool, params []uint32, wgX, wgY uint32) error {
	shader := e.compileShader(name, code)
	pipeline := e.getOrCreatePipeline(name, shader)

	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	buffers := make([]*wgpu.Buffer, 0, len(inputs))
	for i, in := range inputs {
		buf := e.createBuffer(f32Bytes(in), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		buffers = append(buffers, buf)
		//nolint:gosec // G115: binding index and size are small non-negatives
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, uint64(len(in)*4)))
	}
	defer func() {
		for _, b := range buffers {
			b.Release()
		}
	}()

	//nolint:gosec // G115: outLen is a non-negative extent
	outSize := uint64(outLen * 4)
	var outBuffer *wgpu.Buffer
	if initOut {
		outBuffer = e.createBuffer(f32Bytes(dst[:outLen]),
			wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	} else {
		outBuffer = e.device.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
			Size:  outSize,
		})
	}
	defer outBuffer.Release()
	//nolint:gosec // G115: binding index is small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)), outBuffer, 0, outSize))

	paramBytes := packParams(params)
	paramBuffer := e.createUniformBuffer(paramBytes)
	defer paramBuffer.Release()
	//nolint:gosec // G115: binding index and size are small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)+1), paramBuffer, 0, uint64(len(paramBytes))))

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := e.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	encoder := e.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(wgX, wgY, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	e.queue.Submit(cmdBuffer)

	resultData, err := e.readBuffer(outBuffer, outSize)
	if err != nil {
		return err
	}

	copy(dst[:outLen], unsafe.Slice((*float32)(unsafe.Pointer(&resultData[0])), outLen))
	return nil
}

// elementGroups caps a 1-D dispatch: the grid-stride loop inside each shader
// covers any domain a capped launch leaves unassigned.
func elementGroups(n int) uint32 {
	groups := (n + wgSize - 1) / wgSize
	if groups > maxGroups {
		groups = maxGroups
	}
	if groups < 1 {
		groups = 1
	}
	//nolint:gosec // G115: bounded by maxGroups
	return uint32(groups)
}
