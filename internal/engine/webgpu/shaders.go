//go:build windows

package webgpu

import "fmt"

// WGSL compute shaders. The element-wise families are stamped out of
// templates with the per-operation expression substituted; the structured
// kernels (reductions, transpose, row movement) are standalone sources.
//
// Element-wise shaders walk their domain with a grid-stride loop, so a
// capped dispatch still covers any length.

// wgSize is the number of invocations per workgroup for 1-D kernels.
const wgSize = 256

// maxGroups caps 1-D dispatches; the grid-stride loop absorbs the rest.
const maxGroups = 4096

// binaryShader stamps dst[i] = expr(a[i], b[i]).
func binaryShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> out: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>,
        @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    for (var i = gid.x; i < params.size; i += stride) {
        out[i] = %s;
    }
}
`, expr)
}

// unaryShader stamps dst[i] = expr(x) with x = src[i].
func unaryShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>,
        @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    for (var i = gid.x; i < params.size; i += stride) {
        let x = src[i];
        out[i] = %s;
    }
}
`, expr)
}

// unaryScalarShader stamps dst[i] = expr(x, s) with the scalar s passed as a
// uniform.
func unaryScalarShader(expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;

struct Params {
    size: u32,
    s: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>,
        @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    for (var i = gid.x; i < params.size; i += stride) {
        let x = src[i];
        let s = params.s;
        out[i] = %s;
    }
}
`, expr)
}

// broadcastShader stamps dst[i] = expr(m[i], y) where y is the vector
// element for flat index i: v[i %% height] for a column vector,
// v[i / height] for a row vector. alpha rides in the uniform for the
// scaled-add variants.
func broadcastShader(vecIndex, expr string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> m: array<f32>;
@group(0) @binding(1) var<storage, read> v: array<f32>;
@group(0) @binding(2) var<storage, read_write> out: array<f32>;

struct Params {
    size: u32,
    height: u32,
    alpha: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>,
        @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    for (var i = gid.x; i < params.size; i += stride) {
        let y = v[%s];
        out[i] = %s;
    }
}
`, vecIndex, expr)
}

// selectShader picks per element between two matrices on a nonzero
// condition.
const selectShader = `
@group(0) @binding(0) var<storage, read> cond: array<f32>;
@group(0) @binding(1) var<storage, read> ifv: array<f32>;
@group(0) @binding(2) var<storage, read> elsev: array<f32>;
@group(0) @binding(3) var<storage, read_write> out: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(4) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>,
        @builtin(num_workgroups) nwg: vec3<u32>) {
    let stride = nwg.x * 256u;
    for (var i = gid.x; i < params.size; i += stride) {
        out[i] = select(elsev[i], ifv[i], cond[i] != 0.0);
    }
}
`

// reduceShader stamps an axis reduction: one workgroup per output element,
// 32 lanes scanning a strided subset into workgroup memory, then lane 0
// merging the 32 partials serially. Strict comparisons keep the first
// occurrence on ties. count/base/stride select the axis, sentinel is the
// initial value's bit pattern, and result is "r" or "f32(r_pos)".
func reduceShader(count, base, stride, sentinel, cmp, result string) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> m: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;

struct Params {
    width: u32,
    height: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> part_val: array<f32, 32>;
var<workgroup> part_pos: array<u32, 32>;

@compute @workgroup_size(32)
fn main(@builtin(workgroup_id) wg: vec3<u32>,
        @builtin(local_invocation_id) lid: vec3<u32>) {
    let count = %s;
    let base = %s;
    let stride = %s;
    let lane = lid.x;

    var best = bitcast<f32>(%su);
    var best_pos = 0u;
    for (var k = lane; k < count; k += 32u) {
        let v = m[base + k * stride];
        if (v %s best) {
            best = v;
            best_pos = k;
        }
    }
    part_val[lane] = best;
    part_pos[lane] = best_pos;

    workgroupBarrier();

    if (lane == 0u) {
        var r = part_val[0];
        var r_pos = part_pos[0];
        for (var l = 1u; l < 32u; l++) {
            if (part_val[l] %s r) {
                r = part_val[l];
                r_pos = part_pos[l];
            }
        }
        out[wg.x] = %s;
    }
}
`, count, base, stride, sentinel, cmp, cmp, result)
}

// Axis selectors for reduceShader: a column reduction scans one column per
// workgroup, a row reduction one row.
const (
	colCount, colBase, colStride = "params.height", "wg.x * params.height", "1u"
	rowCount, rowBase, rowStride = "params.width", "wg.x", "params.height"
	posInfBits                   = "0x7f800000"
	negInfBits                   = "0xff800000"
)

// transposeShader: 32x32 tiles staged through workgroup memory. The tile
// rows are padded by one element so the transposed read does not serialize
// on shared-memory banks. A workgroup of 32x8 covers its tile in four
// strips.
const transposeShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;

struct Params {
    width: u32,
    height: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> tile: array<f32, 32u * 33u>;

@compute @workgroup_size(32, 8)
fn main(@builtin(workgroup_id) wg: vec3<u32>,
        @builtin(local_invocation_id) lid: vec3<u32>) {
    for (var j = 0u; j < 32u; j += 8u) {
        let col = wg.x * 32u + lid.x;
        let row = wg.y * 32u + lid.y + j;
        if (col < params.width && row < params.height) {
            tile[(lid.y + j) * 33u + lid.x] = src[col * params.height + row];
        }
    }

    workgroupBarrier();

    // Output is height columns by width rows: element (j, i) of the output
    // sits at i * width + j.
    for (var j = 0u; j < 32u; j += 8u) {
        let t_col = wg.y * 32u + lid.x;
        let t_row = wg.x * 32u + lid.y + j;
        if (t_col < params.height && t_row < params.width) {
            out[t_col * params.width + t_row] = tile[lid.x * 33u + lid.y + j];
        }
    }
}
`

// getRowSliceShader copies rows [start, end) of the source into a compact
// buffer of height end-start.
const getRowSliceShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;

struct Params {
    start: u32,
    end: u32,
    width: u32,
    height: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let slice_h = params.end - params.start;
    let c = gid.x;
    let r = gid.y;
    if (c < params.width && r < slice_h) {
        out[c * slice_h + r] = src[c * params.height + params.start + r];
    }
}
`

// setRowSliceShader writes a compact buffer into rows [start, end) of the
// output; the rest of the output is preserved by the initOut upload.
const setRowSliceShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;

struct Params {
    start: u32,
    end: u32,
    width: u32,
    height: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let slice_h = params.end - params.start;
    let c = gid.x;
    let r = gid.y;
    if (c < params.width && r < slice_h) {
        out[c * params.height + params.start + r] = src[c * slice_h + r];
    }
}
`

// selectRowsShader gathers rows by index list: each workgroup resolves its
// 32 indices into workgroup memory, then the lanes walk the columns
// round-robin. Invalid indices produce NaN-filled rows.
const selectRowsShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read> indices: array<f32>;
@group(0) @binding(2) var<storage, read_write> out: array<f32>;

struct Params {
    n_row_is: u32,
    n_src_rows: u32,
    n_cols: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

var<workgroup> resolved: array<i32, 32>;

@compute @workgroup_size(32)
fn main(@builtin(workgroup_id) wg: vec3<u32>,
        @builtin(local_invocation_id) lid: vec3<u32>) {
    let lane = lid.x;
    let lo = wg.x * 32u;
    let r = lo + lane;
    if (r < params.n_row_is) {
        var idx = i32(indices[r]);
        if (idx < 0) {
            idx += i32(params.n_src_rows);
        }
        if (idx < 0 || idx >= i32(params.n_src_rows)) {
            idx = -1;
        }
        resolved[lane] = idx;
    }

    workgroupBarrier();

    let hi = min(lo + 32u, params.n_row_is);
    for (var c = lane; c < params.n_cols; c += 32u) {
        for (var rr = lo; rr < hi; rr++) {
            let idx = resolved[rr - lo];
            if (idx >= 0) {
                out[c * params.n_row_is + rr] = src[c * params.n_src_rows + u32(idx)];
            } else {
                out[c * params.n_row_is + rr] = bitcast<f32>(0x7fc00000u);
            }
        }
    }
}
`

// setSelectedRowsShader scatters rows through the index list; invalid
// indices skip the write, untouched output rows are preserved by the
// initOut upload.
const setSelectedRowsShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read> indices: array<f32>;
@group(0) @binding(2) var<storage, read_write> out: array<f32>;

struct Params {
    n_row_is: u32,
    n_dst_rows: u32,
    n_cols: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

var<workgroup> resolved: array<i32, 32>;

@compute @workgroup_size(32)
fn main(@builtin(workgroup_id) wg: vec3<u32>,
        @builtin(local_invocation_id) lid: vec3<u32>) {
    let lane = lid.x;
    let lo = wg.x * 32u;
    let r = lo + lane;
    if (r < params.n_row_is) {
        var idx = i32(indices[r]);
        if (idx < 0) {
            idx += i32(params.n_dst_rows);
        }
        if (idx < 0 || idx >= i32(params.n_dst_rows)) {
            idx = -1;
        }
        resolved[lane] = idx;
    }

    workgroupBarrier();

    let hi = min(lo + 32u, params.n_row_is);
    for (var c = lane; c < params.n_cols; c += 32u) {
        for (var rr = lo; rr < hi; rr++) {
            let idx = resolved[rr - lo];
            if (idx >= 0) {
                out[c * params.n_dst_rows + u32(idx)] = src[c * params.n_row_is + rr];
            }
        }
    }
}
`
