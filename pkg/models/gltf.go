package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/trimap/pkg/math3d"
)

// ErrExternalBuffer is returned for glTF files whose geometry lives outside
// the document.
var ErrExternalBuffer = errors.New("models: external buffers are not supported")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// DefaultColor is used for primitives without a COLOR_0 attribute.
	DefaultColor color.RGBA
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		DefaultColor: color.RGBA{255, 0, 255, 255},
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	// Process all meshes in the document
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var colors []color.RGBA
		if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			colors, err = readColorAccessor(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)

		for i := range positions {
			v := MeshVertex{Position: positions[i], Color: l.DefaultColor}
			if i < len(colors) {
				v.Color = colors[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{V: [3]int{
				baseVertex + indices[i],
				baseVertex + indices[i+1],
				baseVertex + indices[i+2],
			}}
			for _, v := range f.V {
				if v >= len(mesh.Vertices) {
					return fmt.Errorf("index %d out of range", v-baseVertex)
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// SaveGLB writes the mesh as a single-primitive binary glTF file with
// POSITION and COLOR_0 attributes.
func SaveGLB(path string, m *Mesh) error {
	if err := gltf.SaveBinary(Document(m), path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// Document builds an in-memory glTF document holding m.
func Document(m *Mesh) *gltf.Document {
	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Vertices))
	colors := make([][4]uint8, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)}
		colors[i] = [4]uint8{v.Color.R, v.Color.G, v.Color.B, v.Color.A}
	}
	indices := make([]uint32, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		indices = append(indices, uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}

	prim := &gltf.Primitive{
		Mode:    gltf.PrimitiveTriangles,
		Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
		Attributes: map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
	}
	doc.Meshes = []*gltf.Mesh{{Name: m.Name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}

	return result, nil
}

// readColorAccessor reads COLOR_0 as normalized unsigned bytes or floats.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]color.RGBA, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case [][4]uint8:
		result := make([]color.RGBA, len(v))
		for i, c := range v {
			result[i] = color.RGBA{c[0], c[1], c[2], c[3]}
		}
		return result, nil
	case [][4]float32:
		result := make([]color.RGBA, len(v))
		for i, c := range v {
			result[i] = color.RGBA{unit8(c[0]), unit8(c[1]), unit8(c[2]), unit8(c[3])}
		}
		return result, nil
	case [][3]float32:
		result := make([]color.RGBA, len(v))
		for i, c := range v {
			result[i] = color.RGBA{unit8(c[0]), unit8(c[1]), unit8(c[2]), 255}
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected color type: %T", data)
	}
}

func unit8(f float32) uint8 {
	return uint8(math.Round(float64(min(max(f, 0), 1)) * 255))
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		return widen(v), nil
	case []uint16:
		return widen(v), nil
	case []uint32:
		return widen(v), nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func widen[T uint8 | uint16 | uint32](v []T) []int {
	result := make([]int, len(v))
	for i, x := range v {
		result[i] = int(x)
	}
	return result
}

// accessorAt returns accessor idx, rejecting dangling references.
func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// readAccessorData reads raw data from a GLTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	viewIdx := *accessor.BufferView
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) || doc.BufferViews[viewIdx] == nil {
		return nil, fmt.Errorf("buffer view %d out of range", viewIdx)
	}
	bufferView := doc.BufferViews[viewIdx]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) || doc.Buffers[bufferView.Buffer] == nil {
		return nil, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" && buffer.Data == nil {
		return nil, ErrExternalBuffer
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count
	le := binary.LittleEndian

	elemSize := accessorElemSize(accessor)
	if elemSize == 0 {
		return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
	}
	if stride == 0 {
		stride = elemSize
	}
	if start < 0 || stride < 0 || count < 0 {
		return nil, fmt.Errorf("accessor has negative offset, stride or count")
	}
	if count > 0 && start+(count-1)*stride+elemSize > len(bufData) {
		return nil, fmt.Errorf("accessor exceeds buffer: %d elements from offset %d", count, start)
	}

	switch {
	case accessor.Type == gltf.AccessorVec3 && accessor.ComponentType == gltf.ComponentFloat:
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = math.Float32frombits(le.Uint32(bufData[offset+j*4:]))
			}
		}
		return result, nil

	case accessor.Type == gltf.AccessorVec4 && accessor.ComponentType == gltf.ComponentFloat:
		result := make([][4]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 4 {
				result[i][j] = math.Float32frombits(le.Uint32(bufData[offset+j*4:]))
			}
		}
		return result, nil

	case accessor.Type == gltf.AccessorVec4 && accessor.ComponentType == gltf.ComponentUbyte:
		result := make([][4]uint8, count)
		for i := range count {
			copy(result[i][:], bufData[start+i*stride:])
		}
		return result, nil

	case accessor.Type == gltf.AccessorScalar:
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				result[i] = le.Uint16(bufData[start+i*stride:])
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				result[i] = le.Uint32(bufData[start+i*stride:])
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// accessorElemSize returns the packed byte size of one element, or 0 for
// layouts the reader does not handle.
func accessorElemSize(a *gltf.Accessor) int {
	var comp int
	switch a.ComponentType {
	case gltf.ComponentUbyte:
		comp = 1
	case gltf.ComponentUshort:
		comp = 2
	case gltf.ComponentUint, gltf.ComponentFloat:
		comp = 4
	default:
		return 0
	}
	switch a.Type {
	case gltf.AccessorScalar:
		return comp
	case gltf.AccessorVec3:
		return 3 * comp
	case gltf.AccessorVec4:
		return 4 * comp
	default:
		return 0
	}
}
