// Package meshio reads and writes generated meshes.
//
// DCM is a compact binary container:
//
//	offset size  field
//	0      4     magic "DCM1"
//	4      1     version (1)
//	5      3     reserved, zero
//	8      4     vertex count (uint32 LE)
//	12     4     triangle count (uint32 LE)
//	16     4     compressed payload length (uint32 LE)
//	20     8     xxhash64 of the uncompressed payload (uint64 LE)
//	28     n     zstd payload
//
// The uncompressed payload holds every vertex as six float32 (position,
// normal) followed by every triangle as three uint32, all little-endian.
package meshio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/isomesh/pkg/dualcontour"
	"github.com/Faultbox/isomesh/pkg/math"
)

// DCM format errors.
var (
	ErrInvalidMagic       = errors.New("invalid DCM magic: expected 'DCM1'")
	ErrUnsupportedVersion = errors.New("unsupported DCM version")
	ErrTruncated          = errors.New("truncated DCM data")
	ErrChecksumMismatch   = errors.New("DCM payload checksum mismatch")
	ErrInvalidIndex       = errors.New("triangle index out of range")
)

const (
	dcmMagic      = "DCM1"
	dcmVersion    = 1
	dcmHeaderSize = 28

	vertexSize   = 6 * 4
	triangleSize = 3 * 4
)

// Header is the fixed-size DCM preamble.
type Header struct {
	Version        uint8
	NumVertices    uint32
	NumTriangles   uint32
	CompressedSize uint32
	Checksum       uint64
}

// WriteDCM encodes m to w.
func WriteDCM(w io.Writer, m *dualcontour.MeshBuffer) error {
	payload := encodePayload(m)

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(payload, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd encoder: %w", err)
	}

	var hdr [dcmHeaderSize]byte
	copy(hdr[0:4], dcmMagic)
	hdr[4] = dcmVersion
	binary.LittleEndian.PutUint32(hdr[8:], uint32(m.NumVertices()))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(m.NumTriangles()))
	binary.LittleEndian.PutUint32(hdr[16:], uint32(len(compressed)))
	binary.LittleEndian.PutUint64(hdr[20:], xxhash.Sum64(payload))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// ParseHeader decodes the DCM preamble.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < dcmHeaderSize {
		return h, ErrTruncated
	}
	if string(data[0:4]) != dcmMagic {
		return h, ErrInvalidMagic
	}
	h.Version = data[4]
	if h.Version != dcmVersion {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	h.NumVertices = binary.LittleEndian.Uint32(data[8:])
	h.NumTriangles = binary.LittleEndian.Uint32(data[12:])
	h.CompressedSize = binary.LittleEndian.Uint32(data[16:])
	h.Checksum = binary.LittleEndian.Uint64(data[20:])
	return h, nil
}

// ParseDCM decodes a DCM file held in memory.
func ParseDCM(data []byte) (*dualcontour.MeshBuffer, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[dcmHeaderSize:]
	if uint64(len(body)) < uint64(h.CompressedSize) {
		return nil, fmt.Errorf("%w: payload needs %d bytes, have %d", ErrTruncated, h.CompressedSize, len(body))
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	payload, err := dec.DecodeAll(body[:h.CompressedSize], nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w", err)
	}

	want := uint64(h.NumVertices)*vertexSize + uint64(h.NumTriangles)*triangleSize
	if uint64(len(payload)) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, header implies %d", ErrTruncated, len(payload), want)
	}
	if xxhash.Sum64(payload) != h.Checksum {
		return nil, ErrChecksumMismatch
	}

	return decodePayload(payload, h)
}

// LoadDCM reads a DCM file from disk.
func LoadDCM(path string) (*dualcontour.MeshBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseDCM(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// SaveDCM writes m to path, creating parent directories as needed.
func SaveDCM(path string, m *dualcontour.MeshBuffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteDCM(&buf, m); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func encodePayload(m *dualcontour.MeshBuffer) []byte {
	payload := make([]byte, 0, m.NumVertices()*vertexSize+m.NumTriangles()*triangleSize)
	for _, v := range m.Vertices {
		payload = appendVec3(payload, v.Position)
		payload = appendVec3(payload, v.Normal)
	}
	for _, t := range m.Triangles {
		payload = binary.LittleEndian.AppendUint32(payload, t[0])
		payload = binary.LittleEndian.AppendUint32(payload, t[1])
		payload = binary.LittleEndian.AppendUint32(payload, t[2])
	}
	return payload
}

func decodePayload(payload []byte, h Header) (*dualcontour.MeshBuffer, error) {
	m := dualcontour.NewMeshBuffer(int(h.NumVertices), int(h.NumTriangles))
	off := 0
	for i := uint32(0); i < h.NumVertices; i++ {
		pos := readVec3(payload[off:])
		nrm := readVec3(payload[off+12:])
		m.Vertices = append(m.Vertices, dualcontour.Vertex{Position: pos, Normal: nrm})
		off += vertexSize
	}
	for i := uint32(0); i < h.NumTriangles; i++ {
		var t dualcontour.Triangle
		for j := range t {
			t[j] = binary.LittleEndian.Uint32(payload[off+4*j:])
			if t[j] >= h.NumVertices {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrInvalidIndex, i, t[j], h.NumVertices)
			}
		}
		m.Triangles = append(m.Triangles, t)
		off += triangleSize
	}
	return m, nil
}

func appendVec3(b []byte, v math.Vec3) []byte {
	b = binary.LittleEndian.AppendUint32(b, gomath.Float32bits(v.X))
	b = binary.LittleEndian.AppendUint32(b, gomath.Float32bits(v.Y))
	return binary.LittleEndian.AppendUint32(b, gomath.Float32bits(v.Z))
}

func readVec3(b []byte) math.Vec3 {
	return math.Vec3{
		X: gomath.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: gomath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: gomath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}
