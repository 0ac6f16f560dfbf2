// Package geom holds the geometry encoding constants and per-model
// attribute data shared between the staging pool and the frame builder.
package geom

const (
	// DatumPerFace is the number of elements a face's attribute data
	// occupies in a staging buffer.
	DatumPerFace = 12

	// BytesPerDatum is the byte stride of a single staged element.
	// Vertex and UV streams both use 4-byte elements.
	BytesPerDatum = 4
)

// FaceToBytes converts a face count to its staged size in bytes.
func FaceToBytes(faces int) int {
	return faces * DatumPerFace * BytesPerDatum
}
