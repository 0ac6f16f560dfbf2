package geom

const colorsPerFace = 4

// ModelData carries decoded per-model attribute data staged for upload.
type ModelData struct {
	colors    []int16
	faceCount int
}

func (m *ModelData) FaceCount() int {
	return m.faceCount
}

func (m *ModelData) SetFaceCount(faceCount int) *ModelData {
	m.faceCount = faceCount
	return m
}

func (m *ModelData) SetColors(colors []int16) *ModelData {
	m.colors = colors
	return m
}

// ColorForFace returns one of the four color values recorded for a face.
func (m *ModelData) ColorForFace(face, index int) int {
	return int(m.colors[face*colorsPerFace+index])
}
