// Package planar converts between channel planes and interleaved frames.
package planar

// Interleave writes the frames built from equally long planes into output,
// which must be exactly len(planes)*len(planes[0]) long.
func Interleave[T any](output []T, planes ...[]T) {
	if len(planes) == 0 {
		return
	}
	samplesPerChan := len(planes[0])
	if len(output) != samplesPerChan*len(planes) {
		panic("output length is not equal to the total length of the planes")
	}
	for ch, plane := range planes {
		if len(plane) != samplesPerChan {
			panic("planes are expected to have equal lengths")
		}
		for samplePos, v := range plane {
			output[samplePos*len(planes)+ch] = v
		}
	}
}
