package handlers

const (
	// Octave shift limits for voiced notes, keeping them inside the sampler's range
	maxOctaveOffset = 4

	requestIDKey = "request_id"
)
