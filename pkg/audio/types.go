package audio

// Operation identifies a destructive transform applied to an audio file.
type Operation string

const (
	OpTrim      Operation = "trim"
	OpFade      Operation = "fade"
	OpNormalize Operation = "normalize"
)

// TransformParams carries the parameters for a transform. Only the
// fields relevant to the chosen operation are read.
type TransformParams struct {
	TrimStart float64 // seconds into the file
	TrimEnd   float64 // seconds into the file, must be > TrimStart

	FadeIn  float64 // fade-in length in seconds
	FadeOut float64 // fade-out length in seconds

	TargetLoudness float64 // integrated loudness target in LUFS, e.g. -16
}

// Metadata describes a probed audio file. Only what the recording
// store tracks: length and size.
type Metadata struct {
	Duration  float64 // seconds
	SizeBytes int64
}
