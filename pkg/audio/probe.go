package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// ffprobeOutput carries the fields we read from ffprobe's JSON. The
// stream duration covers containers whose format block omits one.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// Probe reads the duration and size of an audio file using ffprobe.
func (e *Engine) Probe(ctx context.Context, filePath string) (*Metadata, error) {
	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "a:0", // first audio stream
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, e.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("probe", filePath, err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, NewProcessingError("probe_parse", filePath, err, "")
	}

	return parseMetadata(&output, filePath)
}

func parseMetadata(output *ffprobeOutput, filePath string) (*Metadata, error) {
	meta := &Metadata{}

	if output.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			meta.Duration = duration
		}
	}
	if output.Format.Size != "" {
		if size, err := strconv.ParseInt(output.Format.Size, 10, 64); err == nil {
			meta.SizeBytes = size
		}
	}

	if meta.Duration == 0 {
		for _, stream := range output.Streams {
			if stream.CodecType != "audio" || stream.Duration == "" {
				continue
			}
			if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				meta.Duration = duration
			}
			break
		}
	}

	if meta.Duration == 0 {
		return nil, NewProcessingError("probe_validation", filePath,
			fmt.Errorf("could not determine audio duration"), "")
	}

	return meta, nil
}
