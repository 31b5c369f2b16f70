package pipeline

import (
	"github.com/matzehuels/svgtween/pkg/config"
	"github.com/matzehuels/svgtween/pkg/io"
)

// Written lists the files produced by Write.
type Written struct {
	Dir    string
	Frames []string
	Lottie string
}

// Write saves every frame and the Lottie envelope below cfg's output
// directory, creating directories as needed.
func Write(cfg *config.Config, result *Result) (*Written, error) {
	dir := cfg.OutputPath()
	frames, err := io.WriteFrames(dir, result.Frames)
	if err != nil {
		return nil, err
	}
	lottiePath := cfg.LottiePath()
	if err := io.ExportLottie(result.Envelope, lottiePath); err != nil {
		return nil, err
	}
	return &Written{Dir: dir, Frames: frames, Lottie: lottiePath}, nil
}
