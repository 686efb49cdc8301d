package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// OpenScript opens a command script for replay. Progress through the file is
// drawn on progress; pass nil to replay silently.
func OpenScript(path string, progress io.Writer) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	if progress == nil {
		return f, nil
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat script: %w", err)
	}
	reader := progressbar.NewReader(f, initProgressBar(info.Size(), progress))
	return &reader, nil
}

func initProgressBar(maxBytes int64, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(maxBytes,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Replaying script..."),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
