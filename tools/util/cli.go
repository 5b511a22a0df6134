package util

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Spinner draws a progress spinner on w until ctx is done, then clears the
// line. Run it in its own goroutine.
func Spinner(ctx context.Context, w io.Writer, text string) {
	// A common set of spinner characters
	frames := []string{"-", "\\", "|", "/"}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		// \r returns the cursor to the beginning of the line so each frame
		// overwrites the previous one.
		fmt.Fprintf(w, "\r%s %s... ", frames[i%len(frames)], text)
		select {
		case <-ctx.Done():
			fmt.Fprintf(w, "\r%*s\r", len(text)+6, "")
			return
		case <-ticker.C:
		}
	}
}

// StartSpinner runs Spinner in the background. The returned function stops
// it and waits until the line is cleared.
func StartSpinner(ctx context.Context, w io.Writer, text string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Spinner(ctx, w, text)
	}()
	return func() {
		cancel()
		<-done
	}
}
