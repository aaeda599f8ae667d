package formatter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

// StartSpinner animates message on out until the returned stop function is
// called. Stop clears the line, waits for the animation to exit, and may be
// called more than once.
func StartSpinner(out io.Writer, message string) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go spin(ctx, out, Dim(message), done)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func spin(ctx context.Context, out io.Writer, label string, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			fmt.Fprint(out, "\r\033[K")
			return
		case <-ticker.C:
			r := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(out, "\r  %s %s", StylePurple.Render(string(r)), label)
		}
	}
}
