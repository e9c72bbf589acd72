package notify

import (
	"fmt"
	"io"
)

type Alarm interface {
	Play()
}

type NoopAlarm struct{}

func (NoopAlarm) Play() {}

type TerminalBellAlarm struct {
	Out io.Writer
}

func (a TerminalBellAlarm) Play() {
	if a.Out == nil {
		return
	}
	_, _ = fmt.Fprint(a.Out, "\a")
}
