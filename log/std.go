package log

import (
	"io"
	"log"
)

type stdLogger struct {
	*log.Logger
}

// WithStd creates a logger that uses the stdlib log facilities. Info and
// Debug messages are prefixed with their level.
func WithStd(out io.Writer, prefix string, flag int) Log {
	return stdLogger{Logger: log.New(out, prefix, flag)}
}

func (st stdLogger) Info(v ...interface{}) {
	st.Print(append([]interface{}{"[info] "}, v...)...)
}

func (st stdLogger) Infof(format string, v ...interface{}) {
	st.Printf("[info] "+format, v...)
}

func (st stdLogger) Infoln(v ...interface{}) {
	st.Println(append([]interface{}{"[info]"}, v...)...)
}

func (st stdLogger) Debug(v ...interface{}) {
	st.Print(append([]interface{}{"[debug] "}, v...)...)
}

func (st stdLogger) Debugf(format string, v ...interface{}) {
	st.Printf("[debug] "+format, v...)
}

func (st stdLogger) Debugln(v ...interface{}) {
	st.Println(append([]interface{}{"[debug]"}, v...)...)
}
