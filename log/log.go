package log

// Log provides some common methods for outputting messages.
// Every feedkeeper component receives one through its constructor, so that
// the backing provider can be swapped out in tests.
type Log interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Infoln(v ...interface{})

	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Debugln(v ...interface{})
}

// Discard returns a logger that drops everything.
func Discard() Log {
	return discard{}
}

type discard struct{}

func (discard) Print(v ...interface{})                 {}
func (discard) Printf(format string, v ...interface{}) {}
func (discard) Println(v ...interface{})               {}
func (discard) Info(v ...interface{})                  {}
func (discard) Infof(format string, v ...interface{})  {}
func (discard) Infoln(v ...interface{})                {}
func (discard) Debug(v ...interface{})                 {}
func (discard) Debugf(format string, v ...interface{}) {}
func (discard) Debugln(v ...interface{})               {}
