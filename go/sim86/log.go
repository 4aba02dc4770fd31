// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sim86

import "fmt"

// Logger is the sink the driver writes diagnostic lines to. The default
// is a no-op so library use and tests stay silent.
type Logger interface {
	Log(msg string)
}

type noopLogger struct{}

func (noopLogger) Log(string) {}

var (
	activeLogger Logger = noopLogger{}
	logEnabled          = false
)

// SetLogger installs the logger the driver writes to.
func SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	activeLogger = l
}

// SetLogEnable toggles whether logf actually reaches the installed logger.
func SetLogEnable(enabled bool) {
	logEnabled = enabled
}

// logf writes a formatted message to the installed logger when enabled.
func logf(format string, args ...interface{}) {
	if !logEnabled {
		return
	}
	activeLogger.Log(fmt.Sprintf(format, args...))
}
