// Package logger 提供进程级 logrus 日志
//
// 独立于 pkg/utils，使无界面的 HTTP 服务端不依赖 Ebitengine。
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Components log through For so that every
// entry carries the component that wrote it.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.WarnLevel)
}

// SetVerbose switches between debug output and warnings only.
func SetVerbose(verbose bool) {
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.WarnLevel)
	}
}

// SetOutput redirects log output, e.g. io.Discard in tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
