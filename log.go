package fixalloc

import "go.uber.org/zap"

// nopIfNil lets Config.Logger be left zero-valued without every call site
// having to nil-check it.
func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
