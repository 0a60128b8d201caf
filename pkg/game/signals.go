package game

import (
	sfx "github.com/decker502/dragonsweeper/internal/audio"
	"github.com/decker502/dragonsweeper/pkg/engine"
)

// Signal 是游戏对外发出的通知，由音频层（或测试）消费
type Signal string

const (
	SignalStart        Signal = sfx.CueStart
	SignalClear        Signal = sfx.CueClear
	SignalWarning      Signal = sfx.CueWarning
	SignalMark         Signal = sfx.CueMark
	SignalUnmark       Signal = sfx.CueUnmark
	SignalDefeat       Signal = sfx.CueDefeat
	SignalVictory      Signal = sfx.CueVictory
	SignalDialogClosed Signal = sfx.CueDialogClosed
)

// SignalSink 按发出顺序接收信号
type SignalSink interface {
	Emit(sig Signal)
}

// SignalSinkFunc 把普通函数适配为 SignalSink
type SignalSinkFunc func(sig Signal)

// Emit 调用 f(sig)
func (f SignalSinkFunc) Emit(sig Signal) { f(sig) }

// SignalForEvent 将引擎事件映射为信号
// 被拒绝的操作不发出信号
func SignalForEvent(ev engine.Event) (Signal, bool) {
	switch ev {
	case engine.EventCleared:
		return SignalClear, true
	case engine.EventWarned:
		return SignalWarning, true
	case engine.EventDetonated:
		return SignalDefeat, true
	case engine.EventVictorious:
		return SignalVictory, true
	case engine.EventMarked:
		return SignalMark, true
	case engine.EventUnmarked:
		return SignalUnmark, true
	default:
		return "", false
	}
}
