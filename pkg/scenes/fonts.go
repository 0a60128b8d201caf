package scenes

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 字号
const (
	bodyFontSize  = 16
	titleFontSize = 22
	countFontSize = 26
)

// sceneFonts 场景使用的字体
type sceneFonts struct {
	body  *text.GoTextFace
	title *text.GoTextFace
	count *text.GoTextFace // 格子上的数字
}

// loadFonts 从内置 Go 字体创建字体
func loadFonts() (*sceneFonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return &sceneFonts{
		body:  &text.GoTextFace{Source: regular, Size: bodyFontSize},
		title: &text.GoTextFace{Source: bold, Size: titleFontSize},
		count: &text.GoTextFace{Source: bold, Size: countFontSize},
	}, nil
}
