package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 换行规则:
//   - 优先在空格处断行
//   - 单词超过最大宽度时强制断行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if textStr == "" || face == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureTextWidth(textStr, face) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if MeasureTextWidth(candidate, face) <= maxWidth {
			currentLine = candidate
			continue
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}
		// 单个单词也超宽：按字符强制断行
		for MeasureTextWidth(word, face) > maxWidth {
			cut := fitPrefix(word, face, maxWidth)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		currentLine = word
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// fitPrefix 返回能放进 maxWidth 的最长前缀的字节长度（至少一个字符）
func fitPrefix(word string, face text.Face, maxWidth float64) int {
	_, first := utf8.DecodeRuneInString(word)
	cut := first
	for cut < len(word) {
		_, size := utf8.DecodeRuneInString(word[cut:])
		if MeasureTextWidth(word[:cut+size], face) > maxWidth {
			break
		}
		cut += size
	}
	return cut
}

// MeasureTextWidth 测量文本宽度
func MeasureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}
