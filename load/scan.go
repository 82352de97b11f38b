// Package load 读取 AeroDyn 极曲线、叶片表、运行控制表与 YAML 工程文件。
package load

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// 注释与分隔行前缀，"-" 另行处理
var commentPrefix = [...]string{"=", "!", "#"}

// lineScanner 逐行读取，记录行号
type lineScanner struct {
	scanner *bufio.Scanner
	line    int
	text    string
}

func newLineScanner(r io.Reader) *lineScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	return &lineScanner{scanner: s}
}

// Scan 读取下一行(去除首尾空白)
func (s *lineScanner) Scan() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.line++
	s.text = strings.TrimSpace(s.scanner.Text())
	return true
}

// Fields 当前行字段
func (s *lineScanner) Fields() []string { return strings.Fields(s.text) }

// Comment 当前行是否为空行、注释或分隔行
func (s *lineScanner) Comment() bool {
	if s.text == "" {
		return true
	}
	for _, p := range commentPrefix {
		if strings.HasPrefix(s.text, p) {
			return true
		}
	}
	// "-----" 为分隔行，"-10.0" 为负数
	if s.text[0] == '-' {
		return len(s.text) == 1 || !numeric(s.text[1])
	}
	return false
}

// numeric 是否可作为数值的下一个字符
func numeric(c byte) bool { return c >= '0' && c <= '9' || c == '.' }

// Err 读取错误
func (s *lineScanner) Err() error { return s.scanner.Err() }

// errorf 带行号的错误
func (s *lineScanner) errorf(format string, args ...any) error {
	return fmt.Errorf("第 %d 行: %s", s.line, fmt.Sprintf(format, args...))
}

// parseFloats 解析前 n 个字段为浮点数
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("需要 %d 列, 得到 %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("第 %d 列 %q 不是数值", i+1, fields[i])
		}
		out[i] = v
	}
	return out, nil
}

// keyValue 解析 "值 键 ! 说明" 格式的 AeroDyn 参数行
func keyValue(fields []string, key string) (string, bool) {
	if len(fields) >= 2 && strings.EqualFold(fields[1], key) {
		return fields[0], true
	}
	return "", false
}
