package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Saver 上传文件保存器
// 文件按净化后的原始文件名保存到配置目录
// 同名文件直接覆盖

type Saver struct {
	dir      string // 保存目录
	maxBytes int64  // 单个文件大小上限
}

var (
	// ErrEmptyFilename 文件名净化后为空
	ErrEmptyFilename = errors.New("empty filename after sanitizing")
	// ErrFileTooLarge 文件超过大小上限
	ErrFileTooLarge = errors.New("file too large")
)

// NewSaver 创建保存器并确保目录存在
func NewSaver(dir string, maxBytes int64) (*Saver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &Saver{dir: dir, maxBytes: maxBytes}, nil
}

// Save 保存上传文件，返回最终文件名
func (s *Saver) Save(fileHeader *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	filename := SanitizeFilename(fileHeader.Filename)
	if filename == "" {
		return "", ErrEmptyFilename
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("创建目标文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("写入目标文件失败: %w", err)
	}
	return filename, nil
}

// SanitizeFilename 净化文件名
// 去掉路径部分，空白替换为下划线，仅保留字母数字和 . _ - 字符
// 去掉前导的点和横线，防止隐藏文件与相对路径
func SanitizeFilename(name string) string {
	// 统一分隔符后只取最后一段
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimLeft(b.String(), ".-")
	if cleaned == "." || cleaned == ".." {
		return ""
	}
	return cleaned
}
