package pkg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadFilename = errors.New("bad filename")

// MediaStore 报告附件统一落在一个 uploads 目录
type MediaStore struct {
	Dir string
}

func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &MediaStore{Dir: abs}, nil
}

// SafeBaseName 归一化为纯文件名，拒绝空名和 . / ..
func SafeBaseName(name string) (string, error) {
	base := strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if base == "" || base == "." || base == ".." {
		return "", ErrBadFilename
	}
	return base, nil
}

// MediaFileName 统一命名：{kind}_{opportunityID}_user_{userID}_{basename}
func MediaFileName(kind string, opportunityID, userID uint64, original string) (string, error) {
	base, err := SafeBaseName(original)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d_user_%d_%s", kind, opportunityID, userID, base), nil
}

// Path 返回目录内的绝对路径，目录外的引用一律拒绝
func (s *MediaStore) Path(name string) (string, error) {
	base, err := SafeBaseName(name)
	if err != nil {
		return "", err
	}
	p := filepath.Join(s.Dir, base)
	if p != s.Dir && !strings.HasPrefix(p, s.Dir+string(os.PathSeparator)) {
		return "", ErrBadFilename
	}
	return p, nil
}

// Remove 尽力删除，文件不存在视为成功
func (s *MediaStore) Remove(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
