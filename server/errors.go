package server

import (
	"errors"
	"net/http"
)

// 只有这三类错误会以客户端错误的形式暴露给调用方，
// 扫描和刮削阶段的失败一律就地吸收。
var (
	ErrNotFound        = errors.New("file not found")
	ErrForbidden       = errors.New("path outside library root")
	ErrUnsupportedType = errors.New("unsupported file type")
)

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ErrUnsupportedType):
		http.Error(w, "Unsupported media type", http.StatusUnsupportedMediaType)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "File not found", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
