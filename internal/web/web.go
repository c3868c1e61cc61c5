package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var files embed.FS

//go:embed static
var assets embed.FS

// MaxCommentIndent 超过该层级的回复不再继续缩进
const MaxCommentIndent = 6

// Templates 解析全部页面模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// Static 样式和脚本
func Static() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Funcs 页面模板使用的函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"dict":    dict,
		"add":     func(a, b int) int { return a + b },
		"sub":     func(a, b int) int { return a - b },
		"mul":     func(a, b int) int { return a * b },
		"indent":  indent,
		"date":    formatDate,
		"join":    strings.Join,
		"rawHTML": func(s string) template.HTML { return template.HTML(s) },
		"year":    func() int { return time.Now().Year() },
	}
}

// dict 在模板里构造 map，用于递归模板传参
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func indent(depth int) int {
	if depth > MaxCommentIndent {
		return MaxCommentIndent
	}
	return depth
}

func formatDate(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return ""
}
