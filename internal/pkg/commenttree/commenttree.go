// Package commenttree 把后端返回的平铺评论整理成回复树。
package commenttree

import (
	"github.com/qs3c/blog_web_server/internal/model"
)

// Forest 一批评论整理后的结果。
//
// Roots 中的树一定无环，可以放心递归渲染。父评论不在本批数据里的回复进入 Orphans
// （其子回复仍挂在它的 Replies 下）；父链成环、从任何根都走不到的评论进入 Detached。
type Forest struct {
	Roots    []*model.Comment
	Orphans  []*model.Comment
	Detached []*model.Comment
}

// Organize 两遍扫描：先按 ID 建表并清空 Replies，再把每条评论放到根列表或父评论的 Replies 中。
// 顺序保持输入顺序；重复 ID 只保留第一次出现的那条。
func Organize(comments []*model.Comment) Forest {
	byID := make(map[int64]*model.Comment, len(comments))
	unique := make([]*model.Comment, 0, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		if _, dup := byID[c.ID]; dup {
			continue
		}
		c.Replies = []*model.Comment{}
		byID[c.ID] = c
		unique = append(unique, c)
	}

	forest := Forest{Roots: []*model.Comment{}}
	for _, c := range unique {
		if c.ParentID == nil {
			forest.Roots = append(forest.Roots, c)
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			forest.Orphans = append(forest.Orphans, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}

	seen := make(map[int64]struct{}, len(unique))
	walk(forest.Roots, seen, nil)
	walk(forest.Orphans, seen, nil)
	for _, c := range unique {
		if _, ok := seen[c.ID]; !ok {
			forest.Detached = append(forest.Detached, c)
		}
	}

	return forest
}

// Flatten 深度优先展开，遇到已访问节点直接跳过
func Flatten(roots []*model.Comment) []*model.Comment {
	var out []*model.Comment
	walk(roots, make(map[int64]struct{}), func(c *model.Comment) {
		out = append(out, c)
	})
	return out
}

// Count 树中评论总数
func Count(roots []*model.Comment) int {
	n := 0
	walk(roots, make(map[int64]struct{}), func(*model.Comment) { n++ })
	return n
}

func walk(nodes []*model.Comment, seen map[int64]struct{}, visit func(*model.Comment)) {
	stack := make([]*model.Comment, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		if visit != nil {
			visit(c)
		}

		for i := len(c.Replies) - 1; i >= 0; i-- {
			stack = append(stack, c.Replies[i])
		}
	}
}
