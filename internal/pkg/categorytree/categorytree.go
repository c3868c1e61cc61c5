// Package categorytree 处理后端返回的分类森林：清洗、查找同级、计算移动位置。
package categorytree

import (
	"errors"
	"sort"

	"github.com/qs3c/blog_web_server/internal/model"
)

// DefaultMaxDepth 渲染允许的最大层级
const DefaultMaxDepth = 8

var (
	ErrNotFound     = errors.New("分类不存在")
	ErrAlreadyFirst = errors.New("已经是第一个")
	ErrAlreadyLast  = errors.New("已经是最后一个")
	ErrInvalidMove  = errors.New("不能移动到自身或其子分类下")
)

// Direction 上移 / 下移
type Direction int

const (
	Up Direction = iota
	Down
)

// Sanitize 复制一份森林：同一 ID 只保留第一次出现（重复处截断），超出 maxDepth 的子树被整体丢弃，
// 重新计算 Level 和 ParentID，并按 DisplayOrder 排序同级节点。
// 返回被丢弃的节点数。
func Sanitize(forest []*model.Category, maxDepth int) ([]*model.Category, int) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	seen := make(map[int64]struct{})
	dropped := 0

	var clean func(nodes []*model.Category, parent *int64, level int) []*model.Category
	clean = func(nodes []*model.Category, parent *int64, level int) []*model.Category {
		out := make([]*model.Category, 0, len(nodes))
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if _, dup := seen[n.ID]; dup {
				dropped++
				continue
			}
			if level >= maxDepth {
				dropped += 1 + size(n.Children, map[int64]struct{}{n.ID: {}})
				continue
			}
			seen[n.ID] = struct{}{}

			cp := *n
			cp.Level = level
			cp.ParentID = parent
			id := n.ID
			cp.Children = clean(n.Children, &id, level+1)
			out = append(out, &cp)
		}
		sortSiblings(out)
		return out
	}

	return clean(forest, nil, 0), dropped
}

// size 统计子树节点数，遇到重复 ID 停止，避免环导致死循环
func size(nodes []*model.Category, seen map[int64]struct{}) int {
	n := 0
	for _, c := range nodes {
		if c == nil {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		n += 1 + size(c.Children, seen)
	}
	return n
}

func sortSiblings(nodes []*model.Category) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].DisplayOrder < nodes[j].DisplayOrder
	})
}

// Find 按 ID 查找节点
func Find(forest []*model.Category, id int64) *model.Category {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Siblings 返回某个父节点下的同级列表，parentID 为 nil 时返回根列表
func Siblings(forest []*model.Category, parentID *int64) []*model.Category {
	if parentID == nil {
		return forest
	}
	parent := Find(forest, *parentID)
	if parent == nil {
		return nil
	}
	return parent.Children
}

// Position 节点在同级中的下标
func Position(siblings []*model.Category, id int64) int {
	for i, n := range siblings {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Neighbor 计算上移/下移后的目标位置
func Neighbor(forest []*model.Category, id int64, dir Direction) (parentID *int64, position int, err error) {
	node := Find(forest, id)
	if node == nil {
		return nil, 0, ErrNotFound
	}

	siblings := Siblings(forest, node.ParentID)
	pos := Position(siblings, id)
	if pos < 0 {
		return nil, 0, ErrNotFound
	}

	switch dir {
	case Up:
		if pos == 0 {
			return nil, 0, ErrAlreadyFirst
		}
		return node.ParentID, pos - 1, nil
	default:
		if pos == len(siblings)-1 {
			return nil, 0, ErrAlreadyLast
		}
		return node.ParentID, pos + 1, nil
	}
}

// IsDescendant candidate 是否为 ancestor 自身或其子孙
func IsDescendant(forest []*model.Category, ancestor, candidate int64) bool {
	root := Find(forest, ancestor)
	if root == nil {
		return false
	}
	return root.ID == candidate || Find(root.Children, candidate) != nil
}

// ValidateMove 拖拽前的本地校验：目标父节点存在，且不是被移动节点的子孙
func ValidateMove(forest []*model.Category, id int64, parentID *int64, position int) error {
	if Find(forest, id) == nil {
		return ErrNotFound
	}
	if parentID != nil {
		if Find(forest, *parentID) == nil {
			return ErrNotFound
		}
		if IsDescendant(forest, id, *parentID) {
			return ErrInvalidMove
		}
	}
	if position < 0 {
		return ErrInvalidMove
	}
	return nil
}

// Option 下拉框用的扁平项
type Option struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Flatten 先序展开，保留层级
func Flatten(forest []*model.Category) []Option {
	var out []Option
	var visit func(nodes []*model.Category)
	visit = func(nodes []*model.Category) {
		for _, n := range nodes {
			out = append(out, Option{ID: n.ID, Name: n.Name, Level: n.Level})
			visit(n.Children)
		}
	}
	visit(forest)
	return out
}
