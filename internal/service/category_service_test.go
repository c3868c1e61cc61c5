package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_web_server/internal/backend"
	"github.com/qs3c/blog_web_server/internal/model"
	"github.com/qs3c/blog_web_server/internal/model/dto"
	"github.com/qs3c/blog_web_server/internal/pkg/categorytree"
	"github.com/qs3c/blog_web_server/internal/testutil"
)

// categoryForest 1, 2(4, 5), 3
func categoryForest() []*model.Category {
	p := testutil.Int64Ptr
	return []*model.Category{
		testutil.TestCategory(3, nil, 2),
		testutil.TestCategory(1, nil, 0),
		testutil.TestCategory(2, nil, 1,
			testutil.TestCategory(4, p(2), 0),
			testutil.TestCategory(5, p(2), 1),
		),
	}
}

func setupCategoryService(t *testing.T) (*CategoryService, *testEnv) {
	t.Helper()

	env := setupEnv(t)
	env.fake.JSON(http.MethodGet, "/categories/tree", http.StatusOK, categoryForest())
	return NewCategoryService(env.client, env.activity), env
}

func reorderBody(t *testing.T, env *testEnv, id string) []dto.ReorderRequest {
	t.Helper()

	var out []dto.ReorderRequest
	for _, r := range env.fake.Requests(http.MethodPatch, "/categories/"+id+"/reorder") {
		var body dto.ReorderRequest
		require.NoError(t, json.Unmarshal(r.Body, &body))
		out = append(out, body)
	}
	return out
}

func TestCategoryService_Tree(t *testing.T) {
	svc, _ := setupCategoryService(t)

	tree, err := svc.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 3)

	// 按 display_order 排序并计算层级
	assert.Equal(t, int64(1), tree[0].ID)
	assert.Equal(t, int64(2), tree[1].ID)
	assert.Equal(t, int64(3), tree[2].ID)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, 1, tree[1].Children[0].Level)

	options, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Len(t, options, 5)
}

func TestCategoryService_MoveUp(t *testing.T) {
	svc, env := setupCategoryService(t)
	env.fake.Handle(http.MethodPatch, "/categories/2/reorder", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tree, err := svc.MoveUp(adminCtx(), 2)
	require.NoError(t, err)
	assert.NotEmpty(t, tree)

	bodies := reorderBody(t, env, "2")
	require.Len(t, bodies, 1)
	assert.Nil(t, bodies[0].ParentID)
	assert.Equal(t, 0, bodies[0].Position)

	// 变更前读取一次，变更后无条件重新拉取一次
	assert.Equal(t, 2, env.fake.Calls(http.MethodGet, "/categories/tree"))

	items, _, err := env.repo.List(1, 10, "categories")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "reorder", items[0].Action)

	msgs := env.publisher.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "categories", msgs[0].Resource)
	assert.Equal(t, "reorder", msgs[0].Action)
}

func TestCategoryService_MoveDown_Child(t *testing.T) {
	svc, env := setupCategoryService(t)
	env.fake.Handle(http.MethodPatch, "/categories/4/reorder", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := svc.MoveDown(adminCtx(), 4)
	require.NoError(t, err)

	bodies := reorderBody(t, env, "4")
	require.Len(t, bodies, 1)
	require.NotNil(t, bodies[0].ParentID)
	assert.Equal(t, int64(2), *bodies[0].ParentID)
	assert.Equal(t, 1, bodies[0].Position)
}

func TestCategoryService_MoveAtEdge(t *testing.T) {
	tests := []struct {
		name string
		move func(*CategoryService) error
		want error
	}{
		{"first cannot move up", func(s *CategoryService) error {
			_, err := s.MoveUp(adminCtx(), 1)
			return err
		}, categorytree.ErrAlreadyFirst},
		{"last cannot move down", func(s *CategoryService) error {
			_, err := s.MoveDown(adminCtx(), 5)
			return err
		}, categorytree.ErrAlreadyLast},
		{"unknown node", func(s *CategoryService) error {
			_, err := s.MoveUp(adminCtx(), 42)
			return err
		}, categorytree.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, env := setupCategoryService(t)

			err := tt.move(svc)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, env.fake.Calls(http.MethodPatch, "/categories/1/reorder")+
				env.fake.Calls(http.MethodPatch, "/categories/5/reorder")+
				env.fake.Calls(http.MethodPatch, "/categories/42/reorder"))
		})
	}
}

func TestCategoryService_Move(t *testing.T) {
	t.Run("into another parent", func(t *testing.T) {
		svc, env := setupCategoryService(t)
		env.fake.Handle(http.MethodPatch, "/categories/3/reorder", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		_, err := svc.Move(adminCtx(), 3, &dto.MoveCategoryRequest{ParentID: testutil.Int64Ptr(2), Position: 0})
		require.NoError(t, err)

		bodies := reorderBody(t, env, "3")
		require.Len(t, bodies, 1)
		assert.Equal(t, int64(2), *bodies[0].ParentID)
	})

	t.Run("under its own descendant", func(t *testing.T) {
		svc, env := setupCategoryService(t)

		_, err := svc.Move(adminCtx(), 2, &dto.MoveCategoryRequest{ParentID: testutil.Int64Ptr(4), Position: 0})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.ErrorIs(t, err, categorytree.ErrInvalidMove)
		assert.Equal(t, 0, env.fake.Calls(http.MethodPatch, "/categories/2/reorder"))
	})

	t.Run("negative position", func(t *testing.T) {
		svc, env := setupCategoryService(t)

		_, err := svc.Move(adminCtx(), 2, &dto.MoveCategoryRequest{Position: -1})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, 0, env.fake.Calls(http.MethodGet, "/categories/tree"))
	})
}

func TestCategoryService_ReorderFailureStillRefetches(t *testing.T) {
	svc, env := setupCategoryService(t)
	env.fake.JSON(http.MethodPatch, "/categories/3/reorder", http.StatusInternalServerError, map[string]string{"message": "db down"})

	tree, err := svc.MoveUp(adminCtx(), 3)
	require.Error(t, err)

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	assert.Len(t, tree, 3)
	assert.Equal(t, 2, env.fake.Calls(http.MethodGet, "/categories/tree"))
	assert.Equal(t, 1, env.fake.Calls(http.MethodPatch, "/categories/3/reorder"))

	// 失败不记录操作、不广播
	_, total, err := env.repo.List(1, 10, "")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, env.publisher.Messages())
}

func TestCategoryService_CRUD(t *testing.T) {
	svc, env := setupCategoryService(t)

	env.fake.JSON(http.MethodPost, "/categories", http.StatusCreated, model.Category{ID: 10, Name: "Rust", Slug: "rust"})
	env.fake.JSON(http.MethodPut, "/categories/10", http.StatusOK, model.Category{ID: 10, Name: "Rust lang", Slug: "rust"})
	env.fake.Handle(http.MethodDelete, "/categories/10", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := svc.Create(adminCtx(), &dto.CategoryRequest{Name: "Rust", Slug: "Rust Lang"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	created, err := svc.Create(adminCtx(), &dto.CategoryRequest{Name: "Rust", Slug: "rust"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)

	_, err = svc.Update(adminCtx(), 10, &dto.CategoryRequest{Name: "Rust", Slug: "rust", ParentID: testutil.Int64Ptr(10)})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	updated, err := svc.Update(adminCtx(), 10, &dto.CategoryRequest{Name: "Rust lang", Slug: "rust"})
	require.NoError(t, err)
	assert.Equal(t, "Rust lang", updated.Name)

	require.NoError(t, svc.Delete(adminCtx(), 10))

	_, total, err := env.repo.List(1, 10, "categories")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, env.publisher.Messages(), 3)
}
