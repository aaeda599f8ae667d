package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/repository"
	"github.com/alexanderramin/zentask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, opts ...Option) (*Store, *repository.SQLiteKVRepo) {
	t.Helper()
	kv := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	opts = append([]Option{WithClock(func() time.Time { return testutil.FixedNow })}, opts...)
	return New(kv, opts...), kv
}

func seed(t *testing.T, kv repository.KVRepo, tasks ...domain.Task) {
	t.Helper()
	s := New(kv)
	s.tasks = tasks
	require.NoError(t, s.Save(context.Background()))
}

func TestLoad_MissingFallsBackToDefaults(t *testing.T) {
	s, _ := setupStore(t)

	tasks := s.Load(context.Background())

	require.Len(t, tasks, 2)
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "Welcome to ZenTask AI", tasks[0].Title)
	assert.Equal(t, "2", tasks[1].ID)
}

func TestLoad_MalformedFallsBackToDefaults(t *testing.T) {
	payloads := map[string]string{
		"not json":     `{{{`,
		"wrong shape":  `{"id":"1"}`,
		"null":         `null`,
		"missing id":   `[{"title":"x"}]`,
		"duplicate id": `[{"id":"a","title":"x"},{"id":"a","title":"y"}]`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			s, kv := setupStore(t)
			require.NoError(t, kv.Put(context.Background(), StorageKey, payload))

			tasks := s.Load(context.Background())

			require.Len(t, tasks, 2)
			assert.Equal(t, "Welcome to ZenTask AI", tasks[0].Title)
		})
	}
}

func TestLoad_ReadErrorFallsBackToDefaults(t *testing.T) {
	kv := &testutil.FailingKV{
		Inner:  repository.NewSQLiteKVRepo(testutil.NewTestDB(t)),
		GetErr: errors.New("disk on fire"),
	}
	s := New(kv)

	tasks := s.Load(context.Background())
	assert.Len(t, tasks, 2)
}

func TestLoad_EmptyArrayIsValid(t *testing.T) {
	s, kv := setupStore(t)
	require.NoError(t, kv.Put(context.Background(), StorageKey, `[]`))

	tasks := s.Load(context.Background())
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestLoad_NormalizesNilSubTasks(t *testing.T) {
	s, kv := setupStore(t)
	require.NoError(t, kv.Put(context.Background(), StorageKey, `[{"id":"a","title":"A","priority":"low","category":"work","createdAt":5}]`))

	tasks := s.Load(context.Background())
	require.Len(t, tasks, 1)
	assert.NotNil(t, tasks[0].SubTasks)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	_, kv := setupStore(t)
	original := []domain.Task{
		testutil.NewTestTask("First", testutil.WithID("a"), testutil.WithPriority(domain.PriorityHigh), testutil.WithSubTasks("step 1", "step 2")),
		testutil.NewTestTask("Second", testutil.WithID("b"), testutil.WithCompleted(), testutil.WithDescription("details")),
		testutil.NewTestTask("Third", testutil.WithID("c"), testutil.WithCategory("health"), testutil.WithCreatedAt(42)),
	}
	seed(t, kv, original...)

	reloaded := New(kv).Load(context.Background())

	assert.Equal(t, original, reloaded)
}

func TestAdd_PrependsWithFreshID(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	before := s.Load(ctx)

	task, err := s.Add(ctx, TaskInput{Title: "Buy milk", Priority: domain.PriorityLow, Category: "personal"})
	require.NoError(t, err)

	after := s.Snapshot()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, task.ID, after[0].ID)
	for _, old := range before {
		assert.NotEqual(t, old.ID, task.ID)
	}
	assert.False(t, task.Completed)
	assert.Empty(t, task.SubTasks)
	assert.NotNil(t, task.SubTasks)
	assert.Equal(t, testutil.FixedNow.UnixMilli(), task.CreatedAt)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Equal(t, "personal", task.Category)
}

func TestAdd_RegeneratesCollidingID(t *testing.T) {
	ids := []string{"1", "1", "2", "fresh"}
	n := 0
	s, _ := setupStore(t, WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))
	ctx := context.Background()
	s.Load(ctx) // defaults occupy ids "1" and "2"

	task, err := s.Add(ctx, TaskInput{Title: "Unique"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", task.ID)
}

func TestAdd_RejectsBlankTitle(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	_, err := s.Add(ctx, TaskInput{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Len(t, s.Snapshot(), 2)
}

func TestAdd_DefaultsPriorityAndCategory(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	task, err := s.Add(ctx, TaskInput{Title: "  Trim me  ", Priority: "urgent", Category: "chores"})
	require.NoError(t, err)
	assert.Equal(t, "Trim me", task.Title)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.DefaultCategoryID, task.Category)
}

func TestAdd_Persists(t *testing.T) {
	s, kv := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	task, err := s.Add(ctx, TaskInput{Title: "Persist me"})
	require.NoError(t, err)

	reloaded := New(kv).Load(ctx)
	require.Len(t, reloaded, 3)
	assert.Equal(t, task.ID, reloaded[0].ID)
}

func TestToggleCompleted_IsInvolution(t *testing.T) {
	s, kv := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	changed, err := s.ToggleCompleted(ctx, "1")
	require.NoError(t, err)
	assert.True(t, changed)
	got, _ := s.Get("1")
	assert.True(t, got.Completed)

	_, err = s.ToggleCompleted(ctx, "1")
	require.NoError(t, err)
	got, _ = s.Get("1")
	assert.False(t, got.Completed)

	reloaded := New(kv).Load(ctx)
	assert.False(t, reloaded[0].Completed)
}

func TestToggleCompleted_UnknownIDIsNoop(t *testing.T) {
	kv := &testutil.FailingKV{Inner: repository.NewSQLiteKVRepo(testutil.NewTestDB(t))}
	s := New(kv)
	ctx := context.Background()
	before := s.Load(ctx)

	changed, err := s.ToggleCompleted(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 0, kv.Puts(), "no-op must not write")
}

func TestDelete(t *testing.T) {
	s, kv := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	removed, err := s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, removed)

	tasks := s.Snapshot()
	require.Len(t, tasks, 1)
	assert.Equal(t, "2", tasks[0].ID)

	removed, err = s.Delete(ctx, "1")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Len(t, New(kv).Load(ctx), 1)
}

func TestDelete_DoesNotCorruptEarlierSnapshot(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)
	snap := s.Snapshot()

	_, err := s.Delete(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, "1", snap[0].ID)
	assert.Equal(t, "2", snap[1].ID)
}

func TestSetSubTasks_ReplacesWholesale(t *testing.T) {
	s, kv := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	first := []domain.SubTask{{ID: "s1", Title: "one"}, {ID: "s2", Title: "two"}}
	_, err := s.SetSubTasks(ctx, "1", first)
	require.NoError(t, err)

	second := []domain.SubTask{{ID: "s3", Title: "three"}}
	changed, err := s.SetSubTasks(ctx, "1", second)
	require.NoError(t, err)
	assert.True(t, changed)

	got, _ := s.Get("1")
	assert.Equal(t, second, got.SubTasks)

	second[0].Title = "mutated by caller"
	got, _ = s.Get("1")
	assert.Equal(t, "three", got.SubTasks[0].Title, "store must not alias caller slices")

	reloaded := New(kv).Load(ctx)
	assert.Equal(t, "three", reloaded[0].SubTasks[0].Title)
}

func TestSetSubTasks_UnknownIDIsNoop(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	changed, err := s.SetSubTasks(ctx, "missing", []domain.SubTask{{ID: "x", Title: "x"}})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestApplyBreakdown_OnlyWhenEmpty(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	changed, err := s.ApplyBreakdown(ctx, "1", []domain.SubTask{{ID: "a", Title: "first pass"}})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.ApplyBreakdown(ctx, "1", []domain.SubTask{{ID: "b", Title: "second pass"}})
	require.NoError(t, err)
	assert.False(t, changed)

	got, _ := s.Get("1")
	require.Len(t, got.SubTasks, 1)
	assert.Equal(t, "first pass", got.SubTasks[0].Title)
}

func TestApplyBreakdown_EmptyResultIsNoop(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	changed, err := s.ApplyBreakdown(ctx, "1", nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestToggleSubTask(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)
	_, err := s.SetSubTasks(ctx, "1", []domain.SubTask{{ID: "s1", Title: "one"}, {ID: "s2", Title: "two"}})
	require.NoError(t, err)

	changed, err := s.ToggleSubTask(ctx, "1", "s2")
	require.NoError(t, err)
	assert.True(t, changed)

	got, _ := s.Get("1")
	assert.False(t, got.SubTasks[0].Completed)
	assert.True(t, got.SubTasks[1].Completed)

	changed, err = s.ToggleSubTask(ctx, "1", "nope")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMutation_SaveErrorSurfaces(t *testing.T) {
	kv := &testutil.FailingKV{
		Inner:  repository.NewSQLiteKVRepo(testutil.NewTestDB(t)),
		PutErr: errors.New("read-only filesystem"),
	}
	s := New(kv)
	ctx := context.Background()
	s.Load(ctx)

	_, err := s.ToggleCompleted(ctx, "1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "saving tasks")
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)
	_, err := s.SetSubTasks(ctx, "1", []domain.SubTask{{ID: "s1", Title: "one"}})
	require.NoError(t, err)

	snap := s.Snapshot()
	snap[0].Title = "changed"
	snap[0].SubTasks[0].Completed = true

	got, _ := s.Get("1")
	assert.Equal(t, "Welcome to ZenTask AI", got.Title)
	assert.False(t, got.SubTasks[0].Completed)
}

func TestAdd_ManyIDsStayUnique(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	s.Load(ctx)

	for i := 0; i < 50; i++ {
		_, err := s.Add(ctx, TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, task := range s.Snapshot() {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
	assert.Len(t, seen, 52)
}
