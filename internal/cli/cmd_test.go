package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/repository"
	"github.com/alexanderramin/zentask/internal/store"
	"github.com/alexanderramin/zentask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App over an in-memory DB holding the default tasks
// ("1" pending welcome task, "2" completed documentation task).
func testApp(t *testing.T, adv *testutil.StubAdvisor) *App {
	t.Helper()
	n := 0
	kv := repository.NewSQLiteKVRepo(testutil.NewTestDB(t))
	st := store.New(kv,
		store.WithClock(func() time.Time { return testutil.FixedNow }),
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("task-%04d-%s", n, "0000")
		}),
	)
	st.Load(context.Background())

	if adv == nil {
		adv = &testutil.StubAdvisor{}
	}
	return &App{
		Store:   st,
		Advisor: adv,
		Now:     func() time.Time { return testutil.FixedNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "zentask")
	assert.Contains(t, output, "breakdown")
}

// --- list ---

func TestListCmd_DefaultsToPending(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Welcome to ZenTask AI")
	assert.NotContains(t, output, "Update project documentation")
}

func TestListCmd_AllTab(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "list", "--tab", "all")
	require.NoError(t, err)
	assert.Contains(t, output, "Welcome to ZenTask AI")
	assert.Contains(t, output, "Update project documentation")
}

func TestListCmd_Search(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "list", "-t", "all", "--search", "readme")
	require.NoError(t, err)
	assert.Contains(t, output, "Update project documentation")
	assert.NotContains(t, output, "Welcome to ZenTask AI")
}

func TestListCmd_UnknownTab(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "list", "--tab", "archived")
	assert.Error(t, err)
}

func TestShowCmd(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Welcome to ZenTask AI")
	assert.Contains(t, output, "Magic")
}

// --- add ---

func TestAddCmd_WithFlags(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "add", "--title", "Book dentist", "-d", "before March",
		"--priority", "HIGH", "--category", "health")
	require.NoError(t, err)
	assert.Contains(t, output, "Created task")

	tasks := app.Store.Snapshot()
	require.Len(t, tasks, 3)
	added := tasks[0]
	assert.Equal(t, "Book dentist", added.Title)
	assert.Equal(t, "before March", added.Description)
	assert.Equal(t, domain.PriorityHigh, added.Priority)
	assert.Equal(t, "health", added.Category)
	assert.Equal(t, testutil.FixedNow.UnixMilli(), added.CreatedAt)
}

func TestAddCmd_Defaults(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "add", "--title", "Plain")
	require.NoError(t, err)

	added := app.Store.Snapshot()[0]
	assert.Equal(t, domain.PriorityMedium, added.Priority)
	assert.Equal(t, domain.DefaultCategoryID, added.Category)
}

func TestAddCmd_RequiresTitleWhenNotInteractive(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "add", "--title", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrEmptyTitle)
	assert.Contains(t, err.Error(), "--title is required")
	assert.Len(t, app.Store.Snapshot(), 2)
}

func TestAddCmd_RejectsBadEnums(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "add", "--title", "x", "--priority", "urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid priority")

	_, err = executeCmd(t, app, "add", "--title", "x", "--category", "hobby")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
	assert.Contains(t, err.Error(), "education")

	assert.Len(t, app.Store.Snapshot(), 2)
}

func TestAddCmd_SuggestPriority(t *testing.T) {
	adv := &testutil.StubAdvisor{Priority: domain.PriorityHigh}
	app := testApp(t, adv)

	output, err := executeCmd(t, app, "add", "--title", "Fix prod outage", "--suggest")
	require.NoError(t, err)
	assert.Contains(t, output, "AI suggests")
	assert.Equal(t, domain.PriorityHigh, app.Store.Snapshot()[0].Priority)
	assert.Equal(t, 1, adv.Calls("priority"))
}

func TestAddCmd_ExplicitPriorityWinsOverSuggest(t *testing.T) {
	adv := &testutil.StubAdvisor{Priority: domain.PriorityHigh}
	app := testApp(t, adv)

	_, err := executeCmd(t, app, "add", "--title", "x", "--priority", "low", "--suggest")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, app.Store.Snapshot()[0].Priority)
	assert.Equal(t, 0, adv.Calls("priority"))
}

// --- toggle / rm ---

func TestToggleCmd_IsInvolution(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "toggle", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Completed")
	got, _ := app.Store.Get("1")
	assert.True(t, got.Completed)

	output, err = executeCmd(t, app, "toggle", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Reopened")
	got, _ = app.Store.Get("1")
	assert.False(t, got.Completed)
}

func TestToggleCmd_ByPrefix(t *testing.T) {
	app := testApp(t, nil)
	_, err := executeCmd(t, app, "add", "--title", "Prefixed")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "toggle", "task-0001")
	require.NoError(t, err)
	assert.True(t, app.Store.Snapshot()[0].Completed)
}

func TestToggleCmd_AmbiguousPrefix(t *testing.T) {
	app := testApp(t, nil)
	for _, title := range []string{"a", "b"} {
		_, err := executeCmd(t, app, "add", "--title", title)
		require.NoError(t, err)
	}

	_, err := executeCmd(t, app, "toggle", "task-")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousID)
}

func TestRemoveCmd(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "rm", "2")
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted")

	tasks := app.Store.Snapshot()
	require.Len(t, tasks, 1)
	assert.Equal(t, "1", tasks[0].ID)
}

func TestRemoveCmd_UnknownID(t *testing.T) {
	app := testApp(t, nil)

	_, err := executeCmd(t, app, "rm", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, app.Store.Snapshot(), 2)
}

// --- breakdown / subtask ---

func TestBreakdownCmd_AppliesSubTasks(t *testing.T) {
	adv := &testutil.StubAdvisor{SubTaskTitles: []string{"Open the app", "Press the wand"}}
	app := testApp(t, adv)

	output, err := executeCmd(t, app, "breakdown", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "Open the app")

	got, _ := app.Store.Get("1")
	require.Len(t, got.SubTasks, 2)
	assert.False(t, got.SubTasks[0].Completed)

	_, err = executeCmd(t, app, "breakdown", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has 2 sub-tasks")
	assert.Equal(t, 1, adv.Calls("breakdown"))
}

func TestBreakdownCmd_NothingSuggested(t *testing.T) {
	app := testApp(t, &testutil.StubAdvisor{})

	output, err := executeCmd(t, app, "breakdown", "1")
	require.NoError(t, err)
	assert.Contains(t, output, "No sub-tasks were suggested.")

	got, _ := app.Store.Get("1")
	assert.Empty(t, got.SubTasks)
}

func TestSubTaskToggleCmd(t *testing.T) {
	adv := &testutil.StubAdvisor{SubTaskTitles: []string{"First", "Second"}}
	app := testApp(t, adv)
	_, err := executeCmd(t, app, "breakdown", "1")
	require.NoError(t, err)

	output, err := executeCmd(t, app, "subtask", "toggle", "1", "st-2")
	require.NoError(t, err)
	assert.Contains(t, output, "Second")

	got, _ := app.Store.Get("1")
	assert.False(t, got.SubTasks[0].Completed)
	assert.True(t, got.SubTasks[1].Completed)

	_, err = executeCmd(t, app, "subtask", "toggle", "1", "st-9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- advice / stats / categories ---

func TestAdviceCmd(t *testing.T) {
	adv := &testutil.StubAdvisor{Advice: "Start with the welcome task."}
	app := testApp(t, adv)

	output, err := executeCmd(t, app, "advice")
	require.NoError(t, err)
	assert.Contains(t, output, "Start with the welcome task.")
	assert.Equal(t, 1, adv.Calls("advice"))
}

func TestStatsCmd(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, output, " 50%")
}

func TestCategoriesCmd(t *testing.T) {
	app := testApp(t, nil)

	output, err := executeCmd(t, app, "categories")
	require.NoError(t, err)
	for _, c := range domain.Categories {
		assert.Contains(t, output, c.Name)
	}
}
