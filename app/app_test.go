package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppServiceRegistry(t *testing.T) {
	a := new(App)
	a.Register(newTestService(testTypeRunnable, "c1", nil, nil))
	a.Register(newTestService(testTypeComponent, "s1", nil, nil))

	t.Run("Component", func(t *testing.T) {
		assert.Nil(t, a.Component("not-registered"))
		for _, name := range []string{"c1", "s1"} {
			s := a.Component(name)
			require.NotNil(t, s, name)
			assert.Equal(t, name, s.Name())
		}
	})
	t.Run("MustComponent", func(t *testing.T) {
		assert.NotPanics(t, func() { a.MustComponent("c1") })
		assert.Panics(t, func() { a.MustComponent("not-registered") })
	})
	t.Run("MustComponent generic", func(t *testing.T) {
		r := MustComponent[*testRunnable](a)
		assert.Equal(t, "c1", r.Name())
		assert.Panics(t, func() { MustComponent[fmt.Stringer](a) })
	})
	t.Run("duplicate", func(t *testing.T) {
		assert.Panics(t, func() { a.Register(newTestService(testTypeComponent, "s1", nil, nil)) })
	})
	t.Run("ComponentNames", func(t *testing.T) {
		assert.Equal(t, []string{"c1", "s1"}, a.ComponentNames())
	})
}

func TestAppStart(t *testing.T) {
	t.Run("SuccessStartStop", func(t *testing.T) {
		a := new(App)
		seq := new(testSeq)
		services := [...]iTestService{
			newTestService(testTypeRunnable, "c1", nil, seq),
			newTestService(testTypeComponent, "s1", nil, seq),
			newTestService(testTypeRunnable, "c2", nil, seq),
		}
		for _, s := range services {
			a.Register(s)
		}
		ctx := context.Background()
		require.NoError(t, a.Start(ctx))
		require.NoError(t, a.Close(ctx))

		var actual []testIds
		for _, s := range services {
			actual = append(actual, s.Ids())
		}
		expected := []testIds{
			{1, 4, 7},
			{2, 0, 0},
			{3, 5, 6},
		}
		assert.Equal(t, expected, actual)
		assert.Contains(t, a.StartStat().SpentMsPerComp, "c1")
	})

	t.Run("InitError", func(t *testing.T) {
		a := new(App)
		seq := new(testSeq)
		expectedErr := fmt.Errorf("testError")
		services := [...]iTestService{
			newTestService(testTypeRunnable, "c1", nil, seq),
			newTestService(testTypeRunnable, "c2", expectedErr, seq),
		}
		for _, s := range services {
			a.Register(s)
		}

		err := a.Start(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)

		var actual []testIds
		for _, s := range services {
			actual = append(actual, s.Ids())
		}
		expected := []testIds{
			{1, 0, 4},
			{2, 0, 3},
		}
		assert.Equal(t, expected, actual)
	})
}

const (
	testTypeComponent int = iota
	testTypeRunnable
)

func newTestService(componentType int, name string, err error, seq *testSeq) (s iTestService) {
	if seq == nil {
		seq = new(testSeq)
	}
	ts := testComponent{name: name, err: err, seq: seq}
	switch componentType {
	case testTypeComponent:
		return &ts
	case testTypeRunnable:
		return &testRunnable{testComponent: ts}
	}
	return nil
}

type iTestService interface {
	Component
	Ids() (ids testIds)
}

type testIds struct {
	initId  int64
	runId   int64
	closeId int64
}

type testComponent struct {
	name string
	err  error
	seq  *testSeq
	ids  testIds
}

func (t *testComponent) Init(a *App) error {
	t.ids.initId = t.seq.New()
	return t.err
}

func (t *testComponent) Name() string { return t.name }

func (t *testComponent) Ids() testIds {
	return t.ids
}

type testRunnable struct {
	testComponent
}

func (t *testRunnable) Run(ctx context.Context) error {
	t.ids.runId = t.seq.New()
	return t.err
}

func (t *testRunnable) Close(ctx context.Context) error {
	t.ids.closeId = t.seq.New()
	return nil
}

type testSeq struct {
	seq int64
}

func (ts *testSeq) New() int64 {
	ts.seq++
	return ts.seq
}
