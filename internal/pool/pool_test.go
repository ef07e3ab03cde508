package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/catalog"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/sandbox"
)

func makeTasks(n int) []sandbox.Task {
	tasks := make([]sandbox.Task, n)
	for i := range tasks {
		tasks[i] = sandbox.Task{Template: &catalog.Template{
			Key:         fmt.Sprintf("template-%d", i),
			DisplayName: fmt.Sprintf("Template %d", i),
			InitScript:  "npm init --yes",
		}}
	}
	return tasks
}

func TestRunAll_AllTasksSettle(t *testing.T) {
	tasks := makeTasks(5)

	var mu sync.Mutex
	ran := map[string]bool{}

	results := RunAll(context.Background(), tasks, func(_ context.Context, task sandbox.Task) error {
		mu.Lock()
		ran[task.Template.Key] = true
		mu.Unlock()
		return nil
	}, Options{Concurrency: 2})

	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	if len(ran) != 5 {
		t.Errorf("ran %d tasks, want 5", len(ran))
	}
	for i, r := range results {
		if r.Key != fmt.Sprintf("template-%d", i) {
			t.Errorf("results[%d].Key = %q, results must keep input order", i, r.Key)
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
		}
	}
}

func TestRunAll_FailureDoesNotCancelSiblings(t *testing.T) {
	tasks := makeTasks(4)

	var mu sync.Mutex
	ran := 0

	results := RunAll(context.Background(), tasks, func(_ context.Context, task sandbox.Task) error {
		mu.Lock()
		ran++
		mu.Unlock()
		if task.Template.Key == "template-1" {
			return errors.New("scaffold exploded")
		}
		return nil
	}, Options{Concurrency: 1})

	if ran != 4 {
		t.Errorf("ran %d tasks, want all 4 despite a failure", ran)
	}

	s := Summarize(results)
	if s.Failed != 1 || s.Succeeded != 3 {
		t.Errorf("summary = %+v, want 1 failed / 3 succeeded", s)
	}
}

func TestRunAll_CeilingOfOneSerializesTasks(t *testing.T) {
	tasks := makeTasks(3)

	inFlight := 0
	maxInFlight := 0
	var mu sync.Mutex

	RunAll(context.Background(), tasks, func(_ context.Context, _ sandbox.Task) error {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil
	}, Options{Concurrency: 1})

	if maxInFlight != 1 {
		t.Errorf("max in-flight = %d, ceiling of 1 must serialize tasks", maxInFlight)
	}
}

func TestRunAll_FailFastSkipsRemainingTasks(t *testing.T) {
	tasks := makeTasks(3)

	results := RunAll(context.Background(), tasks, func(_ context.Context, task sandbox.Task) error {
		return errors.New("always fails")
	}, Options{Concurrency: 1, FailFast: true})

	s := Summarize(results)
	if s.Failed != 1 {
		t.Errorf("summary = %+v, want exactly 1 failed", s)
	}
	if s.Skipped != 2 {
		t.Errorf("summary = %+v, want 2 skipped", s)
	}
	if !errors.Is(results[1].Err, ErrSkipped) {
		t.Errorf("results[1].Err = %v, want ErrSkipped", results[1].Err)
	}
}

func TestRunAll_ZeroConcurrencyTreatedAsOne(t *testing.T) {
	tasks := makeTasks(2)

	results := RunAll(context.Background(), tasks, func(_ context.Context, _ sandbox.Task) error {
		return nil
	}, Options{Concurrency: 0})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("task %s failed: %v", r.Key, r.Err)
		}
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Key: "a"},
		{Key: "b", Err: errors.New("boom")},
		{Key: "c", Err: ErrSkipped},
		{Key: "d"},
	}

	s := Summarize(results)
	if s.Total != 4 || s.Succeeded != 2 || s.Failed != 1 || s.Skipped != 1 {
		t.Errorf("Summarize() = %+v", s)
	}
}
