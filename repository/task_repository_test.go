package repository

import (
	"context"
	"errors"
	"testing"

	"taskAssignment/internal/db"
	"taskAssignment/models"
)

func TestTaskRepository_CreateAndScopedLists(t *testing.T) {
	d, err := db.Open("file:taskrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	users := NewUserRepository(d)
	tasks := NewTaskRepository(d)
	ctx := context.Background()

	bob, err := users.Create(ctx, "bob", "h", models.RoleTeacher)
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	dan, err := users.Create(ctx, "dan", "h", models.RoleTeacher)
	if err != nil {
		t.Fatalf("create dan: %v", err)
	}

	empty, err := tasks.ListAll(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v err=%v", empty, err)
	}

	seed := []models.Task{
		{Description: "grade exams", Date: "2024-05-02", TeacherID: bob.ID},
		{Description: "plan lesson", Date: "2024-05-01", TeacherID: bob.ID},
		{Description: "hall duty", Date: "2024-05-03", TeacherID: dan.ID},
	}
	for i := range seed {
		got, err := tasks.Create(ctx, &seed[i])
		if err != nil {
			t.Fatalf("create task %d: %v", i, err)
		}
		if got.ID == 0 || got.Description != seed[i].Description {
			t.Fatalf("unexpected created task: %+v", got)
		}
	}

	all, err := tasks.ListAll(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %v len=%d", err, len(all))
	}
	if all[0].Date != "2024-05-01" {
		t.Fatalf("expected date ordering, got %+v", all)
	}

	mine, err := tasks.ListByTeacherID(ctx, bob.ID)
	if err != nil || len(mine) != 2 {
		t.Fatalf("list bob: %v len=%d", err, len(mine))
	}
	for _, task := range mine {
		if task.TeacherID != bob.ID {
			t.Fatalf("foreign task leaked into bob's list: %+v", task)
		}
	}

	n, err := tasks.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("count: %v n=%d", err, n)
	}
}

func TestTaskRepository_UnknownTeacher(t *testing.T) {
	d, err := db.Open("file:taskrepofk?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	tasks := NewTaskRepository(d)
	_, err = tasks.Create(context.Background(), &models.Task{Description: "x", Date: "2024-05-01", TeacherID: 4242})
	if !errors.Is(err, ErrUnknownTeacher) {
		t.Fatalf("expected ErrUnknownTeacher, got %v", err)
	}
}
