package core

import (
	"testing"

	"github.com/go-drift/fieldkit/pkg/errors"
)

func TestIsEmpty(t *testing.T) {
	type point struct{ X, Y int }

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"absent string", IsEmpty("", false), true},
		{"absent list", IsEmpty(List[string]{"a"}, false), true},
		{"empty list", IsEmpty(List[string]{}, true), true},
		{"nil list", IsEmpty(List[string](nil), true), true},
		{"list with items", IsEmpty(List[string]{"a", "b"}, true), false},
		{"nil list pointer", IsEmpty((*List[string])(nil), true), true},
		{"list pointer with items", IsEmpty(&List[string]{"a"}, true), false},
		{"empty string is not a sequence", IsEmpty("", true), false},
		{"zero int", IsEmpty(0, true), false},
		{"struct", IsEmpty(point{}, true), false},
		{"plain slice is not a sequence", IsEmpty([]int{}, true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("IsEmpty = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestIsEmptyWith(t *testing.T) {
	blank := func(s string) bool { return s == "" }
	if !IsEmptyWith("", true, blank) {
		t.Error("custom func should mark blank string empty")
	}
	if IsEmptyWith("x", true, blank) {
		t.Error("custom func should mark non-blank string non-empty")
	}
	if !IsEmptyWith("x", false, blank) {
		t.Error("absent value is empty regardless of func")
	}
	if IsEmptyWith(List[int]{1}, true, nil) {
		t.Error("nil func falls back to IsEmpty")
	}
}

func TestValueController_SetSameValueDoesNotNotify(t *testing.T) {
	c := NewValueController("a", true)
	calls := 0
	c.AddListener(func() { calls++ })

	if err := c.Set("a"); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("listener called %d times, want 0", calls)
	}
}

func TestValueController_SetDifferentValueNotifiesOnce(t *testing.T) {
	c := NewValueController("a", true)
	calls := 0
	c.AddListener(func() { calls++ })

	_ = c.Set("b")
	if calls != 1 {
		t.Errorf("listener called %d times, want 1", calls)
	}
}

func TestValueController_StructuralEquality(t *testing.T) {
	c := NewValueController(List[string]{"a", "b"}, true)
	calls := 0
	c.AddListener(func() { calls++ })

	_ = c.Set(List[string]{"a", "b"})
	if calls != 0 {
		t.Errorf("equal lists notified %d times, want 0", calls)
	}
	_ = c.Set(List[string]{"a"})
	if calls != 1 {
		t.Errorf("changed list notified %d times, want 1", calls)
	}
}

func TestValueController_NullBoundaryAlwaysNotifies(t *testing.T) {
	never := WithShouldNotify(func(prev, next int) bool { return false })
	c := NewEmptyValueController(never)
	calls := 0
	c.AddListener(func() { calls++ })

	_ = c.Set(1)
	if calls != 1 {
		t.Fatalf("absent->present notified %d times, want 1", calls)
	}
	_ = c.Set(2)
	if calls != 1 {
		t.Fatalf("predicate returning false should suppress, got %d calls", calls)
	}
	_ = c.Clear()
	if calls != 2 {
		t.Fatalf("present->absent notified %d times, want 2", calls)
	}
	_ = c.Clear()
	if calls != 2 {
		t.Fatalf("absent->absent should not notify, got %d calls", calls)
	}
}

func TestValueController_CustomPredicate(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}
	byID := WithShouldNotify(func(prev, next user) bool { return prev.ID != next.ID })
	c := NewValueController(user{ID: 1, Name: "a"}, true, byID)
	calls := 0
	c.AddListener(func() { calls++ })

	_ = c.Set(user{ID: 1, Name: "renamed"})
	if calls != 0 {
		t.Errorf("same ID notified %d times, want 0", calls)
	}
	if v, _ := c.Value(); v.Name != "renamed" {
		t.Errorf("value should be stored even without notification, got %q", v.Name)
	}
	_ = c.Set(user{ID: 2})
	if calls != 1 {
		t.Errorf("new ID notified %d times, want 1", calls)
	}
}

func TestValueController_ListenersObserveNewValue(t *testing.T) {
	c := NewEmptyValueController[string]()
	var seen string
	var seenOK bool
	c.AddListener(func() { seen, seenOK = c.Value() })

	_ = c.Set("new")
	if seen != "new" || !seenOK {
		t.Errorf("listener saw (%q, %v), want (\"new\", true)", seen, seenOK)
	}
}

func TestValueController_InsertionOrder(t *testing.T) {
	c := NewValueController(0, true)
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		c.AddListener(func() { order = append(order, i) })
	}

	_ = c.Set(1)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestValueController_ListenerAddedDuringNotification(t *testing.T) {
	c := NewValueController(0, true)
	lateCalls := 0
	added := false
	c.AddListener(func() {
		if !added {
			added = true
			c.AddListener(func() { lateCalls++ })
		}
	})

	_ = c.Set(1)
	if lateCalls != 0 {
		t.Errorf("listener added mid-pass ran %d times in that pass, want 0", lateCalls)
	}
	_ = c.Set(2)
	if lateCalls != 1 {
		t.Errorf("listener should run on the next pass, got %d", lateCalls)
	}
}

func TestValueController_ListenerRemovedDuringNotification(t *testing.T) {
	c := NewValueController(0, true)
	secondCalls := 0
	var removeSecond func()
	c.AddListener(func() { removeSecond() })
	removeSecond = c.AddListener(func() { secondCalls++ })

	_ = c.Set(1)
	if secondCalls != 0 {
		t.Errorf("removed listener ran %d times, want 0", secondCalls)
	}
	if c.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", c.ListenerCount())
	}
}

func TestValueController_Unsubscribe(t *testing.T) {
	c := NewValueController(0, true)
	calls := 0
	unsub := c.AddListener(func() { calls++ })
	unsub()
	unsub()

	_ = c.Set(1)
	if calls != 0 {
		t.Errorf("unsubscribed listener ran %d times", calls)
	}
	if c.HasListeners() {
		t.Error("expected no listeners")
	}
}

func TestValueController_UseAfterDispose(t *testing.T) {
	c := NewValueController("a", true)
	calls := 0
	c.AddListener(func() { calls++ })
	c.Dispose()
	c.Dispose()

	if !c.IsDisposed() {
		t.Error("IsDisposed should be true")
	}
	if c.ListenerCount() != 0 {
		t.Errorf("ListenerCount = %d after dispose, want 0", c.ListenerCount())
	}
	for name, op := range map[string]func() error{
		"Set":    func() error { return c.Set("b") },
		"Clear":  c.Clear,
		"Update": func() error { return c.Update("c", true) },
	} {
		err := op()
		if !errors.UseAfterDispose.Has(err) {
			t.Errorf("%s after dispose: err = %v, want UseAfterDispose", name, err)
		}
	}
	if v, _ := c.Value(); v != "a" {
		t.Errorf("value changed after dispose: %q", v)
	}
	if calls != 0 {
		t.Errorf("listener ran %d times after dispose", calls)
	}
}

func TestValueController_IsEmpty(t *testing.T) {
	c := NewValueController(List[string]{"a"}, true)
	if c.IsEmpty() {
		t.Error("list with item should not be empty")
	}
	_ = c.Set(List[string]{})
	if !c.IsEmpty() {
		t.Error("cleared list should be empty")
	}
}

func TestValueController_NilListPointerIsEmpty(t *testing.T) {
	c := NewEmptyValueController[*List[string]]()
	if err := c.Set(nil); err != nil {
		t.Fatal(err)
	}
	if !c.IsEmpty() {
		t.Error("present nil list pointer should be empty")
	}
	_ = c.Set(&List[string]{"a"})
	if c.IsEmpty() {
		t.Error("list pointer with an item should not be empty")
	}
}
