package tools

import "testing"

func stubTool(name string) *Tool {
	return &Tool{
		Name:        name,
		Description: "stub",
		Execute: func(args map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{"ok": true}, nil
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(stubTool("alpha")); err != nil {
		t.Fatal(err)
	}

	tool, ok := r.Get("alpha")
	if !ok || tool.Name != "alpha" {
		t.Error("registered tool not retrievable")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(stubTool("alpha")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubTool("alpha")); err == nil {
		t.Error("duplicate registration accepted")
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(stubTool("")); err == nil {
		t.Error("empty name accepted")
	}
	if err := r.Register(&Tool{Name: "noop"}); err == nil {
		t.Error("tool without Execute accepted")
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Execute("ghost", nil); err == nil {
		t.Error("executing unknown tool did not error")
	}
}

func TestListDetailedOmitsExecute(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubTool("alpha")); err != nil {
		t.Fatal(err)
	}

	infos := r.ListDetailed()
	if len(infos) != 1 || infos[0].Name != "alpha" {
		t.Errorf("ListDetailed = %+v", infos)
	}
}
