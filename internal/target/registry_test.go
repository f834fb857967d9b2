package target

import "testing"

func testRegistry() *Registry {
	return NewRegistry(map[string]*Target{
		"staging": {Name: "staging", URL: "https://example.com/in/a", HookID: "deploy-staging"},
		"prod":    {Name: "prod", URL: "https://example.com/in/b", HookID: "deploy-production"},
	})
}

func TestRegistry_Get(t *testing.T) {
	r := testRegistry()

	tgt, err := r.Get("staging")
	if err != nil {
		t.Fatalf("Failed to get target: %v", err)
	}
	if tgt.HookID != "deploy-staging" {
		t.Errorf("Unexpected hook_id: %q", tgt.HookID)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := testRegistry()

	if _, err := r.Get("missing"); err == nil {
		t.Error("Expected error for unknown target")
	}
}

func TestRegistry_List(t *testing.T) {
	r := testRegistry()

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("Expected 2 names, got %d", len(names))
	}

	// List is sorted
	if names[0] != "prod" || names[1] != "staging" {
		t.Errorf("Expected sorted names [prod staging], got %v", names)
	}

	if r.Count() != 2 {
		t.Errorf("Expected count 2, got %d", r.Count())
	}
}
