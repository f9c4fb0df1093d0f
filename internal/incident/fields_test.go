package incident

import (
	"encoding/json"
	"testing"
)

func TestFieldsForModel(t *testing.T) {
	fields, err := FieldsForModel(ModelRequest)
	if err != nil {
		t.Fatalf("FieldsForModel(request) failed: %v", err)
	}
	if len(fields) == 0 {
		t.Fatal("request model must have a field catalog")
	}

	for _, model := range []string{ModelServiceCatalog, ModelProblem} {
		if _, err := FieldsForModel(model); err == nil {
			t.Fatalf("model %s should not have a catalog yet", model)
		}
	}
	if _, err := FieldsForModel("bogus"); err == nil {
		t.Fatal("unknown model must error")
	}
}

func TestRequiredFieldNames(t *testing.T) {
	names := RequiredFieldNames(RequestFields)
	want := map[string]bool{"Requester": true, "Subject": true}
	if len(names) != len(want) {
		t.Fatalf("required fields = %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected required field %q", n)
		}
	}

	if got := RequiredFieldNames(UpdatableFields); len(got) != 0 {
		t.Fatalf("updatable fields are all optional, got %v", got)
	}
}

func TestValidModel(t *testing.T) {
	for _, m := range Models {
		if !ValidModel(m) {
			t.Fatalf("ValidModel(%q) = false", m)
		}
	}
	if ValidModel("Request") || ValidModel("") {
		t.Fatal("model names are case sensitive")
	}
}

func TestFieldSpecJSONShape(t *testing.T) {
	data, err := json.Marshal(UpdatableFields[2]) // priority
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m["name"] != "priority" || m["mutability"] != "readWrite" {
		t.Fatalf("field spec JSON = %v", m)
	}
	if _, ok := m["canonicalValues"]; !ok {
		t.Fatal("canonicalValues missing for enum field")
	}
	if _, ok := m["maxLength"]; ok {
		t.Fatal("zero maxLength must be omitted")
	}
}
