package artifact

import (
	"encoding/json"
	"testing"
)

const sampleArtifact = `{
	"/src/models/user.ts::userModel": {
		"type": "model",
		"prebuild": { "typename": "User" }
	},
	"/src/slices/user.ts::userSlice": {
		"type": "slice",
		"prebuild": { "operationType": "query" }
	},
	"/src/operations/get-user.ts::getUser": {
		"type": "operation",
		"prebuild": {
			"operationName": "GetUser",
			"operationType": "query",
			"document": "query GetUser { user { id } }"
		}
	},
	"/src/operations/inline.ts::quick": {
		"type": "inlineOperation",
		"prebuild": {
			"operationName": "Quick",
			"document": "query Quick { ping }"
		}
	}
}`

func TestDecode(t *testing.T) {
	table, err := Decode([]byte(sampleArtifact))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(table) != 4 {
		t.Fatalf("entries = %d, want 4", len(table))
	}

	model, ok := table.Resolve("/src/models/user.ts", "userModel")
	if !ok {
		t.Fatal("model entry not found")
	}
	if model.Kind != KindModel || model.Model == nil || model.Model.Typename != "User" {
		t.Errorf("model = %+v", model)
	}

	op, ok := table.Resolve("/src/operations/get-user.ts", "getUser")
	if !ok {
		t.Fatal("operation entry not found")
	}
	if op.Kind != KindOperation || op.Operation.OperationName != "GetUser" {
		t.Errorf("operation = %+v", op)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	bad := `{"/a.ts::x": {"type": "fragment", "prebuild": {}}}`
	if _, err := Decode([]byte(bad)); err == nil {
		t.Fatal("expected an error for an unknown element kind")
	}
}

func TestDecodeMissingPrebuild(t *testing.T) {
	bad := `{"/a.ts::x": {"type": "model"}}`
	if _, err := Decode([]byte(bad)); err == nil {
		t.Fatal("expected an error for a missing prebuild payload")
	}
}

func TestCanonicalIDNormalization(t *testing.T) {
	id := MakeCanonicalID(`C:\work\src\models.ts`, "userModel")
	if id != "C:/work/src/models.ts::userModel" {
		t.Errorf("id = %q", id)
	}
	path, scope, ok := id.Split()
	if !ok || path != "C:/work/src/models.ts" || scope != "userModel" {
		t.Errorf("split = %q %q %v", path, scope, ok)
	}
}

func TestElementRoundTrip(t *testing.T) {
	elem := Element{
		Kind: KindOperation,
		Operation: &OperationPrebuild{
			OperationName: "GetUser",
			OperationType: "query",
			Document:      `query GetUser { user { name "quoted" } }`,
		},
	}
	data, err := json.Marshal(elem)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Element
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Kind != KindOperation || *back.Operation != *elem.Operation {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
