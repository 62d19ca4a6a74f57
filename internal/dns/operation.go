package dns

import "fmt"

// Operation names in the provider vocabulary.
const (
	OperationAuto         = "auto"
	OperationRegistration = "registration"
	OperationUpdate       = "update"
	OperationRemove       = "remove"
	OperationDelete       = "delete"
)

// operationAliases translates the externally-facing operation vocabulary
// into the one the DNS collaborator understands.
var operationAliases = map[string]string{
	"add":                 OperationRegistration,
	OperationUpdate:       OperationUpdate,
	OperationDelete:       OperationRemove,
	OperationRegistration: OperationRegistration,
	OperationRemove:       OperationRemove,
}

// MapOperation translates an operation name into the provider vocabulary.
// Unknown names pass through unchanged, which permits forward-compatible
// operation names at the cost of silently accepting typos; callers must
// not rely on it for validation.
func MapOperation(op string) string {
	if mapped, ok := operationAliases[op]; ok {
		return mapped
	}
	return op
}

// MapOperationStrict is MapOperation with unknown names rejected. "auto"
// is accepted unchanged as the decide-later sentinel.
func MapOperationStrict(op string) (string, error) {
	if op == OperationAuto {
		return op, nil
	}
	if mapped, ok := operationAliases[op]; ok {
		return mapped, nil
	}
	return "", fmt.Errorf("unknown operation %q", op)
}
