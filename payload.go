package welstory

import "fmt"

// Duck-typed payload access made explicit: every decode path goes through
// these helpers so a missing or mistyped field surfaces as a Shape error at
// the call site instead of a panic deep inside mapping logic.

func stringField(element map[string]interface{}, key string) (string, bool) {
	value, ok := element[key].(string)
	return value, ok
}

// optionalStringField returns "" when the field is absent or not a string.
func optionalStringField(element map[string]interface{}, key string) string {
	value, _ := element[key].(string)
	return value
}

func shapeError(op, detail string, element interface{}) *ClientError {
	return &ClientError{
		Type:    ErrorTypeShape,
		Op:      op,
		Message: detail,
		Payload: fmt.Sprintf("%v", element),
	}
}

func objectElement(op string, element interface{}) (map[string]interface{}, error) {
	object, ok := element.(map[string]interface{})
	if !ok {
		return nil, shapeError(op, "element is not an object", element)
	}
	return object, nil
}
