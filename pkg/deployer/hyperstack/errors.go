package hyperstack

import "fmt"

// ResponseNotObjectError reports a response value (top level or instance
// element) that was not a JSON object.
type ResponseNotObjectError struct {
	Response any
}

func (e *ResponseNotObjectError) Error() string {
	return fmt.Sprintf("response not object: %v", e.Response)
}

// ResponseMissingInstancesError reports a create response object without an
// "instances" field. Object is the full response object for diagnosis.
type ResponseMissingInstancesError struct {
	Object map[string]any
}

func (e *ResponseMissingInstancesError) Error() string {
	return fmt.Sprintf("response missing instances: %v", e.Object)
}

// ResponseInvalidInstancesError reports an "instances" field that was not a
// JSON array. Instances is the offending value.
type ResponseInvalidInstancesError struct {
	Instances any
}

func (e *ResponseInvalidInstancesError) Error() string {
	return fmt.Sprintf("response invalid instances: %v", e.Instances)
}

// ResponseEmptyInstancesError reports a create response whose "instances"
// array was empty. A create that reports zero created instances is a
// failure, not a valid empty result.
type ResponseEmptyInstancesError struct{}

func (e *ResponseEmptyInstancesError) Error() string {
	return "response empty instances"
}

// ResponseMissingIDError reports an instance object without an "id" field.
// Object is the full instance object for diagnosis.
type ResponseMissingIDError struct {
	Object map[string]any
}

func (e *ResponseMissingIDError) Error() string {
	return fmt.Sprintf("response missing id: %v", e.Object)
}

// ResponseInvalidIDError reports an "id" field whose JSON type is not a
// non-negative integer. ID is the offending value.
type ResponseInvalidIDError struct {
	ID any
}

func (e *ResponseInvalidIDError) Error() string {
	return fmt.Sprintf("response invalid id: %v", e.ID)
}
